// Package businesses кэширует поиск бизнесов по адресу в Redis
package businesses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const keyPrefix = "discovery:businesses:"

// Cache read-through декоратор над Searcher.
// Ошибки Redis не ломают поиск: запрос уходит в источник.
type Cache struct {
	client *redis.Client
	next   Searcher
	ttl    time.Duration
	logger Logger
}

// NewCache создает кэширующий декоратор
func NewCache(client *redis.Client, next Searcher, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logger,
	}
}

// SearchByAddress возвращает закэшированный результат или делегирует в источник
func (c *Cache) SearchByAddress(ctx context.Context, query string, category *string) ([]*domain.Business, error) {
	key := cacheKey(query, category)

	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entries []businessEntry
		if err := json.Unmarshal(cached, &entries); err == nil {
			return fromEntries(entries), nil
		}
		c.logger.Warn("BusinessCache: corrupt entry key=%s, refreshing", key)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("BusinessCache: get key=%s failed: %v", key, err)
	}

	result, err := c.next.SearchByAddress(ctx, query, category)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(toEntries(result))
	if err != nil {
		c.logger.Error("BusinessCache: marshal key=%s failed: %v", key, err)
		return result, nil
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("BusinessCache: set key=%s failed: %v", key, err)
	}

	return result, nil
}

func cacheKey(query string, category *string) string {
	cat := ""
	if category != nil {
		cat = *category
	}
	return fmt.Sprintf("%s%s:%s", keyPrefix, strings.ToLower(strings.TrimSpace(query)), cat)
}
