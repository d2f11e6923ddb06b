package businesses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type fakeSearcher struct {
	calls  int
	result []*domain.Business
	err    error
}

func (f *fakeSearcher) SearchByAddress(_ context.Context, _ string, _ *string) ([]*domain.Business, error) {
	f.calls++
	return f.result, f.err
}

// unreachableClient указывает на закрытый порт: любая команда падает с ошибкой соединения
func unreachableClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "discovery:businesses:main st:", cacheKey("  Main St ", nil))
	assert.Equal(t, "discovery:businesses:main st:barber", cacheKey("main st", ptr.Ptr("barber")))
}

func TestEntriesKeepFields(t *testing.T) {
	created := time.Date(2030, time.January, 2, 3, 4, 5, 0, time.UTC)
	list := []*domain.Business{{
		ID:        7,
		OwnerID:   42,
		Name:      "Studio",
		Address:   "Main St 1",
		Category:  "barber",
		Plan:      domain.PlanDuo,
		CreatedAt: created,
		UpdatedAt: created,
	}}

	assert.Equal(t, list, fromEntries(toEntries(list)))
}

func TestSearchByAddress_FallsBackWhenRedisIsDown(t *testing.T) {
	source := &fakeSearcher{result: []*domain.Business{{ID: 1, Name: "Studio"}}}
	cache := NewCache(unreachableClient(t), source, time.Minute, logger.NewNop())

	result, err := cache.SearchByAddress(context.Background(), "main", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls)
	assert.Equal(t, source.result, result)
}

func TestSearchByAddress_SourceErrorIsReturned(t *testing.T) {
	source := &fakeSearcher{err: errors.New("db down")}
	cache := NewCache(unreachableClient(t), source, time.Minute, logger.NewNop())

	_, err := cache.SearchByAddress(context.Background(), "main", nil)

	assert.EqualError(t, err, "db down")
}
