package discover_businesses

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/discovery"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	defaultMaxConcurrency = 8
	defaultFetchTimeout   = 2 * time.Second

	metricsSource = "discovery"
)

// UseCase use case поиска бизнесов со свободным временем
type UseCase struct {
	businesses       BusinessSearcher
	professionalRepo ProfessionalRepository
	serviceRepo      ServiceRepository
	bookingRepo      BookingRepository
	blockedRepo      BlockedRepository
	configRepo       ConfigRepository
	metrics          MetricsRecorder
	timeProvider     TimeProvider
	logger           Logger
	opts             Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businesses BusinessSearcher,
	professionalRepo ProfessionalRepository,
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	blockedRepo BlockedRepository,
	configRepo ConfigRepository,
	metrics MetricsRecorder,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = defaultMaxConcurrency
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}

	return &UseCase{
		businesses:       businesses,
		professionalRepo: professionalRepo,
		serviceRepo:      serviceRepo,
		bookingRepo:      bookingRepo,
		blockedRepo:      blockedRepo,
		configRepo:       configRepo,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		opts:             opts,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет поиск.
// Без даты возвращает список бизнесов с активными услугами в порядке поиска.
// С датой - бизнесы со свободными слотами, по убыванию количества слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	started := time.Now()

	// 1. Получаем текущее время и валидируем запрос
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("DiscoverBusinesses: validation failed: %v", err)
		return nil, err
	}

	mode := ModeListing
	if req.Date != nil {
		mode = ModeAvailability
	}

	uc.logger.Info("DiscoverBusinesses: mode=%s, address=%q, category=%v", mode, req.Address, derefString(req.Category))

	// 2. Кандидаты по адресу
	candidates, err := uc.businesses.SearchByAddress(ctx, req.Address, req.Category)
	if err != nil {
		uc.logger.Error("DiscoverBusinesses: failed to search businesses: %v", err)
		return nil, fmt.Errorf("%w: failed to search businesses: %v", ErrInternal, err)
	}

	// 3. Параллельно собираем входные данные по каждому бизнесу
	entries, err := uc.collectEntries(ctx, candidates, req.Date)
	if err != nil {
		uc.logger.Error("DiscoverBusinesses: fan-out aborted: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Вычисляем слоты, фильтруем и ранжируем
	result := discovery.FilterBusinessesByAvailability(entries, discovery.Query{Date: req.Date, Time: req.Time}, now)

	if mode == ModeAvailability {
		total := 0
		for _, b := range result {
			total += b.TotalSlots
		}
		uc.metrics.ObserveSlots(metricsSource, total)
	}
	uc.metrics.ObserveDiscovery(string(mode), time.Since(started).Seconds())

	uc.logger.Info("DiscoverBusinesses: %d candidates, %d fetched, %d returned",
		len(candidates), len(entries), len(result))

	return &Response{Mode: mode, Businesses: result}, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// resolveConfig конфигурация специалиста с откатом на уровень бизнеса и значения по умолчанию
func (uc *UseCase) resolveConfig(ctx context.Context, businessID, professionalID int64) (domain.SlotEngineConfig, error) {
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, businessID, &professionalID)
	if err != nil {
		if isNotFound(err) {
			return domain.DefaultSlotEngineConfig(), nil
		}
		return domain.SlotEngineConfig{}, err
	}
	return config.EngineConfig(), nil
}
