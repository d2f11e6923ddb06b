package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	configRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/config"
	professionalRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/professional"
	serviceRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

const metricsSource = "get_available_slots"

// UseCase use case для получения доступных слотов специалиста на дату
type UseCase struct {
	professionalRepo ProfessionalRepository
	serviceRepo      ServiceRepository
	bookingRepo      BookingRepository
	blockedRepo      BlockedRepository
	configRepo       ConfigRepository
	metrics          MetricsRecorder
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	professionalRepo ProfessionalRepository,
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	blockedRepo BlockedRepository,
	configRepo ConfigRepository,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		professionalRepo: professionalRepo,
		serviceRepo:      serviceRepo,
		bookingRepo:      bookingRepo,
		blockedRepo:      blockedRepo,
		configRepo:       configRepo,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, professional=%d, service=%d, date=%s",
		req.BusinessID, req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата в прошлом недопустима
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Получаем специалиста
	professional, err := uc.professionalRepo.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if professional.BusinessID != req.BusinessID || !professional.IsActive {
		uc.logger.Warn("GetAvailableSlots: professional id=%d is not an active professional of business id=%d",
			req.ProfessionalID, req.BusinessID)
		return nil, ErrProfessionalNotFound
	}

	// 5. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != req.BusinessID || !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not an active service of business id=%d",
			req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	// 6. Получаем конфигурацию с учетом иерархии
	cfg, err := uc.resolveConfig(ctx, req.BusinessID, req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	// 7. Подтвержденные бронирования специалиста на дату
	status := domain.StatusConfirmed
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		BusinessID:     req.BusinessID,
		ProfessionalID: ptr.Ptr(req.ProfessionalID),
		StartDate:      &req.Date,
		EndDate:        &req.Date,
		Status:         &status,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Ручные блокировки на дату
	blocks, err := uc.blockedRepo.ListByProfessionalAndDate(ctx, req.ProfessionalID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked ranges: %v", ErrInternal, err)
	}

	// 9. Вычисляем слоты
	slots := availability.ComputeAvailableSlots(availability.Request{
		Date:            req.Date,
		ServiceDuration: service.DurationMinutes,
		Schedule:        professional.Schedule,
		Exceptions:      professional.Exceptions,
		Bookings:        domain.ConfirmedOnly(bookings),
		Blocks:          blocks,
		Config:          cfg,
		Now:             now,
	})
	uc.metrics.ObserveSlots(metricsSource, len(slots))

	uc.logger.Info("GetAvailableSlots: generated %d slots for professional=%d, service=%d, date=%s",
		len(slots), req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		BusinessID:      req.BusinessID,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Config:          cfg,
		Slots:           slots,
	}, nil
}

// resolveConfig возвращает конфигурацию специалиста, бизнеса или значения по умолчанию
func (uc *UseCase) resolveConfig(ctx context.Context, businessID, professionalID int64) (domain.SlotEngineConfig, error) {
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, businessID, ptr.Ptr(professionalID))
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Info("GetAvailableSlots: using default config for business=%d, professional=%d",
				businessID, professionalID)
			return domain.DefaultSlotEngineConfig(), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return domain.SlotEngineConfig{}, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: using config id=%d", config.ID)
	return config.EngineConfig(), nil
}
