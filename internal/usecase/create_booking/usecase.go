package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	professionalRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/professional"
	serviceRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	professionalRepo ProfessionalRepository
	serviceRepo      ServiceRepository
	bookingRepo      BookingRepository
	blockedRepo      BlockedRepository
	configRepo       ConfigRepository
	txManager        TransactionManager
	metrics          MetricsRecorder
	timeProvider     TimeProvider
	logger           Logger

	// leadTimeMinutes фиксированное минимальное время до начала бронирования.
	// Не зависит от LeadTimeMinutes конфигурации движка слотов.
	leadTimeMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	professionalRepo ProfessionalRepository,
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	blockedRepo BlockedRepository,
	configRepo ConfigRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	leadTimeMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		professionalRepo: professionalRepo,
		serviceRepo:      serviceRepo,
		bookingRepo:      bookingRepo,
		blockedRepo:      blockedRepo,
		configRepo:       configRepo,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		leadTimeMinutes:  leadTimeMinutes,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверки и запись выполняются в одной сериализуемой транзакции, поэтому
// два параллельных запроса на один интервал не могут оба пройти проверку пересечений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, business=%d, professional=%d, service=%d, date=%s, time=%s",
		req.UserID, req.BusinessID, req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем специалиста
	professional, err := uc.professionalRepo.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateBooking: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateBooking: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if professional.BusinessID != req.BusinessID || !professional.IsActive {
		uc.logger.Warn("CreateBooking: professional id=%d is not an active professional of business id=%d",
			req.ProfessionalID, req.BusinessID)
		return nil, ErrProfessionalNotFound
	}

	// 4. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != req.BusinessID || !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is not an active service of business id=%d",
			req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	// 5. Вычисляем конец интервала
	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: %s + %d min does not fit into the day", req.StartTime, service.DurationMinutes)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	candidate := &domain.Booking{
		ClientID:       req.UserID,
		BusinessID:     req.BusinessID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        endTime,
		Status:         domain.StatusConfirmed,
		ServiceName:    service.Name,
		ServicePrice:   service.PriceOrZero(),
		Notes:          req.Notes,
	}

	var result *domain.Booking

	// 6. Выполняем проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Конфигурация слотов с учетом иерархии
		cfg, err := uc.resolveConfig(txCtx, req.BusinessID, req.ProfessionalID)
		if err != nil {
			return err
		}

		// 6.2. Подтвержденные бронирования специалиста на дату с блокировкой (FOR UPDATE)
		status := domain.StatusConfirmed
		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			BusinessID:     req.BusinessID,
			ProfessionalID: ptr.Ptr(req.ProfessionalID),
			StartDate:      &req.Date,
			EndDate:        &req.Date,
			Status:         &status,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		bookings = domain.ConfirmedOnly(bookings)

		// 6.3. Ручные блокировки
		blocks, err := uc.blockedRepo.ListByProfessionalAndDate(txCtx, req.ProfessionalID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocked ranges: %v", err)
			return fmt.Errorf("%w: failed to get blocked ranges: %v", ErrInternal, err)
		}

		// 6.4. Инварианты бронирования
		if err := uc.checkInvariants(candidate, bookings, now); err != nil {
			return err
		}

		// 6.5. Повторная проверка движком слотов: расписание, исключения, блокировки, буфер, шаг
		available := availability.IsSlotAvailable(availability.Request{
			Date:            req.Date,
			ServiceDuration: service.DurationMinutes,
			Schedule:        professional.Schedule,
			Exceptions:      professional.Exceptions,
			Bookings:        bookings,
			Blocks:          blocks,
			Config:          cfg,
			Now:             now,
		}, req.StartTime)
		if !available {
			uc.logger.Warn("CreateBooking: %s %s-%s is not among available slots of professional=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, endTime, req.ProfessionalID)
			return ErrSlotNotAvailable
		}

		// 6.6. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, candidate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:             result.ID,
		ClientID:       result.ClientID,
		BusinessID:     result.BusinessID,
		ProfessionalID: result.ProfessionalID,
		ServiceID:      result.ServiceID,
		Date:           result.Date,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		Status:         string(result.Status),
		ServiceName:    result.ServiceName,
		ServicePrice:   result.ServicePrice,
		Notes:          result.Notes,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}
