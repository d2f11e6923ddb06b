package add_professional

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AvailabilityService/internal/invariants"
)

// UseCase use case добавления специалиста с проверкой лимита тарифа
type UseCase struct {
	businessRepo     BusinessRepository
	professionalRepo ProfessionalRepository
	txManager        TransactionManager
	metrics          MetricsRecorder
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	professionalRepo ProfessionalRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo:     businessRepo,
		professionalRepo: professionalRepo,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute добавляет специалиста.
// Подсчет и вставка выполняются в одной SERIALIZABLE транзакции,
// поэтому два параллельных запроса не превысят лимит тарифа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AddProfessional: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем бизнес и права владельца
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("AddProfessional: business not found, business_id=%d", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("AddProfessional: failed to get business_id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsOwner(req.UserID) {
		uc.logger.Warn("AddProfessional: user_id=%d is not owner of business_id=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	professional := &domain.Professional{
		BusinessID: req.BusinessID,
		Name:       strings.TrimSpace(req.Name),
		IsActive:   true,
		Schedule:   req.Schedule,
		Exceptions: req.Exceptions,
	}

	// 3. Транзакция: подсчет, инвариант тарифа, вставка
	var created *domain.Professional
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := uc.professionalRepo.CountByBusiness(txCtx, req.BusinessID)
		if err != nil {
			uc.logger.Error("AddProfessional: failed to count professionals: %v", err)
			return fmt.Errorf("%w: failed to count professionals: %v", ErrInternal, err)
		}

		if err := invariants.AssertProfessionalLimit(business.Plan, count); err != nil {
			uc.metrics.IncViolation(string(invariants.RuleProfessionalLimit))
			uc.logger.Warn("AddProfessional: business_id=%d plan=%s count=%d: %v", business.ID, business.Plan, count, err)
			return err
		}

		created, err = uc.professionalRepo.Create(txCtx, professional)
		if err != nil {
			uc.logger.Error("AddProfessional: failed to create professional: %v", err)
			return fmt.Errorf("%w: failed to create professional: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AddProfessional: professional_id=%d added to business_id=%d", created.ID, created.BusinessID)

	return &Response{
		ID:         created.ID,
		BusinessID: created.BusinessID,
		Name:       created.Name,
		IsActive:   created.IsActive,
		Schedule:   created.Schedule,
		Exceptions: created.Exceptions,
		CreatedAt:  created.CreatedAt,
	}, nil
}
