package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/business"
	configRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/config"
	professionalRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/professional"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией движка слотов
type Service struct {
	configRepo       ConfigRepository
	businessRepo     BusinessRepository
	professionalRepo ProfessionalRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	businessRepo BusinessRepository,
	professionalRepo ProfessionalRepository,
	logger Logger,
) *Service {
	return &Service{
		configRepo:       configRepo,
		businessRepo:     businessRepo,
		professionalRepo: professionalRepo,
		logger:           logger,
	}
}

// GetEffective получает действующую конфигурацию.
// Приоритет: специалист > бизнес > значения по умолчанию.
// Публичный метод - доступен всем.
func (s *Service) GetEffective(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("GetEffective: fetching config for business=%d, professional=%v", req.BusinessID, req.ProfessionalID)

	if _, err := s.getBusiness(ctx, "GetEffective", req.BusinessID); err != nil {
		return nil, err
	}

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.BusinessID, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetEffective: no stored config for business=%d, using defaults", req.BusinessID)
			return models.DefaultConfig(req.BusinessID), nil
		}
		s.logger.Error("GetEffective: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainConfig(config)
	s.logger.Info("GetEffective: config id=%d (level: %s)", config.ID, resp.Level)
	return resp, nil
}

// Upsert создает или обновляет конфигурацию уровня бизнеса или специалиста.
// Доступно только владельцу бизнеса.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: config for business=%d, professional=%v by user=%d",
		req.BusinessID, req.ProfessionalID, req.UserID)

	// 1. Проверяем бизнес и права владельца
	business, err := s.getBusiness(ctx, "Upsert", req.BusinessID)
	if err != nil {
		return nil, err
	}
	if !business.IsOwner(req.UserID) {
		s.logger.Warn("Upsert: user=%d is not owner of business=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// 2. Специалист должен принадлежать бизнесу
	if req.ProfessionalID != nil {
		professional, err := s.professionalRepo.GetByID(ctx, *req.ProfessionalID)
		if err != nil {
			if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
				return nil, ErrProfessionalNotFound
			}
			s.logger.Error("Upsert: failed to get professional id=%d: %v", *req.ProfessionalID, err)
			return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
		}
		if professional.BusinessID != req.BusinessID {
			s.logger.Warn("Upsert: professional id=%d does not belong to business=%d", professional.ID, req.BusinessID)
			return nil, ErrProfessionalNotFound
		}
	}

	// 3. Базой служит существующая запись уровня или значения по умолчанию
	config, err := s.configRepo.GetByBusinessAndProfessional(ctx, req.BusinessID, req.ProfessionalID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("Upsert: failed to get existing config: %v", err)
			return nil, fmt.Errorf("%w: failed to get existing config: %v", ErrInternal, err)
		}
		d := domain.DefaultSlotEngineConfig()
		config = &domain.BusinessSlotsConfig{
			BusinessID:      req.BusinessID,
			ProfessionalID:  req.ProfessionalID,
			StepMinutes:     d.StepMinutes,
			BufferMinutes:   d.BufferMinutes,
			LeadTimeMinutes: d.LeadTimeMinutes,
		}
	}
	req.ApplyToConfig(config)

	// 4. Валидируем итоговые значения
	if err := validateConfigData(config); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.configRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved config id=%d", saved.ID)
	return models.FromDomainConfig(saved), nil
}

func (s *Service) getBusiness(ctx context.Context, op string, id int64) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business id=%d not found", op, id)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("%s: failed to get business id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	return business, nil
}

// validateConfigData валидирует параметры конфигурации
func validateConfigData(c *domain.BusinessSlotsConfig) error {
	if c.StepMinutes < domain.MinStepMinutes || c.StepMinutes > domain.MaxStepMinutes {
		return fmt.Errorf("%w: stepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinStepMinutes, domain.MaxStepMinutes)
	}

	if c.BufferMinutes < domain.MinBufferMinutes || c.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if c.LeadTimeMinutes < domain.MinLeadTimeMinutes || c.LeadTimeMinutes > domain.MaxLeadTimeMinutes {
		return fmt.Errorf("%w: leadTimeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinLeadTimeMinutes, domain.MaxLeadTimeMinutes)
	}

	return nil
}
