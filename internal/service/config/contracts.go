package config

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetByBusinessAndProfessional(ctx context.Context, businessID int64, professionalID *int64) (*domain.BusinessSlotsConfig, error)
	GetConfigWithHierarchy(ctx context.Context, businessID int64, professionalID *int64) (*domain.BusinessSlotsConfig, error)
	Upsert(ctx context.Context, config *domain.BusinessSlotsConfig) (*domain.BusinessSlotsConfig, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// ProfessionalRepository интерфейс репозитория специалистов
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
