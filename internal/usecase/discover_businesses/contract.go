package discover_businesses

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// BusinessSearcher поиск бизнесов-кандидатов (репозиторий или кэш поверх него)
type BusinessSearcher interface {
	SearchByAddress(ctx context.Context, query string, category *string) ([]*domain.Business, error)
}

// ProfessionalRepository интерфейс репозитория специалистов
type ProfessionalRepository interface {
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Professional, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Service, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// BlockedRepository интерфейс репозитория ручных блокировок
type BlockedRepository interface {
	ListByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time) ([]*domain.BlockedRange, error)
}

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, businessID int64, professionalID *int64) (*domain.BusinessSlotsConfig, error)
}

// MetricsRecorder метрики поиска
type MetricsRecorder interface {
	ObserveDiscovery(mode string, seconds float64)
	IncFetchFailure(level string)
	ObserveSlots(source string, count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
