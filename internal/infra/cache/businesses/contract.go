package businesses

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Searcher источник данных, который кэшируется (репозиторий бизнесов)
type Searcher interface {
	SearchByAddress(ctx context.Context, query string, category *string) ([]*domain.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
