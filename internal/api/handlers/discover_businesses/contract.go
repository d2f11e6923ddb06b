package discover_businesses

import (
	"context"

	discoverBusinesses "github.com/m04kA/SMC-AvailabilityService/internal/usecase/discover_businesses"
)

type DiscoverBusinessesUseCase interface {
	Execute(ctx context.Context, req *discoverBusinesses.Request) (*discoverBusinesses.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
