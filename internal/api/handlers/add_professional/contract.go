package add_professional

import (
	"context"

	addProfessional "github.com/m04kA/SMC-AvailabilityService/internal/usecase/add_professional"
)

type AddProfessionalUseCase interface {
	Execute(ctx context.Context, req *addProfessional.Request) (*addProfessional.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
