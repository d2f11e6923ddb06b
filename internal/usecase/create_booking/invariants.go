package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	configRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/invariants"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// checkInvariants запускает guard'ы в порядке: в будущем, lead time, пересечения
func (uc *UseCase) checkInvariants(candidate *domain.Booking, existing []*domain.Booking, now time.Time) error {
	checks := []func() error{
		func() error { return invariants.AssertBookingInFuture(candidate.Date, candidate.StartTime, now) },
		func() error {
			return invariants.AssertLeadTimeRespected(candidate.Date, candidate.StartTime, uc.leadTimeMinutes, now)
		},
		func() error { return invariants.AssertNoOverlappingBookings(candidate, existing) },
	}

	for _, check := range checks {
		if err := check(); err != nil {
			if v, ok := invariants.AsViolation(err); ok {
				uc.metrics.IncViolation(string(v.Rule))
				uc.logger.Warn("CreateBooking: invariant %s violated: %s", v.Rule, v.Message)
			}
			return err
		}
	}

	return nil
}

// resolveConfig возвращает конфигурацию специалиста, бизнеса или значения по умолчанию
func (uc *UseCase) resolveConfig(ctx context.Context, businessID, professionalID int64) (domain.SlotEngineConfig, error) {
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, businessID, ptr.Ptr(professionalID))
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return domain.DefaultSlotEngineConfig(), nil
		}
		uc.logger.Error("CreateBooking: failed to get config: %v", err)
		return domain.SlotEngineConfig{}, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	return config.EngineConfig(), nil
}
