package discover_businesses

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if utf8.RuneCountInString(req.Address) > domain.MaxSearchQueryLength {
		return fmt.Errorf("%w: address must be at most %d characters", ErrInvalidInput, domain.MaxSearchQueryLength)
	}

	if req.Time != nil {
		if req.Date == nil {
			return fmt.Errorf("%w: time requires date", ErrInvalidInput)
		}
		if err := req.Time.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
		}
	}

	if req.Date != nil && domain.DateOnly(*req.Date, time.UTC).Before(domain.DateOnly(now, time.UTC)) {
		return ErrInvalidDate
	}

	return nil
}
