package add_professional

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 || req.BusinessID <= 0 {
		return fmt.Errorf("%w: user_id and business_id must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxProfessionalNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxProfessionalNameLength)
	}

	for day, windows := range req.Schedule {
		if err := validateWindows(windows); err != nil {
			return fmt.Errorf("%w: schedule day %d: %v", ErrInvalidInput, day, err)
		}
	}

	for _, e := range req.Exceptions {
		if e.Date.IsZero() {
			return fmt.Errorf("%w: exception date is required", ErrInvalidInput)
		}
		if err := validateWindows(e.Windows); err != nil {
			return fmt.Errorf("%w: exception %s: %v", ErrInvalidInput, e.Date.Format(domain.DateFormat), err)
		}
	}

	return nil
}

// validateWindows проверяет формат и порядок границ окон
func validateWindows(windows []domain.TimeWindow) error {
	for _, w := range windows {
		if err := w.Start.Validate(); err != nil {
			return err
		}
		if err := w.End.Validate(); err != nil {
			return err
		}
		if w.StartMinutes() >= w.EndMinutes() {
			return fmt.Errorf("window %s-%s: start must be before end", w.Start, w.End)
		}
	}
	return nil
}
