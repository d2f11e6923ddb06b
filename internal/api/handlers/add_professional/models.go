package add_professional

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	addProfessional "github.com/m04kA/SMC-AvailabilityService/internal/usecase/add_professional"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// AddProfessionalRequest HTTP request model.
// Ключи schedule - названия дней недели на английском ("monday", ...).
type AddProfessionalRequest struct {
	Name       string                   `json:"name" validate:"required,max=120"`
	Schedule   map[string][]WindowModel `json:"schedule"`
	Exceptions []ScheduleExceptionModel `json:"exceptions,omitempty" validate:"dive"`
}

// WindowModel рабочее окно "HH:MM"-"HH:MM"
type WindowModel struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// ScheduleExceptionModel исключение из расписания на дату
type ScheduleExceptionModel struct {
	Date      string        `json:"date" validate:"required"`
	Available bool          `json:"available"`
	Windows   []WindowModel `json:"windows,omitempty" validate:"dive"`
}

// ProfessionalResponse HTTP response model
type ProfessionalResponse struct {
	ID         int64                    `json:"id"`
	BusinessID int64                    `json:"businessId"`
	Name       string                   `json:"name"`
	IsActive   bool                     `json:"isActive"`
	Schedule   map[string][]WindowModel `json:"schedule"`
	Exceptions []ScheduleExceptionModel `json:"exceptions"`
	CreatedAt  string                   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AddProfessionalRequest) ToUseCaseRequest(userID, businessID int64) (*addProfessional.Request, error) {
	var schedule domain.WeeklySchedule
	for key, windows := range r.Schedule {
		day, ok := parseWeekday(key)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", key)
		}
		schedule[day] = toDomainWindows(windows)
	}

	exceptions := make([]domain.ScheduleException, 0, len(r.Exceptions))
	for _, e := range r.Exceptions {
		date, err := time.Parse(domain.DateFormat, e.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid exception date %q: %w", e.Date, err)
		}
		exceptions = append(exceptions, domain.ScheduleException{
			Date:      date,
			Available: e.Available,
			Windows:   toDomainWindows(e.Windows),
		})
	}

	return &addProfessional.Request{
		UserID:     userID,
		BusinessID: businessID,
		Name:       r.Name,
		Schedule:   schedule,
		Exceptions: exceptions,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addProfessional.Response) *ProfessionalResponse {
	schedule := make(map[string][]WindowModel)
	for day := time.Sunday; day <= time.Saturday; day++ {
		if windows := resp.Schedule.Windows(day); len(windows) > 0 {
			schedule[strings.ToLower(day.String())] = fromDomainWindows(windows)
		}
	}

	exceptions := make([]ScheduleExceptionModel, 0, len(resp.Exceptions))
	for _, e := range resp.Exceptions {
		exceptions = append(exceptions, ScheduleExceptionModel{
			Date:      e.Date.Format(domain.DateFormat),
			Available: e.Available,
			Windows:   fromDomainWindows(e.Windows),
		})
	}

	return &ProfessionalResponse{
		ID:         resp.ID,
		BusinessID: resp.BusinessID,
		Name:       resp.Name,
		IsActive:   resp.IsActive,
		Schedule:   schedule,
		Exceptions: exceptions,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}

func parseWeekday(name string) (time.Weekday, bool) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(name, day.String()) {
			return day, true
		}
	}
	return 0, false
}

func toDomainWindows(windows []WindowModel) []domain.TimeWindow {
	result := make([]domain.TimeWindow, 0, len(windows))
	for _, w := range windows {
		result = append(result, domain.TimeWindow{
			Start: types.TimeString(w.Start),
			End:   types.TimeString(w.End),
		})
	}
	return result
}

func fromDomainWindows(windows []domain.TimeWindow) []WindowModel {
	result := make([]WindowModel, 0, len(windows))
	for _, w := range windows {
		result = append(result, WindowModel{Start: w.Start.String(), End: w.End.String()})
	}
	return result
}
