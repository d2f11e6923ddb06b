package add_professional

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на добавление специалиста
type Request struct {
	UserID     int64 // ID пользователя (должен быть владельцем)
	BusinessID int64
	Name       string
	Schedule   domain.WeeklySchedule
	Exceptions []domain.ScheduleException
}

// Response модель ответа
type Response struct {
	ID         int64
	BusinessID int64
	Name       string
	IsActive   bool
	Schedule   domain.WeeklySchedule
	Exceptions []domain.ScheduleException
	CreatedAt  time.Time
}
