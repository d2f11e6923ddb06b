package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID         int64            // ID клиента
	BusinessID     int64            // ID бизнеса
	ProfessionalID int64            // ID специалиста
	ServiceID      int64            // ID услуги
	Date           time.Time        // Дата бронирования (без времени)
	StartTime      types.TimeString // Время начала (например, "10:00")
	Notes          *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64
	ClientID       int64
	BusinessID     int64
	ProfessionalID int64
	ServiceID      int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         string

	// Денормализованные данные
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
