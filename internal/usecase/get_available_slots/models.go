package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID     int64     // ID бизнеса
	ProfessionalID int64     // ID специалиста
	ServiceID      int64     // ID услуги
	Date           time.Time // Дата (без времени, локальное время бизнеса)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	BusinessID      int64
	ProfessionalID  int64
	ServiceID       int64
	DurationMinutes int
	Config          domain.SlotEngineConfig // Примененная конфигурация
	Slots           []domain.AvailableSlot
}
