package update_slots_config

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/service/config/models"
)

// UpdateSlotsConfigRequest HTTP request model.
// Диапазоны повторно проверяются сервисом.
type UpdateSlotsConfigRequest struct {
	ProfessionalID  *int64 `json:"professionalId,omitempty" validate:"omitempty,gt=0"`
	StepMinutes     *int   `json:"stepMinutes,omitempty" validate:"omitempty,min=5,max=240"`
	BufferMinutes   *int   `json:"bufferMinutes,omitempty" validate:"omitempty,min=0,max=120"`
	LeadTimeMinutes *int   `json:"leadTimeMinutes,omitempty" validate:"omitempty,min=0,max=10080"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSlotsConfigRequest) ToServiceRequest(userID, businessID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:          userID,
		BusinessID:      businessID,
		ProfessionalID:  r.ProfessionalID,
		StepMinutes:     r.StepMinutes,
		BufferMinutes:   r.BufferMinutes,
		LeadTimeMinutes: r.LeadTimeMinutes,
	}
}
