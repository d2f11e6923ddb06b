package get_slots_config

import (
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/config/models"
)

// ToServiceRequest формирует запрос к сервису из URL и query параметров
func ToServiceRequest(businessID int64, professionalIDStr string) (*models.GetConfigRequest, error) {
	req := &models.GetConfigRequest{BusinessID: businessID}

	if professionalIDStr != "" {
		professionalID, err := strconv.ParseInt(professionalIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ProfessionalID = &professionalID
	}

	return req, nil
}
