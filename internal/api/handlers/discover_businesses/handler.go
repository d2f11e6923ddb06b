package discover_businesses

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	discoverBusinesses "github.com/m04kA/SMC-AvailabilityService/internal/usecase/discover_businesses"
)

const (
	msgInvalidParams = "некорректные параметры поиска"
	msgDateInPast    = "дата в прошлом"
)

type Handler struct {
	useCase DiscoverBusinessesUseCase
	logger  Logger
}

func NewHandler(useCase DiscoverBusinessesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/discovery/businesses
// Query params: address, category, date (YYYY-MM-DD), time (HH:MM) - все опциональны
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /discovery/businesses - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, discoverBusinesses.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, discoverBusinesses.ErrInvalidInput):
			h.logger.Warn("GET /discovery/businesses - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /discovery/businesses - Failed to discover businesses: address=%q, error=%v",
				useCaseReq.Address, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /discovery/businesses - Businesses found: mode=%s, count=%d", result.Mode, len(result.Businesses))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(useCaseReq, result))
}
