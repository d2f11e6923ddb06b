package update_slots_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/config/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeService struct {
	req *models.UpsertConfigRequest
	err error
}

func (f *fakeService) Upsert(_ context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ConfigResponse{ID: 1, BusinessID: req.BusinessID, Level: models.LevelBusiness}, nil
}

func serve(svc *fakeService, payload string, withUser bool) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/businesses/{businessId}/slots-config", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodPut, "/businesses/10/slots-config", strings.NewReader(payload))
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), 42))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Saved(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, `{"stepMinutes":30,"bufferMinutes":0}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), svc.req.UserID)
	assert.Equal(t, int64(10), svc.req.BusinessID)
	require.NotNil(t, svc.req.StepMinutes)
	assert.Equal(t, 30, *svc.req.StepMinutes)
	require.NotNil(t, svc.req.BufferMinutes)
	assert.Zero(t, *svc.req.BufferMinutes)
	assert.Nil(t, svc.req.LeadTimeMinutes)
	assert.Contains(t, rec.Body.String(), `"level":"business"`)
}

func TestHandle_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		withUser bool
		err      error
		status   int
	}{
		{name: "no user", payload: `{}`, status: http.StatusUnauthorized},
		{name: "step too small", payload: `{"stepMinutes":1}`, withUser: true, status: http.StatusBadRequest},
		{name: "buffer too large", payload: `{"bufferMinutes":121}`, withUser: true, status: http.StatusBadRequest},
		{name: "lead time too large", payload: `{"leadTimeMinutes":10081}`, withUser: true, status: http.StatusBadRequest},
		{name: "not owner", payload: `{}`, withUser: true, err: config.ErrAccessDenied, status: http.StatusForbidden},
		{name: "foreign professional", payload: `{"professionalId":5}`, withUser: true, err: config.ErrProfessionalNotFound, status: http.StatusNotFound},
		{name: "invalid combination", payload: `{}`, withUser: true, err: config.ErrInvalidInput, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}

			rec := serve(svc, tt.payload, tt.withUser)

			assert.Equal(t, tt.status, rec.Code)
			if tt.err == nil {
				assert.Nil(t, svc.req)
			}
		})
	}
}
