package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/invariants"
	createBooking "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeUseCase struct {
	req  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.req = req
	return f.resp, f.err
}

const validBody = `{"businessId":10,"professionalId":1,"serviceId":5,"bookingDate":"2030-03-04","startTime":"10:00"}`

func serve(uc *fakeUseCase, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	date := time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:             7,
		ClientID:       42,
		BusinessID:     10,
		ProfessionalID: 1,
		ServiceID:      5,
		Date:           date,
		StartTime:      "10:00",
		EndTime:        "10:30",
		Status:         string(domain.StatusConfirmed),
		ServiceName:    "Haircut",
	}}

	rec := serve(uc, validBody, 42)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(42), uc.req.UserID)
	assert.Equal(t, date, uc.req.Date)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "2030-03-04", resp.BookingDate)
	assert.Equal(t, "10:30", resp.EndTime)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	date := time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC)
	overlap := invariants.AssertNoOverlappingBookings(
		&domain.Booking{Date: date, StartTime: "10:00", EndTime: "10:30"},
		[]*domain.Booking{{Date: date, StartTime: "10:15", EndTime: "10:45"}},
	)
	leadTime := invariants.AssertLeadTimeRespected(date, "10:00", 60, date.Add(9*time.Hour+30*time.Minute))

	tests := []struct {
		name   string
		err    error
		status int
		rule   string
	}{
		{name: "overlap", err: overlap, status: http.StatusConflict, rule: "no_overlap"},
		{name: "lead time", err: leadTime, status: http.StatusUnprocessableEntity, rule: "lead_time"},
		{name: "slot not available", err: createBooking.ErrSlotNotAvailable, status: http.StatusConflict},
		{name: "professional not found", err: createBooking.ErrProfessionalNotFound, status: http.StatusNotFound},
		{name: "service not found", err: createBooking.ErrServiceNotFound, status: http.StatusNotFound},
		{name: "does not fit the day", err: createBooking.ErrInvalidTimeSlot, status: http.StatusBadRequest},
		{name: "internal", err: createBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, validBody, 42)

			assert.Equal(t, tt.status, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.rule, resp.Rule)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		userID int64
		status int
	}{
		{name: "no user", body: validBody, status: http.StatusUnauthorized},
		{name: "malformed json", body: `{`, userID: 42, status: http.StatusBadRequest},
		{name: "unknown field", body: `{"businessId":10,"professionalId":1,"serviceId":5,"bookingDate":"2030-03-04","startTime":"10:00","x":1}`, userID: 42, status: http.StatusBadRequest},
		{name: "missing service", body: `{"businessId":10,"professionalId":1,"bookingDate":"2030-03-04","startTime":"10:00"}`, userID: 42, status: http.StatusBadRequest},
		{name: "bad date", body: `{"businessId":10,"professionalId":1,"serviceId":5,"bookingDate":"04.03.2030","startTime":"10:00"}`, userID: 42, status: http.StatusBadRequest},
		{name: "bad time", body: `{"businessId":10,"professionalId":1,"serviceId":5,"bookingDate":"2030-03-04","startTime":"25:00"}`, userID: 42, status: http.StatusBadRequest},
		{name: "end of day start", body: `{"businessId":10,"professionalId":1,"serviceId":5,"bookingDate":"2030-03-04","startTime":"24:00"}`, userID: 42, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}

			rec := serve(uc, tt.body, tt.userID)

			assert.Equal(t, tt.status, rec.Code)
			assert.Nil(t, uc.req)
		})
	}
}
