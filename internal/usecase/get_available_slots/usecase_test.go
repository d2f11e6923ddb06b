package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	configRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/config"
	professionalRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/professional"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeProfessionals map[int64]*domain.Professional

func (f fakeProfessionals) GetByID(_ context.Context, id int64) (*domain.Professional, error) {
	if p, ok := f[id]; ok {
		return p, nil
	}
	return nil, professionalRepo.ErrProfessionalNotFound
}

type fakeServices map[int64]*domain.Service

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, errors.New("boom")
}

type fakeBookings struct {
	bookings []*domain.Booking
	filter   domain.BookingsFilter
}

func (f *fakeBookings) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return f.bookings, nil
}

type fakeBlocks []*domain.BlockedRange

func (f fakeBlocks) ListByProfessionalAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.BlockedRange, error) {
	return f, nil
}

type fakeConfig struct{ cfg *domain.BusinessSlotsConfig }

func (f fakeConfig) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.BusinessSlotsConfig, error) {
	if f.cfg == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.cfg, nil
}

var date = time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC)

func fixture() (*UseCase, *fakeBookings) {
	var schedule domain.WeeklySchedule
	schedule[date.Weekday()] = []domain.TimeWindow{{Start: "09:00", End: "11:00"}}

	professionals := fakeProfessionals{
		1: {ID: 1, BusinessID: 10, IsActive: true, Schedule: schedule},
		2: {ID: 2, BusinessID: 99, IsActive: true, Schedule: schedule},
	}
	services := fakeServices{
		5: {ID: 5, BusinessID: 10, DurationMinutes: 30, IsActive: true},
		6: {ID: 6, BusinessID: 10, DurationMinutes: 30, IsActive: false},
	}
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{Date: date, StartTime: "09:30", EndTime: "10:00", Status: domain.StatusConfirmed},
		{Date: date, StartTime: "10:00", EndTime: "10:30", Status: domain.StatusCancelledByClient},
	}}

	uc := NewUseCase(professionals, services, bookings, fakeBlocks{}, fakeConfig{
		cfg: &domain.BusinessSlotsConfig{ID: 3, BusinessID: 10, StepMinutes: 30, BufferMinutes: 0},
	}, (*metrics.Metrics)(nil), logger.NewNop())
	uc.WithTimeProvider(fixedTime{now: time.Date(2030, time.March, 1, 12, 0, 0, 0, time.UTC)})

	return uc, bookings
}

func TestExecute_ReturnsEngineSlots(t *testing.T) {
	uc, bookings := fixture()

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 10, ProfessionalID: 1, ServiceID: 5, Date: date})
	require.NoError(t, err)

	starts := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.Start.String())
	}
	// cancelled booking 10:00-10:30 does not block
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, starts)
	assert.Equal(t, 30, resp.Config.StepMinutes)

	require.NotNil(t, bookings.filter.Status)
	assert.Equal(t, domain.StatusConfirmed, *bookings.filter.Status)
	assert.True(t, bookings.filter.IsSingleDate())
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "invalid input", req: Request{BusinessID: 10, ProfessionalID: 0, ServiceID: 5, Date: date}, want: ErrInvalidInput},
		{name: "past date", req: Request{BusinessID: 10, ProfessionalID: 1, ServiceID: 5, Date: date.AddDate(0, -1, 0)}, want: ErrInvalidDate},
		{name: "unknown professional", req: Request{BusinessID: 10, ProfessionalID: 7, ServiceID: 5, Date: date}, want: ErrProfessionalNotFound},
		{name: "foreign professional", req: Request{BusinessID: 10, ProfessionalID: 2, ServiceID: 5, Date: date}, want: ErrProfessionalNotFound},
		{name: "inactive service", req: Request{BusinessID: 10, ProfessionalID: 1, ServiceID: 6, Date: date}, want: ErrServiceNotFound},
		{name: "service repository failure", req: Request{BusinessID: 10, ProfessionalID: 1, ServiceID: 8, Date: date}, want: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := fixture()
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_DefaultConfig(t *testing.T) {
	uc, _ := fixture()
	uc.configRepo = fakeConfig{}

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 10, ProfessionalID: 1, ServiceID: 5, Date: date})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSlotEngineConfig(), resp.Config)
}
