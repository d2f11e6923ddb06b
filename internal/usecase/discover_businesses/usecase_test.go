package discover_businesses

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	configRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/config"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	date = time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC)
	now  = time.Date(2030, time.March, 1, 12, 0, 0, 0, time.UTC)

	errStorage = errors.New("storage unavailable")
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeSearcher struct {
	businesses []*domain.Business
	err        error
}

func (f fakeSearcher) SearchByAddress(_ context.Context, _ string, _ *string) ([]*domain.Business, error) {
	return f.businesses, f.err
}

type fakeProfessionals struct {
	byBusiness map[int64][]*domain.Professional
	failing    map[int64]bool
}

func (f fakeProfessionals) ListByBusiness(_ context.Context, businessID int64) ([]*domain.Professional, error) {
	if f.failing[businessID] {
		return nil, errStorage
	}
	return f.byBusiness[businessID], nil
}

type fakeServices map[int64][]*domain.Service

func (f fakeServices) ListByBusiness(_ context.Context, businessID int64) ([]*domain.Service, error) {
	return f[businessID], nil
}

type fakeBookings map[int64][]*domain.Booking

func (f fakeBookings) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return f[*filter.ProfessionalID], nil
}

type fakeBlocks struct{ failing map[int64]bool }

func (f fakeBlocks) ListByProfessionalAndDate(_ context.Context, professionalID int64, _ time.Time) ([]*domain.BlockedRange, error) {
	if f.failing[professionalID] {
		return nil, errStorage
	}
	return nil, nil
}

// fakeConfig keyed by professional id
type fakeConfig map[int64]*domain.BusinessSlotsConfig

func (f fakeConfig) GetConfigWithHierarchy(_ context.Context, _ int64, professionalID *int64) (*domain.BusinessSlotsConfig, error) {
	if professionalID == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	if config, ok := f[*professionalID]; ok {
		return config, nil
	}
	return nil, configRepo.ErrConfigNotFound
}

type fakeMetrics struct {
	mu       sync.Mutex
	failures map[string]int
	modes    []string
}

func (f *fakeMetrics) ObserveDiscovery(mode string, _ float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modes = append(f.modes, mode)
}

func (f *fakeMetrics) IncFetchFailure(level string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[level]++
}

func (f *fakeMetrics) ObserveSlots(_ string, _ int) {}

func professional(id, businessID int64, start, end string) *domain.Professional {
	var schedule domain.WeeklySchedule
	schedule[date.Weekday()] = []domain.TimeWindow{{Start: types.TimeString(start), End: types.TimeString(end)}}
	return &domain.Professional{ID: id, BusinessID: businessID, IsActive: true, Schedule: schedule}
}

type fixture struct {
	uc            *UseCase
	searcher      *fakeSearcher
	professionals fakeProfessionals
	blocks        fakeBlocks
	configs       fakeConfig
	metrics       *fakeMetrics
}

func newFixture() *fixture {
	f := &fixture{
		searcher: &fakeSearcher{businesses: []*domain.Business{
			{ID: 1, Name: "Short day", Plan: domain.PlanIndividual},
			{ID: 2, Name: "Long day", Plan: domain.PlanDuo},
			{ID: 3, Name: "No services", Plan: domain.PlanIndividual},
		}},
		professionals: fakeProfessionals{
			byBusiness: map[int64][]*domain.Professional{
				1: {professional(10, 1, "09:00", "10:00")},
				2: {professional(20, 2, "09:00", "12:00"), professional(21, 2, "15:00", "17:00")},
				3: {professional(30, 3, "09:00", "17:00")},
			},
			failing: map[int64]bool{},
		},
		blocks:  fakeBlocks{failing: map[int64]bool{}},
		configs: fakeConfig{},
		metrics: &fakeMetrics{failures: map[string]int{}},
	}

	services := fakeServices{
		1: {{ID: 100, BusinessID: 1, DurationMinutes: 30, IsActive: true}},
		2: {{ID: 200, BusinessID: 2, DurationMinutes: 30, IsActive: true}},
		3: {{ID: 300, BusinessID: 3, DurationMinutes: 30, IsActive: false}},
	}
	bookings := fakeBookings{
		20: {{ID: 1, Date: date, StartTime: "09:00", EndTime: "12:00", Status: domain.StatusConfirmed}},
	}

	f.uc = NewUseCase(
		f.searcher,
		f.professionals,
		services,
		bookings,
		f.blocks,
		f.configs,
		f.metrics,
		Options{MaxConcurrency: 2, FetchTimeout: time.Second},
		logger.NewNop(),
	).WithTimeProvider(fixedTime{now: now})

	return f
}

func businessIDs(resp *Response) []int64 {
	out := make([]int64, 0, len(resp.Businesses))
	for _, b := range resp.Businesses {
		out = append(out, b.Business.ID)
	}
	return out
}

func TestExecute_AvailabilityRanksBusinesses(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{Address: "main", Date: &date})
	require.NoError(t, err)

	assert.Equal(t, ModeAvailability, resp.Mode)
	// professional 20 is fully booked, professional 21 has 15:00-17:00
	assert.Equal(t, []int64{2, 1}, businessIDs(resp))
	require.Len(t, resp.Businesses[0].Professionals, 1)
	assert.Equal(t, int64(21), resp.Businesses[0].Professionals[0].Professional.ID)
	assert.Equal(t, []string{string(ModeAvailability)}, f.metrics.modes)
	assert.Empty(t, f.metrics.failures)
}

func TestExecute_ProfessionalConfigOverride(t *testing.T) {
	f := newFixture()
	f.configs[21] = &domain.BusinessSlotsConfig{
		BusinessID:     2,
		ProfessionalID: ptr.Ptr(int64(21)),
		StepMinutes:    60,
	}

	resp, err := f.uc.Execute(context.Background(), &Request{Address: "main", Date: &date})
	require.NoError(t, err)

	// 15:00 and 16:00 on the hourly grid against 09:00, 09:15, 09:30 of business 1
	assert.Equal(t, []int64{1, 2}, businessIDs(resp))
	assert.Equal(t, 2, resp.Businesses[1].TotalSlots)
	assert.Equal(t, 3, resp.Businesses[0].TotalSlots)
}

func TestExecute_TimeFilter(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{Date: &date, Time: ptr.Ptr(types.TimeString("09:30"))})
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, businessIDs(resp))
	assert.Equal(t, 2, resp.Businesses[0].TotalSlots)
}

func TestExecute_ListingMode(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{Address: "main"})
	require.NoError(t, err)

	assert.Equal(t, ModeListing, resp.Mode)
	assert.Equal(t, []int64{1, 2, 3}, businessIDs(resp))
	assert.Empty(t, resp.Businesses[2].Services)
}

func TestExecute_PartialFailures(t *testing.T) {
	f := newFixture()
	f.professionals.failing[1] = true
	f.blocks.failing[21] = true

	resp, err := f.uc.Execute(context.Background(), &Request{Date: &date})
	require.NoError(t, err)

	// business 1 dropped entirely; business 2 lost its only free professional
	assert.Empty(t, resp.Businesses)
	assert.Equal(t, 1, f.metrics.failures[levelBusiness])
	assert.Equal(t, 1, f.metrics.failures[levelProfessional])
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Time: ptr.Ptr(types.TimeString("10:00"))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	past := now.AddDate(0, 0, -1)
	_, err = f.uc.Execute(context.Background(), &Request{Date: &past})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.uc.Execute(context.Background(), &Request{Date: &date, Time: ptr.Ptr(types.TimeString("25:00"))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.searcher.err = errStorage
	_, err = f.uc.Execute(context.Background(), &Request{Date: &date})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_CancelledContext(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.Execute(ctx, &Request{Date: &date})

	assert.ErrorIs(t, err, ErrInternal)
}
