package discovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	date = time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC)
	now  = time.Date(2030, time.March, 1, 12, 0, 0, 0, time.UTC)
)

func professional(id int64, start, end string) *domain.Professional {
	var schedule domain.WeeklySchedule
	schedule[date.Weekday()] = []domain.TimeWindow{{Start: types.TimeString(start), End: types.TimeString(end)}}
	return &domain.Professional{ID: id, IsActive: true, Schedule: schedule}
}

func service(id int64, duration int) *domain.Service {
	return &domain.Service{ID: id, DurationMinutes: duration, IsActive: true}
}

func entry(businessID int64, professionals []*domain.Professional, services ...*domain.Service) Entry {
	return Entry{
		Business:      &domain.Business{ID: businessID, Plan: domain.PlanUnlimited},
		Professionals: professionals,
		Services:      services,
		Config:        domain.DefaultSlotEngineConfig(),
	}
}

func ids(result []DiscoveredBusiness) []int64 {
	out := make([]int64, 0, len(result))
	for _, r := range result {
		out = append(out, r.Business.ID)
	}
	return out
}

func TestFilterBusinessesByAvailability_RanksBySlots(t *testing.T) {
	a := entry(1, []*domain.Professional{professional(10, "09:00", "10:00")}, service(1, 30))
	b := entry(2, []*domain.Professional{professional(20, "09:00", "17:00")}, service(2, 30))

	result := FilterBusinessesByAvailability([]Entry{a, b}, Query{Date: &date}, now)

	require.Len(t, result, 2)
	assert.Equal(t, []int64{2, 1}, ids(result))
	assert.Greater(t, result[0].TotalSlots, result[1].TotalSlots)
}

func TestFilterBusinessesByAvailability_ProfessionalConfig(t *testing.T) {
	a := entry(1, []*domain.Professional{professional(10, "09:00", "10:00")}, service(1, 30))
	b := entry(2, []*domain.Professional{professional(20, "09:00", "11:00")}, service(2, 30))
	hourly := domain.DefaultSlotEngineConfig()
	hourly.StepMinutes = 60
	b.Configs = map[int64]domain.SlotEngineConfig{20: hourly}

	result := FilterBusinessesByAvailability([]Entry{a, b}, Query{Date: &date}, now)

	require.Len(t, result, 2)
	assert.Equal(t, []int64{1, 2}, ids(result))
	assert.Equal(t, 2, result[1].TotalSlots)
	assert.Equal(t, a.Config, a.ConfigFor(10))
}

func TestFilterBusinessesByAvailability_TimeFilter(t *testing.T) {
	a := entry(1, []*domain.Professional{professional(10, "09:00", "10:00")}, service(1, 30))
	b := entry(2, []*domain.Professional{professional(20, "15:00", "17:00")}, service(2, 30))

	at := types.TimeString("16:00")
	result := FilterBusinessesByAvailability([]Entry{a, b}, Query{Date: &date, Time: &at}, now)

	require.Len(t, result, 1)
	assert.Equal(t, int64(2), result[0].Business.ID)
	for _, slot := range result[0].Professionals[0].Slots {
		assert.True(t, slot.CoversInstant(at))
	}
	// 15:45, 16:00 starts are in service at 16:00; 15:30 ends exactly at 16:00
	assert.Equal(t, 2, result[0].TotalSlots)

	slots := EvaluateProfessional(a.Professionals[0], 30, date, &at, nil, nil, a.Config, now)
	assert.Empty(t, slots)
}

func TestFilterBusinessesByAvailability_DropsInactive(t *testing.T) {
	inactiveService := service(1, 30)
	inactiveService.IsActive = false
	noServices := entry(1, []*domain.Professional{professional(10, "09:00", "17:00")}, inactiveService)

	inactivePro := professional(20, "09:00", "17:00")
	inactivePro.IsActive = false
	noPros := entry(2, []*domain.Professional{inactivePro}, service(2, 30))

	closed := professional(30, "09:00", "17:00")
	closed.Exceptions = []domain.ScheduleException{{Date: date, Available: false}}
	noSlots := entry(3, []*domain.Professional{closed}, service(3, 30))

	result := FilterBusinessesByAvailability([]Entry{noServices, noPros, noSlots}, Query{Date: &date}, now)

	assert.Empty(t, result)
}

func TestFilterBusinessesByAvailability_ProfessionalsWithoutSlotsDropped(t *testing.T) {
	closed := professional(11, "09:00", "17:00")
	closed.Exceptions = []domain.ScheduleException{{Date: date, Available: false}}
	e := entry(1, []*domain.Professional{closed, professional(12, "09:00", "10:00")}, service(1, 30))

	result := FilterBusinessesByAvailability([]Entry{e}, Query{Date: &date}, now)

	require.Len(t, result, 1)
	require.Len(t, result[0].Professionals, 1)
	assert.Equal(t, int64(12), result[0].Professionals[0].Professional.ID)
	assert.Equal(t, 3, result[0].TotalSlots)
}

func TestFilterBusinessesByAvailability_UsesBookingsPerProfessional(t *testing.T) {
	e := entry(1, []*domain.Professional{professional(10, "09:00", "10:00")}, service(1, 30))
	e.Bookings = map[int64][]*domain.Booking{
		10: {{Date: date, StartTime: "09:00", EndTime: "10:00", Status: domain.StatusConfirmed}},
	}

	result := FilterBusinessesByAvailability([]Entry{e}, Query{Date: &date}, now)

	assert.Empty(t, result)
}

func TestFilterBusinessesByAvailability_TiesKeepInputOrder(t *testing.T) {
	entries := []Entry{
		entry(3, []*domain.Professional{professional(30, "09:00", "10:00")}, service(3, 30)),
		entry(1, []*domain.Professional{professional(10, "09:00", "10:00")}, service(1, 30)),
		entry(2, []*domain.Professional{professional(20, "09:00", "12:00")}, service(2, 30)),
	}

	result := FilterBusinessesByAvailability(entries, Query{Date: &date}, now)

	assert.Equal(t, []int64{2, 3, 1}, ids(result))
}

func TestFilterBusinessesByAvailability_ListingMode(t *testing.T) {
	inactive := service(2, 15)
	inactive.IsActive = false
	entries := []Entry{
		entry(5, nil, service(1, 30), inactive),
		entry(4, []*domain.Professional{professional(10, "09:00", "10:00")}),
	}

	result := FilterBusinessesByAvailability(entries, Query{Time: ptr.Ptr(types.TimeString("10:00"))}, now)

	require.Len(t, result, 2)
	assert.Equal(t, []int64{5, 4}, ids(result))
	require.Len(t, result[0].Services, 1)
	assert.Equal(t, int64(1), result[0].Services[0].ID)
	assert.Nil(t, result[0].ReferenceService)
	assert.Zero(t, result[0].TotalSlots)
}

func TestReferenceService(t *testing.T) {
	long := service(1, 60)
	first := service(2, 20)
	second := service(3, 20)
	inactive := service(4, 10)
	inactive.IsActive = false

	assert.Same(t, first, ReferenceService([]*domain.Service{long, first, second, inactive}))
	assert.Nil(t, ReferenceService([]*domain.Service{inactive}))
}
