package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	testDate = time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC)
	// far from testDate so the lead-time cutoff never applies
	testNow = time.Date(2030, time.January, 1, 8, 0, 0, 0, time.UTC)
)

func window(start, end string) domain.TimeWindow {
	return domain.TimeWindow{Start: types.TimeString(start), End: types.TimeString(end)}
}

func scheduleOn(day time.Weekday, windows ...domain.TimeWindow) domain.WeeklySchedule {
	var s domain.WeeklySchedule
	s[day] = windows
	return s
}

func booking(date time.Time, start, end string) *domain.Booking {
	return &domain.Booking{
		Date:      date,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    domain.StatusConfirmed,
	}
}

func starts(slots []domain.AvailableSlot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.Start.String())
	}
	return result
}

func baseRequest() Request {
	return Request{
		Date:            testDate,
		ServiceDuration: 30,
		Schedule:        scheduleOn(testDate.Weekday(), window("09:00", "17:00")),
		Config:          domain.DefaultSlotEngineConfig(),
		Now:             testNow,
	}
}

func TestComputeAvailableSlots_FullDay(t *testing.T) {
	slots := ComputeAvailableSlots(baseRequest())

	require.Len(t, slots, 31)
	assert.Equal(t, domain.AvailableSlot{Start: "09:00", End: "09:30"}, slots[0])
	assert.Equal(t, domain.AvailableSlot{Start: "16:30", End: "17:00"}, slots[30])
}

func TestComputeAvailableSlots_NoWeeklyEntry(t *testing.T) {
	req := baseRequest()
	req.Schedule = scheduleOn((testDate.Weekday()+1)%7, window("09:00", "17:00"))

	slots := ComputeAvailableSlots(req)

	require.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlots_Exceptions(t *testing.T) {
	tests := []struct {
		name      string
		exception domain.ScheduleException
		expected  []string
	}{
		{
			name:      "closed day",
			exception: domain.ScheduleException{Date: testDate, Available: false},
			expected:  []string{},
		},
		{
			name:      "available without windows does not fall back",
			exception: domain.ScheduleException{Date: testDate, Available: true},
			expected:  []string{},
		},
		{
			name: "replaces weekly windows",
			exception: domain.ScheduleException{
				Date:      testDate,
				Available: true,
				Windows:   []domain.TimeWindow{window("18:00", "19:00")},
			},
			expected: []string{"18:00", "18:15", "18:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			req.Exceptions = []domain.ScheduleException{tt.exception}

			assert.Equal(t, tt.expected, starts(ComputeAvailableSlots(req)))
		})
	}
}

func TestComputeAvailableSlots_ExceptionForOtherDateIgnored(t *testing.T) {
	req := baseRequest()
	req.Exceptions = []domain.ScheduleException{{Date: testDate.AddDate(0, 0, 1), Available: false}}

	assert.Len(t, ComputeAvailableSlots(req), 31)
}

func TestComputeAvailableSlots_BufferAroundBooking(t *testing.T) {
	req := baseRequest()
	req.Schedule = scheduleOn(testDate.Weekday(), window("09:00", "12:00"))
	req.Config.BufferMinutes = 15
	req.Bookings = []*domain.Booking{booking(testDate, "09:30", "10:00")}

	got := starts(ComputeAvailableSlots(req))

	// busy range is [09:15, 10:15)
	for _, excluded := range []string{"09:00", "09:15", "09:30", "09:45", "10:00"} {
		assert.NotContains(t, got, excluded)
	}
	for _, included := range []string{"10:15", "10:30", "10:45", "11:00", "11:30"} {
		assert.Contains(t, got, included)
	}
	assert.Equal(t, "10:15", got[0])
}

func TestComputeAvailableSlots_AdjacencyWithoutBuffer(t *testing.T) {
	req := baseRequest()
	req.Schedule = scheduleOn(testDate.Weekday(), window("09:00", "11:00"))
	req.Config.BufferMinutes = 0
	req.Bookings = []*domain.Booking{booking(testDate, "09:30", "10:00")}

	got := starts(ComputeAvailableSlots(req))

	assert.Equal(t, []string{"09:00", "10:00", "10:15", "10:30"}, got)
}

func TestComputeAvailableSlots_BookingOnOtherDateIgnored(t *testing.T) {
	req := baseRequest()
	req.Bookings = []*domain.Booking{booking(testDate.AddDate(0, 0, 7), "09:00", "17:00")}

	assert.Len(t, ComputeAvailableSlots(req), 31)
}

func TestComputeAvailableSlots_BlockedRangeHasNoBuffer(t *testing.T) {
	req := baseRequest()
	req.Schedule = scheduleOn(testDate.Weekday(), window("09:00", "11:00"))
	req.Config.BufferMinutes = 30
	req.Blocks = []*domain.BlockedRange{{
		Date:      testDate,
		StartTime: "09:30",
		EndTime:   "10:00",
	}}

	got := starts(ComputeAvailableSlots(req))

	assert.Equal(t, []string{"09:00", "10:00", "10:15", "10:30"}, got)
}

func TestComputeAvailableSlots_LeadTimeSameDayOnly(t *testing.T) {
	req := baseRequest()
	req.Now = time.Date(2030, time.March, 4, 12, 10, 0, 0, time.UTC)

	got := starts(ComputeAvailableSlots(req))

	// cutoff 13:10
	require.NotEmpty(t, got)
	assert.Equal(t, "13:15", got[0])

	req.Now = time.Date(2030, time.March, 3, 23, 59, 0, 0, time.UTC)
	req.Schedule = scheduleOn(testDate.Weekday(), window("00:00", "01:00"))

	got = starts(ComputeAvailableSlots(req))

	assert.Equal(t, "00:00", got[0])
}

func TestComputeAvailableSlots_MultipleWindowsRestartStepping(t *testing.T) {
	req := baseRequest()
	req.Schedule = scheduleOn(testDate.Weekday(), window("09:00", "10:00"), window("14:10", "15:00"))
	req.Config.StepMinutes = 20

	got := starts(ComputeAvailableSlots(req))

	assert.Equal(t, []string{"09:00", "09:20", "14:10", "14:30"}, got)
}

func TestComputeAvailableSlots_NonPositiveStepUsesDefault(t *testing.T) {
	req := baseRequest()
	req.Config.StepMinutes = 0

	assert.Len(t, ComputeAvailableSlots(req), 31)
}

func TestComputeAvailableSlots_EndOfDay(t *testing.T) {
	req := baseRequest()
	req.Schedule = scheduleOn(testDate.Weekday(), window("23:00", "24:00"))

	slots := ComputeAvailableSlots(req)

	require.Len(t, slots, 3)
	assert.Equal(t, types.EndOfDay, slots[2].End)
}

func TestComputeAvailableSlots_Properties(t *testing.T) {
	req := baseRequest()
	req.Schedule = scheduleOn(testDate.Weekday(), window("08:00", "12:00"), window("13:00", "18:30"))
	req.Config.BufferMinutes = 10
	req.ServiceDuration = 45
	req.Bookings = []*domain.Booking{
		booking(testDate, "09:00", "09:45"),
		booking(testDate, "15:30", "16:00"),
	}
	req.Blocks = []*domain.BlockedRange{{Date: testDate, StartTime: "13:00", EndTime: "13:30"}}

	first := ComputeAvailableSlots(req)
	second := ComputeAvailableSlots(req)
	require.Equal(t, first, second)
	require.NotEmpty(t, first)

	windows := ResolveWorkingWindows(req.Date, req.Schedule, req.Exceptions)
	for _, slot := range first {
		assert.Equal(t, req.ServiceDuration, slot.End.Minutes()-slot.Start.Minutes())

		inside := false
		for _, w := range windows {
			if w.Contains(slot.Window()) {
				inside = true
			}
		}
		assert.True(t, inside, "slot %s-%s outside windows", slot.Start, slot.End)

		for _, b := range req.Bookings {
			widened := domain.OverlapsMinutes(slot.Start.Minutes(), slot.End.Minutes(),
				b.StartTime.Minutes()-req.Config.BufferMinutes, b.EndTime.Minutes()+req.Config.BufferMinutes)
			assert.False(t, widened, "slot %s-%s overlaps booking", slot.Start, slot.End)
		}
	}
}

func TestResolveWorkingWindows(t *testing.T) {
	schedule := scheduleOn(testDate.Weekday(), window("09:00", "17:00"))

	assert.Equal(t, []domain.TimeWindow{window("09:00", "17:00")},
		ResolveWorkingWindows(testDate, schedule, nil))

	// late evening instant still maps to the same weekday
	late := time.Date(2030, time.March, 4, 23, 30, 0, 0, time.UTC)
	assert.Len(t, ResolveWorkingWindows(late, schedule, nil), 1)

	closed := []domain.ScheduleException{{Date: testDate, Available: false}}
	assert.Empty(t, ResolveWorkingWindows(testDate, schedule, closed))
}

func TestIsSlotAvailable(t *testing.T) {
	req := baseRequest()
	req.Bookings = []*domain.Booking{booking(testDate, "10:00", "10:30")}

	assert.True(t, IsSlotAvailable(req, "09:00"))
	assert.False(t, IsSlotAvailable(req, "10:00"))
	assert.False(t, IsSlotAvailable(req, "09:05"))
}

func TestComputeAvailableSlots_BookingEndingAtMidnightFromStorage(t *testing.T) {
	var start, end types.TimeString
	require.NoError(t, start.Scan(time.Date(0, 1, 1, 23, 30, 0, 0, time.UTC)))
	require.NoError(t, end.Scan(time.Date(0, 1, 2, 0, 0, 0, 0, time.UTC)))

	req := baseRequest()
	req.Schedule = scheduleOn(testDate.Weekday(), window("23:00", "24:00"))
	req.Bookings = []*domain.Booking{booking(testDate, start.String(), end.String())}

	got := starts(ComputeAvailableSlots(req))

	assert.NotContains(t, got, "23:30")
	assert.False(t, IsSlotAvailable(req, "23:30"))
}
