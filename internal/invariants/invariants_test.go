package invariants

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var date = time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC)

func newBooking(d time.Time, start, end string) *domain.Booking {
	return &domain.Booking{
		Date:      d,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    domain.StatusConfirmed,
	}
}

func TestAssertNoOverlappingBookings(t *testing.T) {
	existing := []*domain.Booking{
		newBooking(date, "10:00", "11:00"),
		newBooking(date.AddDate(0, 0, 1), "12:00", "13:00"),
	}

	tests := []struct {
		name      string
		candidate *domain.Booking
		wantErr   bool
	}{
		{name: "overlaps start", candidate: newBooking(date, "09:30", "10:30"), wantErr: true},
		{name: "inside", candidate: newBooking(date, "10:15", "10:45"), wantErr: true},
		{name: "touching before", candidate: newBooking(date, "09:00", "10:00")},
		{name: "touching after", candidate: newBooking(date, "11:00", "11:30")},
		{name: "other date", candidate: newBooking(date, "12:00", "13:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertNoOverlappingBookings(tt.candidate, existing)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBookingInvariant))
			assert.True(t, IsRule(err, RuleNoOverlap))
			assert.Contains(t, err.Error(), "10:00")
			assert.Contains(t, err.Error(), "11:00")
		})
	}
}

func TestAssertNoOverlappingBookings_EndOfDayFromStorage(t *testing.T) {
	var end types.TimeString
	require.NoError(t, end.Scan(time.Date(0, 1, 2, 0, 0, 0, 0, time.UTC)))
	existing := []*domain.Booking{newBooking(date, "23:30", end.String())}

	err := AssertNoOverlappingBookings(newBooking(date, "23:30", "24:00"), existing)

	require.Error(t, err)
	assert.True(t, IsRule(err, RuleNoOverlap))
}

func TestAssertBookingInFuture(t *testing.T) {
	now := time.Date(2030, time.March, 4, 10, 0, 0, 0, time.UTC)

	err := AssertBookingInFuture(date, "10:00", now)
	require.Error(t, err)
	assert.True(t, IsRule(err, RuleInFuture))

	assert.Error(t, AssertBookingInFuture(date, "09:59", now))
	assert.NoError(t, AssertBookingInFuture(date, "10:01", now))
	assert.NoError(t, AssertBookingInFuture(date.AddDate(0, 0, 1), "00:00", now))
}

func TestAssertLeadTimeRespected(t *testing.T) {
	now := time.Date(2030, time.March, 4, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, AssertLeadTimeRespected(date, "10:00", 60, now), "exact boundary passes")

	err := AssertLeadTimeRespected(date, "09:59", 60, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBookingInvariant))
	assert.True(t, IsRule(err, RuleLeadTime))
	assert.Contains(t, err.Error(), "60")

	assert.NoError(t, AssertLeadTimeRespected(date, "12:00", 60, now))
}

func TestAssertProfessionalLimit(t *testing.T) {
	tests := []struct {
		plan    domain.BusinessPlan
		count   int
		wantErr bool
	}{
		{plan: domain.PlanIndividual, count: 0},
		{plan: domain.PlanIndividual, count: 1, wantErr: true},
		{plan: domain.PlanDuo, count: 1},
		{plan: domain.PlanDuo, count: 2, wantErr: true},
		{plan: domain.PlanUnlimited, count: 10000},
		{plan: domain.BusinessPlan("gold"), count: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			err := AssertProfessionalLimit(tt.plan, tt.count)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBusinessInvariant))
			assert.False(t, errors.Is(err, ErrBookingInvariant))

			v, ok := AsViolation(err)
			require.True(t, ok)
			assert.Equal(t, RuleProfessionalLimit, v.Rule)
			assert.NotEmpty(t, v.Message)
		})
	}
}
