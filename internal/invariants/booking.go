package invariants

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// AssertNoOverlappingBookings fails if candidate shares time with any existing booking of the same date.
// existing must already be filtered to confirmed bookings.
func AssertNoOverlappingBookings(candidate *domain.Booking, existing []*domain.Booking) error {
	for _, other := range existing {
		if other == nil || other.ID != 0 && other.ID == candidate.ID {
			continue
		}
		if !domain.SameDate(other.Date, candidate.Date) {
			continue
		}
		if domain.DoTimeSlotsOverlap(candidate.Window(), other.Window()) {
			return bookingViolation(RuleNoOverlap,
				"the requested time overlaps an existing booking from %s to %s",
				other.StartTime, other.EndTime)
		}
	}
	return nil
}

// AssertBookingInFuture fails if the booking's wall-clock instant is not strictly after now
func AssertBookingInFuture(date time.Time, start types.TimeString, now time.Time) error {
	instant := domain.At(date, start, now.Location())
	if !instant.After(now) {
		return bookingViolation(RuleInFuture,
			"cannot book a time in the past: %s %s",
			date.Format(domain.DateFormat), start)
	}
	return nil
}

// AssertLeadTimeRespected fails if the booking starts earlier than now + leadTimeMinutes.
// Starting exactly at the boundary is allowed.
func AssertLeadTimeRespected(date time.Time, start types.TimeString, leadTimeMinutes int, now time.Time) error {
	instant := domain.At(date, start, now.Location())
	earliest := now.Add(time.Duration(leadTimeMinutes) * time.Minute)
	if instant.Before(earliest) {
		return bookingViolation(RuleLeadTime,
			"bookings require at least %d minutes of advance notice",
			leadTimeMinutes)
	}
	return nil
}
