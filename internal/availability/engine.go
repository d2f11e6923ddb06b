// Package availability computes the free slots of one professional on one date.
//
// Everything here is pure: inputs are read-only snapshots, the clock is passed in
// as Now, and the result is a freshly allocated slice. Functions are safe to call
// from any number of goroutines.
package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request input of the slot engine for exactly one date and one professional
type Request struct {
	Date            time.Time
	ServiceDuration int // minutes
	Schedule        domain.WeeklySchedule
	Exceptions      []domain.ScheduleException
	Bookings        []*domain.Booking // confirmed only, the engine does not look at status
	Blocks          []*domain.BlockedRange
	Config          domain.SlotEngineConfig
	Now             time.Time
}

// ComputeAvailableSlots returns the chronologically ordered free slots for req.Date.
// No availability is an empty slice, never an error.
func ComputeAvailableSlots(req Request) []domain.AvailableSlot {
	windows := ResolveWorkingWindows(req.Date, req.Schedule, req.Exceptions)
	if len(windows) == 0 || req.ServiceDuration <= 0 {
		return []domain.AvailableSlot{}
	}

	step := req.Config.StepMinutes
	if step <= 0 {
		step = domain.DefaultStepMinutes
	}

	cutoff, hasCutoff := leadTimeCutoff(req.Date, req.Now, req.Config.LeadTimeMinutes)
	busy := busyIntervals(req.Date, req.Bookings, req.Blocks, req.Config.BufferMinutes)

	slots := make([]domain.AvailableSlot, 0)
	for _, w := range windows {
		windowStart, windowEnd := w.StartMinutes(), w.EndMinutes()

		for start := windowStart; start+req.ServiceDuration <= windowEnd; start += step {
			end := start + req.ServiceDuration

			if hasCutoff && start < cutoff {
				continue
			}
			if busy.overlaps(start, end) {
				continue
			}

			slots = append(slots, domain.AvailableSlot{
				Start: types.MinutesToTime(start),
				End:   endTime(end),
			})
		}
	}

	return slots
}

// ResolveWorkingWindows returns the working windows for date.
// An exception for the exact date fully replaces the weekly schedule (no merge).
func ResolveWorkingWindows(date time.Time, schedule domain.WeeklySchedule, exceptions []domain.ScheduleException) []domain.TimeWindow {
	if exception, ok := domain.FindException(exceptions, date); ok {
		if !exception.Available {
			return nil
		}
		return exception.Windows
	}

	return schedule.Windows(weekdayAtNoon(date))
}

// IsSlotAvailable reports whether [start, start+duration) is among the computed slots
func IsSlotAvailable(req Request, start types.TimeString) bool {
	want := start.Minutes()
	for _, slot := range ComputeAvailableSlots(req) {
		if slot.Start.Minutes() == want {
			return true
		}
	}
	return false
}

// weekdayAtNoon keeps DST transitions around midnight from shifting the day
func weekdayAtNoon(date time.Time) time.Weekday {
	return time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location()).Weekday()
}

// leadTimeCutoff applies only when the query date is now's calendar date
func leadTimeCutoff(date, now time.Time, leadTimeMinutes int) (int, bool) {
	if !domain.SameDate(date, now) {
		return 0, false
	}
	return domain.MinuteOfDay(now) + leadTimeMinutes, true
}

func endTime(minutes int) types.TimeString {
	if minutes == types.MinutesPerDay {
		return types.EndOfDay
	}
	return types.MinutesToTime(minutes)
}
