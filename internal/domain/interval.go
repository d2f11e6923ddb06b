package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// TimeWindow is a half-open [Start, End) interval within one calendar day
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// StartMinutes returns the window start in minutes since midnight
func (w TimeWindow) StartMinutes() int {
	return w.Start.Minutes()
}

// EndMinutes returns the window end in minutes since midnight
func (w TimeWindow) EndMinutes() int {
	return w.End.Minutes()
}

// Contains returns true if other lies entirely inside w
func (w TimeWindow) Contains(other TimeWindow) bool {
	return w.StartMinutes() <= other.StartMinutes() && other.EndMinutes() <= w.EndMinutes()
}

// DoTimeSlotsOverlap reports whether two intervals share any time.
// Touching endpoints do not overlap, so back-to-back bookings are legal.
func DoTimeSlotsOverlap(a, b TimeWindow) bool {
	return OverlapsMinutes(a.StartMinutes(), a.EndMinutes(), b.StartMinutes(), b.EndMinutes())
}

// OverlapsMinutes is DoTimeSlotsOverlap over raw minute values
func OverlapsMinutes(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// SameDate reports whether a and b fall on the same calendar day (wall clock, no zone conversion)
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates t to midnight of its calendar day in loc
func DateOnly(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// At returns the wall-clock instant of a "HH:MM" time on date's calendar day in loc
func At(date time.Time, t types.TimeString, loc *time.Location) time.Time {
	m := t.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), 0, m, 0, 0, loc)
}

// MinuteOfDay returns minutes since midnight of t's wall clock
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
