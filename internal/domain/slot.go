package domain

import "github.com/m04kA/SMC-AvailabilityService/pkg/types"

// AvailableSlot is a free [Start, End) interval of the requested duration.
// It is computed on demand and never persisted.
type AvailableSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// Window returns the slot as a TimeWindow
func (s AvailableSlot) Window() TimeWindow {
	return TimeWindow{Start: s.Start, End: s.End}
}

// CoversInstant returns true if the slot is in service at t ("start <= t < end")
func (s AvailableSlot) CoversInstant(t types.TimeString) bool {
	m := t.Minutes()
	return s.Start.Minutes() <= m && m < s.End.Minutes()
}
