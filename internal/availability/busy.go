package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type interval struct {
	start int
	end   int
}

type busySet []interval

// busyIntervals collects same-date bookings widened by buffer and same-date blocks as-is
func busyIntervals(date time.Time, bookings []*domain.Booking, blocks []*domain.BlockedRange, buffer int) busySet {
	set := make(busySet, 0, len(bookings)+len(blocks))

	for _, b := range bookings {
		if b == nil || !b.OnDate(date) {
			continue
		}
		set = append(set, interval{
			start: b.StartTime.Minutes() - buffer,
			end:   b.EndTime.Minutes() + buffer,
		})
	}

	for _, b := range blocks {
		if b == nil || !b.OnDate(date) {
			continue
		}
		set = append(set, interval{
			start: b.StartTime.Minutes(),
			end:   b.EndTime.Minutes(),
		})
	}

	return set
}

func (s busySet) overlaps(start, end int) bool {
	for _, iv := range s {
		if domain.OverlapsMinutes(start, end, iv.start, iv.end) {
			return true
		}
	}
	return false
}
