package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// BlockedRange is a manual block on a professional's calendar.
// It always excludes slots regardless of any booking status.
type BlockedRange struct {
	ID             int64
	ProfessionalID int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Reason         *string
	CreatedAt      time.Time
}

// Window returns the blocked interval
func (b *BlockedRange) Window() TimeWindow {
	return TimeWindow{Start: b.StartTime, End: b.EndTime}
}

// OnDate returns true if the block belongs to the calendar day of date
func (b *BlockedRange) OnDate(date time.Time) bool {
	return SameDate(b.Date, date)
}
