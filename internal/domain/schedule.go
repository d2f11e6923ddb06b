package domain

import "time"

// WeeklySchedule holds the recurring open hours of one professional.
// Index is time.Weekday (0 = Sunday). A nil entry means the professional does not work that day.
// Overlapping windows inside one day are accepted as-is.
type WeeklySchedule [7][]TimeWindow

// Windows returns the windows for a weekday in schedule order
func (s WeeklySchedule) Windows(day time.Weekday) []TimeWindow {
	if day < time.Sunday || day > time.Saturday {
		return nil
	}
	return s[day]
}

// ScheduleException replaces the weekly schedule for one date.
// Available=false closes the day; Available=true with no Windows also yields no slots.
type ScheduleException struct {
	Date      time.Time
	Available bool
	Windows   []TimeWindow
}

// FindException returns the exception for date's calendar day, if any
func FindException(exceptions []ScheduleException, date time.Time) (ScheduleException, bool) {
	for _, e := range exceptions {
		if SameDate(e.Date, date) {
			return e, true
		}
	}
	return ScheduleException{}, false
}
