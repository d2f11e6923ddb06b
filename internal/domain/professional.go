package domain

import "time"

// Professional is the bookable resource of a business
type Professional struct {
	ID         int64
	BusinessID int64
	Name       string
	IsActive   bool
	Schedule   WeeklySchedule
	Exceptions []ScheduleException
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ActiveProfessionals returns active professionals, preserving order
func ActiveProfessionals(professionals []*Professional) []*Professional {
	result := make([]*Professional, 0, len(professionals))
	for _, p := range professionals {
		if p.IsActive {
			result = append(result, p)
		}
	}
	return result
}
