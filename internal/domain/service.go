package domain

import "time"

// Service is something a business sells, with a fixed duration
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	Price           *float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PriceOrZero returns the price or 0 when it is not set
func (s *Service) PriceOrZero() float64 {
	if s.Price == nil {
		return 0
	}
	return *s.Price
}

// ActiveServices returns active services, preserving order
func ActiveServices(services []*Service) []*Service {
	result := make([]*Service, 0, len(services))
	for _, s := range services {
		if s.IsActive {
			result = append(result, s)
		}
	}
	return result
}
