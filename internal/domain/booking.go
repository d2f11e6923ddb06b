package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByClient   BookingStatus = "cancelled_by_client"
	StatusCancelledByBusiness BookingStatus = "cancelled_by_business"
	StatusNoShow              BookingStatus = "no_show"
)

// Booking represents a reservation of one professional's time for one service
type Booking struct {
	ID             int64
	ClientID       int64
	BusinessID     int64
	ProfessionalID int64
	ServiceID      int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the booked interval
func (b *Booking) Window() TimeWindow {
	return TimeWindow{Start: b.StartTime, End: b.EndTime}
}

// IsConfirmed returns true if the booking takes part in conflict computation
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledByBusiness
}

// OnDate returns true if the booking belongs to the calendar day of date
func (b *Booking) OnDate(date time.Time) bool {
	return SameDate(b.Date, date)
}

// ConfirmedOnly returns the confirmed subset of bookings, preserving order
func ConfirmedOnly(bookings []*Booking) []*Booking {
	result := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsConfirmed() {
			result = append(result, b)
		}
	}
	return result
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	BusinessID     int64          // Обязательный параметр
	ProfessionalID *int64         // Фильтр по специалисту (опционально)
	ClientID       *int64         // Фильтр по клиенту (опционально)
	StartDate      *time.Time     // Начало периода (опционально)
	EndDate        *time.Time     // Конец периода (опционально)
	Status         *BookingStatus // Фильтр по статусу (опционально)
}

// IsSingleDate returns true if the filter targets exactly one calendar day
func (f BookingsFilter) IsSingleDate() bool {
	return f.StartDate != nil && f.EndDate != nil && SameDate(*f.StartDate, *f.EndDate)
}
