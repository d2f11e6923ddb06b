package domain

// Default slot engine values
const (
	DefaultStepMinutes     = 15
	DefaultBufferMinutes   = 10
	DefaultLeadTimeMinutes = 60

	// DefaultBookingLeadTimeMinutes lead time enforced at booking creation.
	// Independent of SlotEngineConfig.LeadTimeMinutes; callers keep the two consistent.
	DefaultBookingLeadTimeMinutes = 60
)

// Business validation constants
const (
	MinStepMinutes     = 5
	MaxStepMinutes     = 240
	MinBufferMinutes   = 0
	MaxBufferMinutes   = 120
	MinLeadTimeMinutes = 0
	MaxLeadTimeMinutes = 10080 // 1 week

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxProfessionalNameLength   = 120
	MaxSearchQueryLength        = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelledStatuses статусы отмененных бронирований
var CancelledStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByBusiness,
}

// AllStatuses все допустимые статусы
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelledByClient,
	StatusCancelledByBusiness,
	StatusNoShow,
}

// IsValidStatus проверяет, что статус известен
func IsValidStatus(s BookingStatus) bool {
	for _, known := range AllStatuses {
		if known == s {
			return true
		}
	}
	return false
}
