package domain

// Default availability policy values
const (
	DefaultSlotDurationMinutes = 60
	DefaultBufferMinutes       = 15
	DefaultHorizonDays         = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinBufferMinutes       = 0
	MaxBufferMinutes       = 240
	MinHorizonDays         = 1
	MaxHorizonDays         = 365 // 1 year
	MaxTopicLength         = 200
	MaxMessageLength       = 2000
)

// Pagination constants
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых бронирование удерживает слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
