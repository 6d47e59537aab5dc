package domain

// Default booking policy values
const (
	DefaultMaxReservationsPerDay = 3
	DefaultMaxDurationMinutes    = 120 // 2 hours
	DefaultSlotStepMinutes       = 30
	DefaultPenaltyDays           = 3
)

// Occupancy constants
const (
	FullDayOperatingMinutes = 1439 // 23:59 - 00:00
	MaxOccupancyRangeDays   = 366
)

// Space validation constants
const (
	MaxSpaceNameLength        = 200
	MaxSpaceDescriptionLength = 2000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, которые занимают место и входят в дневной лимит пользователя
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses терминальные статусы
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCancelledByStaff,
	StatusNoShow,
}
