package domain

import "time"

// OccupancyEntry daily occupancy of a space
type OccupancyEntry struct {
	Date              time.Time
	ReservationsCount int
	OccupiedMinutes   int     // capped at TotalMinutes
	TotalMinutes      int     // seat-minutes: operating minutes * capacity
	Percentage        float64 // 0..100
}

// BookingPolicy admission limits
type BookingPolicy struct {
	MaxReservationsPerDay int
	MaxDurationMinutes    int
	PenaltyDays           int
	InitialStatus         ReservationStatus
}

// DefaultBookingPolicy returns the policy used when nothing is configured
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		MaxReservationsPerDay: DefaultMaxReservationsPerDay,
		MaxDurationMinutes:    DefaultMaxDurationMinutes,
		PenaltyDays:           DefaultPenaltyDays,
		InitialStatus:         StatusConfirmed,
	}
}

// SpaceClosure marks a space as closed by staff for one date
type SpaceClosure struct {
	SpaceID   int64
	Date      time.Time
	CreatedAt time.Time
}
