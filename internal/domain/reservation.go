package domain

import (
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending          ReservationStatus = "pending"
	StatusConfirmed        ReservationStatus = "confirmed"
	StatusCancelled        ReservationStatus = "cancelled"
	StatusCancelledByStaff ReservationStatus = "cancelled_by_staff"
	StatusNoShow           ReservationStatus = "no_show"
)

// IsValid returns true for known statuses
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCancelledByStaff, StatusNoShow:
		return true
	}
	return false
}

// IsActive returns true if the status occupies a seat
func (s ReservationStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Reservation represents a booked seat in a study space for a time range on one date
type Reservation struct {
	ID        int64
	SpaceID   int64
	UserID    int64
	Date      time.Time // UTC midnight
	StartTime types.TimeString
	EndTime   types.TimeString // exclusive
	Status    ReservationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation is pending or confirmed
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// CanBeCancelled returns true if the owner may still cancel the reservation
func (r *Reservation) CanBeCancelled() bool {
	return r.IsActive()
}

// DurationMinutes returns the length of the reservation
func (r *Reservation) DurationMinutes() int {
	return DurationMinutes(r.StartTime, r.EndTime)
}

// Overlaps returns true if the reservation shares at least one minute with [start, end)
func (r *Reservation) Overlaps(start, end types.TimeString) bool {
	return Overlaps(r.StartTime, r.EndTime, start, end)
}

// HasStarted returns true if (Date, StartTime) is strictly before now.
// now must already be expressed in the service time zone.
func (r *Reservation) HasStarted(now time.Time) bool {
	return IsBeforeNow(r.Date, r.StartTime, now)
}

// ReservationsFilter фильтр для выборки бронирований по помещению
type ReservationsFilter struct {
	SpaceID   int64               // Обязательный параметр
	StartDate time.Time           // Начало периода включительно
	EndDate   time.Time           // Конец периода включительно
	Statuses  []ReservationStatus // Пустой список - все статусы
}
