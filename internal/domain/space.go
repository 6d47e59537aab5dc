package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

// Space represents a bookable study space
type Space struct {
	ID          int64
	Name        string
	Description string
	Capacity    int
	OpenTime    types.TimeString // ignored when FullDay
	CloseTime   types.TimeString // ignored when FullDay
	FullDay     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Hours returns opening hours in minutes of day. FullDay spaces are open [00:00, 24:00).
func (s *Space) Hours() (openMinute, closeMinute int) {
	if s.FullDay {
		return 0, types.MinutesPerDay
	}
	return s.OpenTime.Minutes(), s.CloseTime.Minutes()
}

// IsWithinHours returns true if [start, end) fits inside the opening hours
func (s *Space) IsWithinHours(start, end types.TimeString) bool {
	if s.FullDay {
		return true
	}
	openMinute, closeMinute := s.Hours()
	return start.Minutes() >= openMinute && end.Minutes() <= closeMinute
}

// OperatingMinutes returns minutes the space is open per day, used as occupancy denominator
func (s *Space) OperatingMinutes() int {
	if s.FullDay {
		return FullDayOperatingMinutes
	}
	minutes := s.CloseTime.Minutes() - s.OpenTime.Minutes()
	if minutes < 0 {
		return 0
	}
	return minutes
}

// Validate checks the space configuration
func (s *Space) Validate() error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfiguration)
	}
	if len(name) > MaxSpaceNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidConfiguration, MaxSpaceNameLength)
	}
	if len(s.Description) > MaxSpaceDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidConfiguration, MaxSpaceDescriptionLength)
	}
	if s.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidConfiguration)
	}
	if s.FullDay {
		return nil
	}
	if s.OpenTime.IsZero() || s.CloseTime.IsZero() {
		return fmt.Errorf("%w: open and close time are required unless full day is selected", ErrInvalidConfiguration)
	}
	if err := s.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidConfiguration, err)
	}
	if err := s.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidConfiguration, err)
	}
	if !s.CloseTime.IsAfter(s.OpenTime) {
		return fmt.Errorf("%w: close time must be after open time unless full day is selected", ErrInvalidConfiguration)
	}
	return nil
}

// AvailabilitySlot one cell of the availability grid of a space for a date
type AvailabilitySlot struct {
	StartTime      types.TimeString
	EndTime        types.TimeString
	Occupied       int // overlapping active reservations
	AvailableSeats int
	Capacity       int
	Past           bool // slot start already passed
}

// IsFull returns true if the slot has no free seats
func (s *AvailabilitySlot) IsFull() bool {
	return s.AvailableSeats <= 0
}

// OccupancyRate returns the share of taken seats as a percentage (0-100)
func (s *AvailabilitySlot) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Capacity-s.AvailableSeats) / float64(s.Capacity) * 100
}
