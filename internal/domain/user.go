package domain

import "time"

// UserRole represents the role of a user
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleStaff   UserRole = "staff"
)

// User represents a registered user. Users are provisioned by the authentication service,
// this service only reads them and maintains PenaltyUntil.
type User struct {
	ID           int64
	Username     string
	FullName     string
	Email        string
	Phone        *string
	Role         UserRole
	PenaltyUntil *time.Time // inclusive last blocked date
}

// IsStaff returns true for staff accounts
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}

// IsPenalized returns true while today <= PenaltyUntil
func (u *User) IsPenalized(today time.Time) bool {
	return u.PenaltyUntil != nil && !u.PenaltyUntil.Before(DateOf(today))
}

// PenaltyUntilFrom returns the last blocked date for a no-show registered on today
func PenaltyUntilFrom(today time.Time, days int) time.Time {
	return AddDays(DateOf(today), days)
}
