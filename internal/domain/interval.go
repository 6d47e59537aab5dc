package domain

import (
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

// Overlaps reports whether half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.Minutes() < bEnd.Minutes() && bStart.Minutes() < aEnd.Minutes()
}

// DurationMinutes returns end - start in minutes (negative when end is before start)
func DurationMinutes(start, end types.TimeString) int {
	return end.Minutes() - start.Minutes()
}

// DateOf returns the calendar date of t (in t's location) as UTC midnight
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a date value
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// AddDays shifts a date by n calendar days
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from start to end (end - start)
func DaysBetween(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start)).Hours() / 24)
}

// IsBeforeNow reports whether the moment (date, start) lies strictly before now.
// Comparison happens at second precision of now's wall clock.
func IsBeforeNow(date time.Time, start types.TimeString, now time.Time) bool {
	today := DateOf(now)
	if date.Before(today) {
		return true
	}
	if date.After(today) {
		return false
	}
	nowSeconds := now.Hour()*3600 + now.Minute()*60 + now.Second()
	return start.Minutes()*60 < nowSeconds
}
