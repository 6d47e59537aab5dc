package get_daily_occupancy

import (
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

// aggregate строит по одной записи на каждый день [start, end].
// Знаменатель - место-минуты: минуты работы помещения, умноженные на вместимость (не меньше 1).
func aggregate(space *domain.Space, start, end time.Time, reservations []*domain.Reservation) []domain.OccupancyEntry {
	capacity := space.Capacity
	if capacity < 1 {
		capacity = 1
	}
	totalSeatMinutes := space.OperatingMinutes() * capacity

	type dayStats struct {
		count   int
		minutes int
	}
	byDate := make(map[time.Time]*dayStats)
	for _, r := range reservations {
		if r.Status != domain.StatusConfirmed {
			continue
		}
		day := domain.DateOf(r.Date)
		stats, ok := byDate[day]
		if !ok {
			stats = &dayStats{}
			byDate[day] = stats
		}
		stats.count++
		stats.minutes += r.DurationMinutes()
	}

	entries := make([]domain.OccupancyEntry, 0, domain.DaysBetween(start, end)+1)
	for day := start; !day.After(end); day = domain.AddDays(day, 1) {
		entry := domain.OccupancyEntry{
			Date:         day,
			TotalMinutes: totalSeatMinutes,
		}
		if stats, ok := byDate[day]; ok {
			entry.ReservationsCount = stats.count
			entry.OccupiedMinutes = stats.minutes
		}
		if entry.OccupiedMinutes > totalSeatMinutes {
			entry.OccupiedMinutes = totalSeatMinutes
		}
		if totalSeatMinutes > 0 {
			entry.Percentage = float64(entry.OccupiedMinutes) * 100 / float64(totalSeatMinutes)
		}
		entries = append(entries, entry)
	}

	return entries
}
