package get_space_availability

import (
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

// buildGrid делит часы работы на слоты с шагом step минут, последний слот обрезается по закрытию.
// Для каждого слота считаются пересекающиеся активные бронирования.
// Граничащие интервалы (конец одного ровно в начале другого) не пересекаются.
func buildGrid(
	space *domain.Space,
	date time.Time,
	step int,
	reservations []*domain.Reservation,
	now time.Time,
) []domain.AvailabilitySlot {
	openMinute, closeMinute := space.Hours()
	if closeMinute <= openMinute || step <= 0 {
		return []domain.AvailabilitySlot{}
	}

	slots := make([]domain.AvailabilitySlot, 0, (closeMinute-openMinute+step-1)/step)
	for start := openMinute; start < closeMinute; start += step {
		end := start + step
		if end > closeMinute {
			end = closeMinute
		}

		slotStart, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			break
		}
		slotEnd, err := types.NewTimeStringFromMinutes(end)
		if err != nil {
			break
		}

		occupied := 0
		for _, r := range reservations {
			if r.IsActive() && r.Overlaps(slotStart, slotEnd) {
				occupied++
			}
		}

		available := space.Capacity - occupied
		if available < 0 {
			available = 0
		}

		slots = append(slots, domain.AvailabilitySlot{
			StartTime:      slotStart,
			EndTime:        slotEnd,
			Occupied:       occupied,
			AvailableSeats: available,
			Capacity:       space.Capacity,
			Past:           domain.IsBeforeNow(date, slotStart, now),
		})
	}

	return slots
}
