package get_space_availability

import (
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

// Request модель запроса сетки доступности
type Request struct {
	SpaceID int64
	Date    time.Time // Дата (без времени)
}

// Response сетка доступности помещения на дату
type Response struct {
	SpaceID  int64
	Date     time.Time
	Capacity int
	Closed   bool // помещение закрыто персоналом на эту дату
	Holiday  bool
	Slots    []domain.AvailabilitySlot
}
