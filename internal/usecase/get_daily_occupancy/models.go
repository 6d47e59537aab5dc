package get_daily_occupancy

import (
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

// Request модель запроса статистики загрузки
type Request struct {
	SpaceID   int64
	StartDate time.Time // включительно
	EndDate   time.Time // включительно
}

// Response статистика загрузки помещения по дням
type Response struct {
	SpaceID   int64
	SpaceName string
	StartDate time.Time
	EndDate   time.Time
	Entries   []domain.OccupancyEntry
}
