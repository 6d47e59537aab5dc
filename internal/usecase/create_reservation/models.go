package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя
	SpaceID   int64            // ID помещения
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала, например "10:00"
	EndTime   types.TimeString // Время окончания (не включая)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	SpaceID         int64
	UserID          int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
