package close_space

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/service/reservations/models"
)

type ReservationService interface {
	StaffCloseSpaceForDay(ctx context.Context, spaceID int64, date time.Time) (*models.CloseSpaceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
