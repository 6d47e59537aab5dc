package get_user_penalty

import (
	"context"

	"github.com/m04kA/SMC-StudyRoomsService/internal/service/reservations/models"
)

type ReservationService interface {
	GetPenalty(ctx context.Context, userID int64, actingUserID int64, isStaff bool) (*models.PenaltyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
