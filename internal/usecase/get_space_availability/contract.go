package get_space_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetBySpaceWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	ExistsBySpaceDateStatus(ctx context.Context, spaceID int64, date time.Time, status domain.ReservationStatus) (bool, error)
	IsClosed(ctx context.Context, spaceID int64, date time.Time) (bool, error)
}

// SpaceRepository интерфейс репозитория помещений
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
}

// HolidayChecker интерфейс проверки государственных праздников
type HolidayChecker interface {
	IsHoliday(ctx context.Context, date time.Time) bool
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
