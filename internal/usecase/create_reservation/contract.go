package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	CountByUserAndDate(ctx context.Context, userID int64, date time.Time, statuses []domain.ReservationStatus) (int, error)
	CountOverlapping(
		ctx context.Context,
		spaceID int64,
		date time.Time,
		start, end types.TimeString,
		statuses []domain.ReservationStatus,
	) (int, error)
	ExistsBySpaceDateStatus(ctx context.Context, spaceID int64, date time.Time, status domain.ReservationStatus) (bool, error)
	IsClosed(ctx context.Context, spaceID int64, date time.Time) (bool, error)
	LockSpaceDay(ctx context.Context, spaceID int64, date time.Time) error
	LockUserDay(ctx context.Context, userID int64, date time.Time) error
}

// SpaceRepository интерфейс репозитория помещений
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// HolidayChecker интерфейс проверки государственных праздников
type HolidayChecker interface {
	IsHoliday(ctx context.Context, date time.Time) bool
}

// Notifier интерфейс диспетчера уведомлений
type Notifier interface {
	ReservationCreated(reservation *domain.Reservation)
}

// Metrics бизнес-метрики приёма бронирований
type Metrics interface {
	IncReservationCreated()
	IncReservationRejected(rule string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
