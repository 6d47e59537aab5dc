package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Reservation, error)
	GetBySpaceAndDate(ctx context.Context, spaceID int64, date time.Time) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	UpdateStatusBySpaceAndDate(
		ctx context.Context,
		spaceID int64,
		date time.Time,
		from []domain.ReservationStatus,
		to domain.ReservationStatus,
	) ([]*domain.Reservation, error)
	LockSpaceDay(ctx context.Context, spaceID int64, date time.Time) error
	CreateClosure(ctx context.Context, spaceID int64, date time.Time) error
}

// SpaceRepository интерфейс репозитория помещений
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdatePenalty(ctx context.Context, id int64, penaltyUntil *time.Time) error
}

// Notifier интерфейс диспетчера уведомлений
type Notifier interface {
	ReservationConfirmed(reservation *domain.Reservation)
	ReservationCancelled(reservation *domain.Reservation, byStaff bool)
}

// Metrics бизнес-метрики переходов статусов
type Metrics interface {
	IncStatusTransition(status string, n int)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
