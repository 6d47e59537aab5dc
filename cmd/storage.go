package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-StudyRoomsService/internal/config"
	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/memory"
	reservationRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/reservation"
	spaceRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/space"
	userRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/user"
	notificationsService "github.com/m04kA/SMC-StudyRoomsService/internal/service/notifications"
	reservationsService "github.com/m04kA/SMC-StudyRoomsService/internal/service/reservations"
	spacesService "github.com/m04kA/SMC-StudyRoomsService/internal/service/spaces"
	createReservationUC "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/create_reservation"
	getDailyOccupancyUC "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/get_daily_occupancy"
	getSpaceAvailabilityUC "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/get_space_availability"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/logger"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/metrics"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/txmanager"
)

// reservationStore все операции над бронированиями, которые нужны сервисам и use cases
type reservationStore interface {
	createReservationUC.ReservationRepository
	reservationsService.ReservationRepository
	getSpaceAvailabilityUC.ReservationRepository
	getDailyOccupancyUC.ReservationRepository
}

type spaceStore interface {
	spacesService.SpaceRepository
}

type userStore interface {
	reservationsService.UserRepository
	createReservationUC.UserRepository
	notificationsService.UserRepository
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории выбранного драйвера
type storage struct {
	reservations reservationStore
	spaces       spaceStore
	users        userStore
	tx           txManager
	close        func()
}

// openStorage подключает PostgreSQL или создает хранилище в памяти
func openStorage(cfg *config.Config, metricsCollector *metrics.Metrics, log *logger.Logger) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		return openMemory(cfg.Database.SeedUsers, log), nil
	}
	return openPostgres(cfg.Database, metricsCollector, log)
}

func openPostgres(cfg config.DatabaseConfig, metricsCollector *metrics.Metrics, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	// Без метрик обёртка только пробрасывает запросы
	stopStatsCh := make(chan struct{})
	var wrappedDB *dbmetrics.DB
	if metricsCollector != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopStatsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	return &storage{
		reservations: reservationRepo.NewRepository(wrappedDB),
		spaces:       spaceRepo.NewRepository(wrappedDB),
		users:        userRepo.NewRepository(wrappedDB),
		tx:           txmanager.NewTransactionManager(wrappedDB),
		close: func() {
			close(stopStatsCh)
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}

func openMemory(seed []config.SeedUser, log *logger.Logger) *storage {
	store := memory.NewStore()
	users := store.Users()

	for _, u := range seed {
		user := domain.User{
			ID:       u.ID,
			Username: u.Username,
			FullName: u.FullName,
			Email:    u.Email,
			Role:     domain.UserRole(u.Role),
		}
		if u.Phone != "" {
			phone := u.Phone
			user.Phone = &phone
		}
		users.Add(user)
	}
	log.Warn("Using in-memory storage, data is lost on restart (seeded users=%d)", len(seed))

	return &storage{
		reservations: store.Reservations(),
		spaces:       store.Spaces(),
		users:        users,
		tx:           store,
		close:        func() {},
	}
}
