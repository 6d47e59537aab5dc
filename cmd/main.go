package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	cancelReservationHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/cancel_reservation"
	closeSpaceHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/close_space"
	confirmReservationHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/create_reservation"
	createSpaceHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/create_space"
	deleteSpaceHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/delete_space"
	getReservationHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/get_reservation"
	getSpaceHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/get_space"
	getSpaceAvailabilityHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/get_space_availability"
	getSpaceOccupancyHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/get_space_occupancy"
	getSpaceReservationsHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/get_space_reservations"
	getUserPenaltyHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/get_user_penalty"
	getUserReservationsHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/get_user_reservations"
	getWeatherHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/get_weather"
	listSpacesHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/list_spaces"
	markNoShowHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/mark_no_show"
	staffCancelReservationHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/staff_cancel_reservation"
	updateSpaceHandler "github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers/update_space"
	"github.com/m04kA/SMC-StudyRoomsService/internal/api/middleware"
	"github.com/m04kA/SMC-StudyRoomsService/internal/config"
	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	holidayCache "github.com/m04kA/SMC-StudyRoomsService/internal/infra/cache/holidays"
	"github.com/m04kA/SMC-StudyRoomsService/internal/integrations/holidayapi"
	"github.com/m04kA/SMC-StudyRoomsService/internal/integrations/notificationapi"
	"github.com/m04kA/SMC-StudyRoomsService/internal/integrations/openmeteo"
	notificationsService "github.com/m04kA/SMC-StudyRoomsService/internal/service/notifications"
	reservationsService "github.com/m04kA/SMC-StudyRoomsService/internal/service/reservations"
	spacesService "github.com/m04kA/SMC-StudyRoomsService/internal/service/spaces"
	weatherService "github.com/m04kA/SMC-StudyRoomsService/internal/service/weather"
	createReservationUC "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/create_reservation"
	getDailyOccupancyUC "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/get_daily_occupancy"
	getSpaceAvailabilityUC "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/get_space_availability"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/clock"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/logger"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/metrics"
)

const rateLimitCleanupInterval = 5 * time.Minute

func main() {
	// Загружаем конфигурацию (путь можно переопределить через CONFIG_PATH)
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-StudyRoomsService...")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}
	timeProvider := clock.New(location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	store, err := openStorage(cfg, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Инициализируем интеграционных клиентов
	holidayClient := holidayapi.NewClient(
		cfg.HolidayService.URL,
		cfg.HolidayService.CountryCode,
		time.Duration(cfg.HolidayService.Timeout)*time.Second,
		log,
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is unavailable, holidays will be fetched without cache: %v", err)
		} else {
			holidayClient.UseCache(holidayCache.NewCache(redisClient, time.Duration(cfg.Redis.TTLHours)*time.Hour))
			log.Info("Holiday cache enabled (redis=%s, ttl=%dh)", cfg.Redis.Addr, cfg.Redis.TTLHours)
		}
	}

	notificationClient := notificationapi.NewClient(
		cfg.NotificationService.URL,
		cfg.NotificationService.APIKey,
		cfg.NotificationService.Enabled,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
	)
	weatherClient := openmeteo.NewClient(
		cfg.WeatherService.URL,
		time.Duration(cfg.WeatherService.Timeout)*time.Second,
	)
	log.Info("Integration clients initialized (holidays=%s country=%s, notifications enabled=%t, weather=%s)",
		cfg.HolidayService.URL, cfg.HolidayService.CountryCode, cfg.NotificationService.Enabled, cfg.WeatherService.URL)

	// Диспетчер уведомлений работает в фоне до остановки сервера
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()

	dispatcher := notificationsService.NewDispatcher(
		notificationClient,
		store.users,
		store.spaces,
		cfg.Booking.NotificationWorkers,
		cfg.Booking.NotificationQueueSize,
		metricsCollector,
		log,
	)
	dispatcher.Start(dispatcherCtx)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		store.reservations,
		store.spaces,
		store.users,
		store.tx,
		dispatcher,
		metricsCollector,
		timeProvider,
		cfg.Booking.PenaltyDays,
		log,
	)
	spaceSvc := spacesService.NewService(store.spaces, log)
	weatherSvc := weatherService.NewService(
		weatherClient,
		time.Duration(cfg.WeatherService.CacheTTLMinutes)*time.Minute,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		store.reservations,
		store.spaces,
		store.users,
		holidayClient,
		dispatcher,
		metricsCollector,
		store.tx,
		timeProvider,
		domain.BookingPolicy{
			MaxReservationsPerDay: cfg.Booking.MaxReservationsPerDay,
			MaxDurationMinutes:    cfg.Booking.MaxDurationMinutes,
			PenaltyDays:           cfg.Booking.PenaltyDays,
			InitialStatus:         domain.ReservationStatus(cfg.Booking.InitialStatus),
		},
		log,
	)
	getSpaceAvailabilityUseCase := getSpaceAvailabilityUC.NewUseCase(
		store.reservations,
		store.spaces,
		holidayClient,
		timeProvider,
		cfg.Booking.SlotStepMinutes,
		log,
	)
	getDailyOccupancyUseCase := getDailyOccupancyUC.NewUseCase(store.reservations, store.spaces, log)

	// Инициализируем handlers
	listSpaces := listSpacesHandler.NewHandler(spaceSvc, log)
	getSpace := getSpaceHandler.NewHandler(spaceSvc, log)
	getSpaceAvailability := getSpaceAvailabilityHandler.NewHandler(getSpaceAvailabilityUseCase, log)
	getWeather := getWeatherHandler.NewHandler(weatherSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getUserPenalty := getUserPenaltyHandler.NewHandler(reservationSvc, log)
	createSpace := createSpaceHandler.NewHandler(spaceSvc, log)
	updateSpace := updateSpaceHandler.NewHandler(spaceSvc, log)
	deleteSpace := deleteSpaceHandler.NewHandler(spaceSvc, log)
	getSpaceReservations := getSpaceReservationsHandler.NewHandler(reservationSvc, log)
	closeSpace := closeSpaceHandler.NewHandler(reservationSvc, log)
	staffCancelReservation := staffCancelReservationHandler.NewHandler(reservationSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationSvc, log)
	markNoShow := markNoShowHandler.NewHandler(reservationSvc, log)
	getSpaceOccupancy := getSpaceOccupancyHandler.NewHandler(getDailyOccupancyUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewClientRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		api.Use(limiter.Middleware)
		go func() {
			ticker := time.NewTicker(rateLimitCleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-dispatcherCtx.Done():
					return
				case <-ticker.C:
					limiter.Cleanup()
				}
			}
		}()
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/spaces", listSpaces.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}", getSpace.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}/availability", getSpaceAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/weather", getWeather.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/penalty", getUserPenalty.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (X-User-Role: staff)
	// ============================================================

	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(middleware.Auth, middleware.StaffOnly(store.users))

	// --- Помещения ---
	staff.HandleFunc("/spaces", createSpace.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/spaces/{spaceId}", updateSpace.Handle).Methods(http.MethodPut)
	staff.HandleFunc("/spaces/{spaceId}", deleteSpace.Handle).Methods(http.MethodDelete)
	staff.HandleFunc("/spaces/{spaceId}/reservations", getSpaceReservations.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/spaces/{spaceId}/close", closeSpace.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/spaces/{spaceId}/occupancy", getSpaceOccupancy.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	staff.HandleFunc("/reservations/{reservationId}/cancel", staffCancelReservation.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/reservations/{reservationId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки поставленных в очередь уведомлений
	dispatcher.Stop()
	stopDispatcher()

	log.Info("Server stopped gracefully")
}
