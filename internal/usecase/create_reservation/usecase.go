package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	spaceRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/space"
	userRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/user"
)

// UseCase use case приёма бронирования: упорядоченная проверка правил и запись
type UseCase struct {
	reservationRepo ReservationRepository
	spaceRepo       SpaceRepository
	userRepo        UserRepository
	holidays        HolidayChecker
	notifier        Notifier
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	policy          domain.BookingPolicy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	spaceRepo SpaceRepository,
	userRepo UserRepository,
	holidays HolidayChecker,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	timeProvider TimeProvider,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	defaults := domain.DefaultBookingPolicy()
	if policy.MaxReservationsPerDay <= 0 {
		policy.MaxReservationsPerDay = defaults.MaxReservationsPerDay
	}
	if policy.MaxDurationMinutes <= 0 {
		policy.MaxDurationMinutes = defaults.MaxDurationMinutes
	}
	if !policy.InitialStatus.IsActive() {
		policy.InitialStatus = defaults.InitialStatus
	}

	return &UseCase{
		reservationRepo: reservationRepo,
		spaceRepo:       spaceRepo,
		userRepo:        userRepo,
		holidays:        holidays,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    timeProvider,
		policy:          policy,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Правила проверяются строго по порядку, первое нарушенное правило отклоняет запрос.
// Правила 5-10 и запись выполняются в одной транзакции под блокировками (пользователь, дата)
// и (помещение, дата), поэтому параллельные запросы не превышают вместимость и дневной лимит.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, space=%d, date=%s, time=%s-%s",
		req.UserID, req.SpaceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 0. Валидация формата входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}
	normalized := *req
	normalized.Date = domain.DateOf(req.Date)
	req = &normalized

	now := uc.timeProvider.Now()

	// 1. Помещение существует
	space, err := uc.spaceRepo.GetByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("CreateReservation: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 2. Пользователь не оштрафован
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateReservation: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if err := checkUserNotPenalized(user, now); err != nil {
		return nil, uc.reject(err)
	}

	// 3. Не в прошлом
	if err := checkNotInPast(req, now); err != nil {
		return nil, uc.reject(err)
	}

	// 4. Не государственный праздник (до транзакции, чтобы не держать блокировки во время HTTP запроса)
	if uc.holidays.IsHoliday(ctx, req.Date) {
		return nil, uc.reject(domain.NewRuleViolation(domain.RuleHoliday,
			"Reservations are not allowed on public holidays."))
	}

	var result *domain.Reservation

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Блокировки берутся всегда в одном порядке: пользователь, затем помещение
		if err := uc.reservationRepo.LockUserDay(txCtx, req.UserID, req.Date); err != nil {
			uc.logger.Error("CreateReservation: failed to lock user=%d day: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to lock user day: %v", ErrInternal, err)
		}
		if err := uc.reservationRepo.LockSpaceDay(txCtx, req.SpaceID, req.Date); err != nil {
			uc.logger.Error("CreateReservation: failed to lock space=%d day: %v", req.SpaceID, err)
			return fmt.Errorf("%w: failed to lock space day: %v", ErrInternal, err)
		}

		// 5. Помещение не закрыто персоналом на эту дату
		closed, err := uc.isClosedByStaff(txCtx, req)
		if err != nil {
			return err
		}
		if closed {
			return domain.NewRuleViolation(domain.RuleSpaceClosedByStaff,
				"This study space has been closed by staff for the selected date. Please choose another date or space.")
		}

		// 6. Дневной лимит пользователя
		active, err := uc.reservationRepo.CountByUserAndDate(txCtx, req.UserID, req.Date, domain.ActiveStatuses)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to count user reservations: %v", err)
			return fmt.Errorf("%w: failed to count user reservations: %v", ErrInternal, err)
		}
		if active >= uc.policy.MaxReservationsPerDay {
			return domain.NewRuleViolation(domain.RuleDailyQuotaExceeded,
				"You have reached the maximum number of active reservations (%d) for this day.",
				uc.policy.MaxReservationsPerDay)
		}

		// 7. Порядок времени
		if err := checkTimeOrder(req); err != nil {
			return err
		}

		// 8. Часы работы
		if err := checkOpeningHours(space, req); err != nil {
			return err
		}

		// 9. Длительность
		if err := checkDuration(req, uc.policy.MaxDurationMinutes); err != nil {
			return err
		}

		// 10. Вместимость
		overlapping, err := uc.reservationRepo.CountOverlapping(
			txCtx, req.SpaceID, req.Date, req.StartTime, req.EndTime, domain.ActiveStatuses)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to count overlapping reservations: %v", err)
			return fmt.Errorf("%w: failed to count overlapping reservations: %v", ErrInternal, err)
		}
		if overlapping >= space.Capacity {
			uc.logger.Warn("CreateReservation: no seats, %d/%d taken", overlapping, space.Capacity)
			return domain.NewRuleViolation(domain.RuleCapacityExceeded,
				"No seats available for that time slot (%s to %s on %s).",
				req.StartTime, req.EndTime, req.Date.Format(domain.DateFormat))
		}

		uc.logger.Info("CreateReservation: seat available, %d/%d taken", overlapping, space.Capacity)

		// 11. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			SpaceID:   req.SpaceID,
			UserID:    req.UserID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Status:    uc.policy.InitialStatus,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if _, ok := domain.AsRuleViolation(err); ok {
			return nil, uc.reject(err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 12. Уведомление после коммита, ошибки доставки запрос не затрагивают
	if uc.metrics != nil {
		uc.metrics.IncReservationCreated()
	}
	uc.notifier.ReservationCreated(result)

	return &Response{
		ID:              result.ID,
		SpaceID:         result.SpaceID,
		UserID:          result.UserID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes(),
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// isClosedByStaff проверяет отметку о закрытии и отменённые персоналом бронирования на дату
func (uc *UseCase) isClosedByStaff(ctx context.Context, req *Request) (bool, error) {
	closed, err := uc.reservationRepo.IsClosed(ctx, req.SpaceID, req.Date)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to check closure: %v", err)
		return false, fmt.Errorf("%w: failed to check closure: %v", ErrInternal, err)
	}
	if closed {
		return true, nil
	}

	exists, err := uc.reservationRepo.ExistsBySpaceDateStatus(ctx, req.SpaceID, req.Date, domain.StatusCancelledByStaff)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to check staff cancellations: %v", err)
		return false, fmt.Errorf("%w: failed to check staff cancellations: %v", ErrInternal, err)
	}
	return exists, nil
}

func (uc *UseCase) reject(err error) error {
	if rv, ok := domain.AsRuleViolation(err); ok {
		uc.logger.Warn("CreateReservation: rejected by %s: %s", rv.Code, rv.Message)
		if uc.metrics != nil {
			uc.metrics.IncReservationRejected(string(rv.Code))
		}
	}
	return err
}
