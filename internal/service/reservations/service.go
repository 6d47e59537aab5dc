package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/reservation"
	spaceRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/space"
	userRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/user"
	"github.com/m04kA/SMC-StudyRoomsService/internal/service/reservations/models"
)

// Service сервис жизненного цикла бронирований: отмена, закрытие помещения, неявка
type Service struct {
	reservationRepo ReservationRepository
	spaceRepo       SpaceRepository
	userRepo        UserRepository
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	timeProvider    TimeProvider
	penaltyDays     int
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	spaceRepo SpaceRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	timeProvider TimeProvider,
	penaltyDays int,
	logger Logger,
) *Service {
	if penaltyDays <= 0 {
		penaltyDays = domain.DefaultPenaltyDays
	}
	return &Service{
		reservationRepo: reservationRepo,
		spaceRepo:       spaceRepo,
		userRepo:        userRepo,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		timeProvider:    timeProvider,
		penaltyDays:     penaltyDays,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только свои бронирования, персонал - любые.
func (s *Service) GetByID(ctx context.Context, id int64, actingUserID int64, isStaff bool) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, actingUserID)

	reservation, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !isStaff && reservation.UserID != actingUserID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", actingUserID, id)
		return nil, ErrViewDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// ListForUser возвращает историю бронирований пользователя
func (s *Service) ListForUser(ctx context.Context, userID int64, actingUserID int64, isStaff bool) (*models.ReservationListResponse, error) {
	s.logger.Info("ListForUser: fetching reservations for user=%d", userID)

	if !isStaff && userID != actingUserID {
		s.logger.Warn("ListForUser: access denied for user=%d to history of user=%d", actingUserID, userID)
		return nil, ErrViewDenied
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ListForUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForUser: fetched %d reservations for user=%d", len(reservations), userID)
	return models.FromDomainReservationList(reservations), nil
}

// ListForSpaceAndDate возвращает все бронирования помещения на дату (для персонала)
func (s *Service) ListForSpaceAndDate(ctx context.Context, spaceID int64, date time.Time) (*models.ReservationListResponse, error) {
	date = domain.DateOf(date)
	s.logger.Info("ListForSpaceAndDate: space=%d, date=%s", spaceID, date.Format(domain.DateFormat))

	if err := s.ensureSpace(ctx, "ListForSpaceAndDate", spaceID); err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.GetBySpaceAndDate(ctx, spaceID, date)
	if err != nil {
		s.logger.Error("ListForSpaceAndDate: repository error for space=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: ListForSpaceAndDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование владельцем.
// Отменить можно только своё активное бронирование.
func (s *Service) Cancel(ctx context.Context, reservationID int64, actingUserID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, actingUserID)

	var cancelled *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		reservation, err := s.getReservation(txCtx, "Cancel", reservationID)
		if err != nil {
			return err
		}

		// 2. Проверяем владельца
		if reservation.UserID != actingUserID {
			s.logger.Warn("Cancel: user=%d is not the owner of reservation id=%d", actingUserID, reservationID)
			return ErrAccessDenied
		}

		// 3. Проверяем статус
		if !reservation.CanBeCancelled() {
			s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
			return domain.NewRuleViolation(domain.RuleNotCancellable,
				"Only pending or confirmed reservations can be cancelled (current status: %s).", reservation.Status)
		}

		// 4. Обновляем статус
		if err := s.reservationRepo.UpdateStatus(txCtx, reservationID, domain.StatusCancelled); err != nil {
			s.logger.Error("Cancel: failed to update status for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - update status: %v", ErrInternal, err)
		}

		reservation.Status = domain.StatusCancelled
		cancelled = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(domain.StatusCancelled, 1)
	s.notifier.ReservationCancelled(cancelled, false)

	s.logger.Info("Cancel: reservation id=%d cancelled", reservationID)
	return models.FromDomainReservation(cancelled), nil
}

// Confirm подтверждает ожидающее бронирование (для персонала)
func (s *Service) Confirm(ctx context.Context, reservationID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Confirm: confirming reservation id=%d", reservationID)

	var confirmed *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		reservation, err := s.getReservation(txCtx, "Confirm", reservationID)
		if err != nil {
			return err
		}

		// 2. Подтвердить можно только ожидающее бронирование
		if reservation.Status != domain.StatusPending {
			s.logger.Warn("Confirm: reservation id=%d cannot be confirmed, status=%s", reservationID, reservation.Status)
			return domain.NewRuleViolation(domain.RuleNotConfirmable,
				"Only pending reservations can be confirmed (current status: %s).", reservation.Status)
		}

		// 3. Обновляем статус
		if err := s.reservationRepo.UpdateStatus(txCtx, reservationID, domain.StatusConfirmed); err != nil {
			s.logger.Error("Confirm: failed to update status for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Confirm - update status: %v", ErrInternal, err)
		}

		reservation.Status = domain.StatusConfirmed
		confirmed = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(domain.StatusConfirmed, 1)
	s.notifier.ReservationConfirmed(confirmed)

	s.logger.Info("Confirm: reservation id=%d confirmed", reservationID)
	return models.FromDomainReservation(confirmed), nil
}

// StaffCancel отменяет бронирование от имени персонала без проверок статуса
func (s *Service) StaffCancel(ctx context.Context, reservationID int64) (*models.ReservationResponse, error) {
	s.logger.Info("StaffCancel: cancelling reservation id=%d", reservationID)

	var cancelled *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.getReservation(txCtx, "StaffCancel", reservationID)
		if err != nil {
			return err
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, reservationID, domain.StatusCancelledByStaff); err != nil {
			s.logger.Error("StaffCancel: failed to update status for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: StaffCancel - update status: %v", ErrInternal, err)
		}

		reservation.Status = domain.StatusCancelledByStaff
		cancelled = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(domain.StatusCancelledByStaff, 1)
	s.notifier.ReservationCancelled(cancelled, true)

	s.logger.Info("StaffCancel: reservation id=%d cancelled by staff", reservationID)
	return models.FromDomainReservation(cancelled), nil
}

// StaffCloseSpaceForDay закрывает помещение на дату: ставит отметку о закрытии
// и отменяет все активные бронирования. Возвращает число отменённых бронирований.
func (s *Service) StaffCloseSpaceForDay(ctx context.Context, spaceID int64, date time.Time) (*models.CloseSpaceResponse, error) {
	date = domain.DateOf(date)
	dateStr := date.Format(domain.DateFormat)
	s.logger.Info("StaffCloseSpaceForDay: space=%d, date=%s", spaceID, dateStr)

	// 1. Проверяем существование помещения
	if err := s.ensureSpace(ctx, "StaffCloseSpaceForDay", spaceID); err != nil {
		return nil, err
	}

	var affected []*domain.Reservation

	// 2. Отметка о закрытии и массовая отмена в одной транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.reservationRepo.LockSpaceDay(txCtx, spaceID, date); err != nil {
			s.logger.Error("StaffCloseSpaceForDay: failed to lock space=%d date=%s: %v", spaceID, dateStr, err)
			return fmt.Errorf("%w: StaffCloseSpaceForDay - lock: %v", ErrInternal, err)
		}

		if err := s.reservationRepo.CreateClosure(txCtx, spaceID, date); err != nil {
			s.logger.Error("StaffCloseSpaceForDay: failed to create closure for space=%d: %v", spaceID, err)
			return fmt.Errorf("%w: StaffCloseSpaceForDay - create closure: %v", ErrInternal, err)
		}

		updated, err := s.reservationRepo.UpdateStatusBySpaceAndDate(
			txCtx, spaceID, date, domain.ActiveStatuses, domain.StatusCancelledByStaff)
		if err != nil {
			s.logger.Error("StaffCloseSpaceForDay: failed to cancel reservations for space=%d: %v", spaceID, err)
			return fmt.Errorf("%w: StaffCloseSpaceForDay - bulk update: %v", ErrInternal, err)
		}

		affected = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Уведомляем пользователей после коммита
	s.recordTransition(domain.StatusCancelledByStaff, len(affected))
	for _, r := range affected {
		s.notifier.ReservationCancelled(r, true)
	}

	s.logger.Info("StaffCloseSpaceForDay: space=%d closed on %s, %d reservations cancelled", spaceID, dateStr, len(affected))
	return &models.CloseSpaceResponse{
		SpaceID:        spaceID,
		Date:           dateStr,
		CancelledCount: len(affected),
	}, nil
}

// MarkNoShow отмечает неявку по подтверждённому прошедшему бронированию
// и блокирует пользователя на penaltyDays дней. Оба изменения фиксируются в одной транзакции.
func (s *Service) MarkNoShow(ctx context.Context, reservationID int64) (*models.ReservationResponse, error) {
	s.logger.Info("MarkNoShow: reservation id=%d", reservationID)

	now := s.timeProvider.Now()
	var marked *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		reservation, err := s.getReservation(txCtx, "MarkNoShow", reservationID)
		if err != nil {
			return err
		}

		// 2. Неявку можно отметить только по подтверждённому бронированию
		if reservation.Status != domain.StatusConfirmed {
			s.logger.Warn("MarkNoShow: reservation id=%d has status=%s", reservationID, reservation.Status)
			return domain.NewRuleViolation(domain.RuleNoShowNotConfirmed,
				"Only confirmed reservations can be marked as no-show.")
		}

		// 3. Бронирование должно уже начаться
		if !reservation.HasStarted(now) {
			s.logger.Warn("MarkNoShow: reservation id=%d is in the future", reservationID)
			return domain.NewRuleViolation(domain.RuleNoShowInFuture,
				"Cannot mark a future reservation as no-show.")
		}

		// 4. Обновляем статус
		if err := s.reservationRepo.UpdateStatus(txCtx, reservationID, domain.StatusNoShow); err != nil {
			s.logger.Error("MarkNoShow: failed to update status for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: MarkNoShow - update status: %v", ErrInternal, err)
		}

		// 5. Назначаем штраф пользователю
		penaltyUntil := domain.PenaltyUntilFrom(now, s.penaltyDays)
		if err := s.userRepo.UpdatePenalty(txCtx, reservation.UserID, &penaltyUntil); err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				s.logger.Warn("MarkNoShow: user id=%d not found", reservation.UserID)
				return ErrUserNotFound
			}
			s.logger.Error("MarkNoShow: failed to update penalty for user id=%d: %v", reservation.UserID, err)
			return fmt.Errorf("%w: MarkNoShow - update penalty: %v", ErrInternal, err)
		}

		reservation.Status = domain.StatusNoShow
		marked = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(domain.StatusNoShow, 1)

	s.logger.Info("MarkNoShow: reservation id=%d marked as no-show, user=%d penalized for %d days",
		reservationID, marked.UserID, s.penaltyDays)
	return models.FromDomainReservation(marked), nil
}

// GetPenalty возвращает состояние штрафа пользователя
func (s *Service) GetPenalty(ctx context.Context, userID int64, actingUserID int64, isStaff bool) (*models.PenaltyResponse, error) {
	s.logger.Info("GetPenalty: user=%d", userID)

	if !isStaff && userID != actingUserID {
		s.logger.Warn("GetPenalty: access denied for user=%d to user=%d", actingUserID, userID)
		return nil, ErrViewDenied
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetPenalty: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetPenalty: repository error for user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetPenalty - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUserPenalty(user, s.timeProvider.Now()), nil
}

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

func (s *Service) ensureSpace(ctx context.Context, op string, spaceID int64) error {
	if _, err := s.spaceRepo.GetByID(ctx, spaceID); err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("%s: space id=%d not found", op, spaceID)
			return ErrSpaceNotFound
		}
		s.logger.Error("%s: failed to get space id=%d: %v", op, spaceID, err)
		return fmt.Errorf("%w: %s - get space: %v", ErrInternal, op, err)
	}
	return nil
}

func (s *Service) recordTransition(status domain.ReservationStatus, n int) {
	if s.metrics != nil && n > 0 {
		s.metrics.IncStatusTransition(string(status), n)
	}
}
