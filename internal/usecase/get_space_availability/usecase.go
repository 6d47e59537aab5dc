package get_space_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	spaceRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/space"
)

// UseCase use case сетки доступности помещения на день
type UseCase struct {
	reservationRepo ReservationRepository
	spaceRepo       SpaceRepository
	holidays        HolidayChecker
	timeProvider    TimeProvider
	slotStep        int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	spaceRepo SpaceRepository,
	holidays HolidayChecker,
	timeProvider TimeProvider,
	slotStepMinutes int,
	logger Logger,
) *UseCase {
	if slotStepMinutes <= 0 {
		slotStepMinutes = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		spaceRepo:       spaceRepo,
		holidays:        holidays,
		timeProvider:    timeProvider,
		slotStep:        slotStepMinutes,
		logger:          logger,
	}
}

// Execute возвращает сетку доступности. Слот занят, когда пересекающихся активных
// бронирований не меньше вместимости.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.SpaceID <= 0 {
		return nil, fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := domain.DateOf(req.Date)
	uc.logger.Info("GetSpaceAvailability: space=%d, date=%s", req.SpaceID, date.Format(domain.DateFormat))

	// 1. Получаем помещение
	space, err := uc.spaceRepo.GetByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("GetSpaceAvailability: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("GetSpaceAvailability: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 2. Активные бронирования на дату
	reservations, err := uc.reservationRepo.GetBySpaceWithFilter(ctx, domain.ReservationsFilter{
		SpaceID:   req.SpaceID,
		StartDate: date,
		EndDate:   date,
		Statuses:  domain.ActiveStatuses,
	})
	if err != nil {
		uc.logger.Error("GetSpaceAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 3. Закрыто ли помещение персоналом
	closed, err := uc.isClosedByStaff(ctx, req.SpaceID, date)
	if err != nil {
		return nil, err
	}

	// 4. Строим сетку
	slots := buildGrid(space, date, uc.slotStep, reservations, uc.timeProvider.Now())

	return &Response{
		SpaceID:  space.ID,
		Date:     date,
		Capacity: space.Capacity,
		Closed:   closed,
		Holiday:  uc.holidays.IsHoliday(ctx, date),
		Slots:    slots,
	}, nil
}

func (uc *UseCase) isClosedByStaff(ctx context.Context, spaceID int64, date time.Time) (bool, error) {
	closed, err := uc.reservationRepo.IsClosed(ctx, spaceID, date)
	if err != nil {
		uc.logger.Error("GetSpaceAvailability: failed to check closure: %v", err)
		return false, fmt.Errorf("%w: failed to check closure: %v", ErrInternal, err)
	}
	if closed {
		return true, nil
	}

	exists, err := uc.reservationRepo.ExistsBySpaceDateStatus(ctx, spaceID, date, domain.StatusCancelledByStaff)
	if err != nil {
		uc.logger.Error("GetSpaceAvailability: failed to check staff cancellations: %v", err)
		return false, fmt.Errorf("%w: failed to check staff cancellations: %v", ErrInternal, err)
	}
	return exists, nil
}
