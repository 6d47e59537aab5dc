package get_daily_occupancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	spaceRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/space"
)

// UseCase use case статистики загрузки помещения по дням
type UseCase struct {
	reservationRepo ReservationRepository
	spaceRepo       SpaceRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, spaceRepo SpaceRepository, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		spaceRepo:       spaceRepo,
		logger:          logger,
	}
}

// Execute считает загрузку помещения за период. Учитываются только подтверждённые бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.SpaceID <= 0 {
		return nil, fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}

	start, end := domain.DateOf(req.StartDate), domain.DateOf(req.EndDate)
	uc.logger.Info("GetDailyOccupancy: space=%d, period=%s to %s",
		req.SpaceID, start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	// 1. Валидация периода
	if end.Before(start) {
		uc.logger.Warn("GetDailyOccupancy: end date before start date")
		return nil, ErrEndBeforeStart
	}
	if domain.DaysBetween(start, end)+1 > domain.MaxOccupancyRangeDays {
		uc.logger.Warn("GetDailyOccupancy: range of %d days is too long", domain.DaysBetween(start, end)+1)
		return nil, ErrRangeTooLong
	}

	// 2. Получаем помещение
	space, err := uc.spaceRepo.GetByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("GetDailyOccupancy: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("GetDailyOccupancy: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 3. Подтверждённые бронирования за период
	reservations, err := uc.reservationRepo.GetBySpaceWithFilter(ctx, domain.ReservationsFilter{
		SpaceID:   req.SpaceID,
		StartDate: start,
		EndDate:   end,
		Statuses:  []domain.ReservationStatus{domain.StatusConfirmed},
	})
	if err != nil {
		uc.logger.Error("GetDailyOccupancy: failed to get reservations for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 4. Агрегация по дням
	entries := aggregate(space, start, end, reservations)

	uc.logger.Info("GetDailyOccupancy: built %d entries from %d reservations", len(entries), len(reservations))
	return &Response{
		SpaceID:   space.ID,
		SpaceName: space.Name,
		StartDate: start,
		EndDate:   end,
		Entries:   entries,
	}, nil
}
