package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

// ReservationRepository бронирования в памяти
type ReservationRepository struct {
	store *Store
}

// Create создает бронирование
func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if !reservation.Status.IsValid() {
		return nil, fmt.Errorf("%w: Create - %q", reservationRepo.ErrInvalidStatus, reservation.Status)
	}

	s := r.store
	defer s.lock(ctx)()

	s.nextReservationID++
	now := s.now()
	created := *reservation
	created.ID = s.nextReservationID
	created.Date = domain.DateOf(created.Date)
	created.CreatedAt = now
	created.UpdatedAt = now
	s.reservations[created.ID] = &created
	s.record(ctx, func() { delete(s.reservations, created.ID) })

	reservation.ID = created.ID
	reservation.CreatedAt = now
	reservation.UpdatedAt = now
	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	s := r.store
	defer s.lock(ctx)()

	reservation, ok := s.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	out := *reservation
	return &out, nil
}

// GetByUserID получает бронирования пользователя, сначала новые
func (r *ReservationRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	result := r.filter(ctx, func(res *domain.Reservation) bool { return res.UserID == userID })
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].StartTime.Minutes() > result[j].StartTime.Minutes()
	})
	return result, nil
}

// GetBySpaceAndDate получает бронирования помещения на дату по времени начала
func (r *ReservationRepository) GetBySpaceAndDate(ctx context.Context, spaceID int64, date time.Time) ([]*domain.Reservation, error) {
	day := domain.DateOf(date)
	result := r.filter(ctx, func(res *domain.Reservation) bool {
		return res.SpaceID == spaceID && res.Date.Equal(day)
	})
	sortByDateAndStart(result)
	return result, nil
}

// GetBySpaceWithFilter получает бронирования помещения за период
func (r *ReservationRepository) GetBySpaceWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	start, end := domain.DateOf(filter.StartDate), domain.DateOf(filter.EndDate)
	result := r.filter(ctx, func(res *domain.Reservation) bool {
		if res.SpaceID != filter.SpaceID || res.Date.Before(start) || res.Date.After(end) {
			return false
		}
		return len(filter.Statuses) == 0 || hasStatus(filter.Statuses, res.Status)
	})
	sortByDateAndStart(result)
	return result, nil
}

// CountByUserAndDate считает бронирования пользователя на дату в статусах
func (r *ReservationRepository) CountByUserAndDate(ctx context.Context, userID int64, date time.Time, statuses []domain.ReservationStatus) (int, error) {
	day := domain.DateOf(date)
	result := r.filter(ctx, func(res *domain.Reservation) bool {
		return res.UserID == userID && res.Date.Equal(day) && hasStatus(statuses, res.Status)
	})
	return len(result), nil
}

// CountOverlapping считает бронирования помещения, пересекающиеся с [start, end)
func (r *ReservationRepository) CountOverlapping(
	ctx context.Context,
	spaceID int64,
	date time.Time,
	start, end types.TimeString,
	statuses []domain.ReservationStatus,
) (int, error) {
	day := domain.DateOf(date)
	result := r.filter(ctx, func(res *domain.Reservation) bool {
		return res.SpaceID == spaceID && res.Date.Equal(day) &&
			hasStatus(statuses, res.Status) && res.Overlaps(start, end)
	})
	return len(result), nil
}

// ExistsBySpaceDateStatus проверяет наличие бронирования в статусе
func (r *ReservationRepository) ExistsBySpaceDateStatus(ctx context.Context, spaceID int64, date time.Time, status domain.ReservationStatus) (bool, error) {
	day := domain.DateOf(date)
	result := r.filter(ctx, func(res *domain.Reservation) bool {
		return res.SpaceID == spaceID && res.Date.Equal(day) && res.Status == status
	})
	return len(result) > 0, nil
}

// UpdateStatus обновляет статус бронирования
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: UpdateStatus - %q", reservationRepo.ErrInvalidStatus, status)
	}

	s := r.store
	defer s.lock(ctx)()

	reservation, ok := s.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	s.setStatus(ctx, reservation, status)
	return nil
}

// UpdateStatusBySpaceAndDate переводит бронирования помещения на дату из статусов from в to
func (r *ReservationRepository) UpdateStatusBySpaceAndDate(
	ctx context.Context,
	spaceID int64,
	date time.Time,
	from []domain.ReservationStatus,
	to domain.ReservationStatus,
) ([]*domain.Reservation, error) {
	if !to.IsValid() {
		return nil, fmt.Errorf("%w: UpdateStatusBySpaceAndDate - %q", reservationRepo.ErrInvalidStatus, to)
	}

	s := r.store
	defer s.lock(ctx)()

	day := domain.DateOf(date)
	updated := make([]*domain.Reservation, 0)
	for _, reservation := range s.reservations {
		if reservation.SpaceID != spaceID || !reservation.Date.Equal(day) || !hasStatus(from, reservation.Status) {
			continue
		}
		s.setStatus(ctx, reservation, to)
		out := *reservation
		updated = append(updated, &out)
	}
	sortByDateAndStart(updated)
	return updated, nil
}

// LockSpaceDay в памяти не нужен: транзакции уже сериализованы
func (r *ReservationRepository) LockSpaceDay(ctx context.Context, spaceID int64, date time.Time) error {
	return r.requireTx(ctx, "space", spaceID)
}

// LockUserDay в памяти не нужен: транзакции уже сериализованы
func (r *ReservationRepository) LockUserDay(ctx context.Context, userID int64, date time.Time) error {
	return r.requireTx(ctx, "user", userID)
}

// CreateClosure отмечает помещение закрытым на дату
func (r *ReservationRepository) CreateClosure(ctx context.Context, spaceID int64, date time.Time) error {
	s := r.store
	defer s.lock(ctx)()

	key := closureKey{spaceID: spaceID, date: dateKey(date)}
	if _, ok := s.closures[key]; ok {
		return nil
	}
	s.closures[key] = s.now()
	s.record(ctx, func() { delete(s.closures, key) })
	return nil
}

// IsClosed проверяет отметку о закрытии
func (r *ReservationRepository) IsClosed(ctx context.Context, spaceID int64, date time.Time) (bool, error) {
	s := r.store
	defer s.lock(ctx)()

	_, ok := s.closures[closureKey{spaceID: spaceID, date: dateKey(date)}]
	return ok, nil
}

func (r *ReservationRepository) requireTx(ctx context.Context, kind string, id int64) error {
	if !r.store.inTx(ctx) {
		return fmt.Errorf("%w: lock %s %d", reservationRepo.ErrTransaction, kind, id)
	}
	return nil
}

func (r *ReservationRepository) filter(ctx context.Context, match func(*domain.Reservation) bool) []*domain.Reservation {
	s := r.store
	defer s.lock(ctx)()

	result := make([]*domain.Reservation, 0)
	for _, reservation := range s.reservations {
		if match(reservation) {
			out := *reservation
			result = append(result, &out)
		}
	}
	return result
}

func (s *Store) setStatus(ctx context.Context, reservation *domain.Reservation, status domain.ReservationStatus) {
	prevStatus, prevUpdated := reservation.Status, reservation.UpdatedAt
	reservation.Status = status
	reservation.UpdatedAt = s.now()
	s.record(ctx, func() {
		reservation.Status = prevStatus
		reservation.UpdatedAt = prevUpdated
	})
}

func hasStatus(statuses []domain.ReservationStatus, status domain.ReservationStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func sortByDateAndStart(reservations []*domain.Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		a, b := reservations[i], reservations[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime.Minutes() != b.StartTime.Minutes() {
			return a.StartTime.Minutes() < b.StartTime.Minutes()
		}
		return a.ID < b.ID
	})
}
