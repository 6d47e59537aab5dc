package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/reservation"
	spaceRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/space"
	userRepo "github.com/m04kA/SMC-StudyRoomsService/internal/infra/storage/user"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

var day = domain.NewDate(2025, 6, 2)

func seed(t *testing.T) (*Store, *domain.Space) {
	t.Helper()
	store := NewStore()
	space, err := store.Spaces().Create(context.Background(), &domain.Space{
		Name: "Library", Capacity: 2, OpenTime: "08:00", CloseTime: "20:00",
	})
	require.NoError(t, err)
	store.Users().Add(domain.User{ID: 1, Username: "anna", Role: domain.RoleStudent})
	return store, space
}

func reserve(t *testing.T, store *Store, spaceID, userID int64, start, end string, status domain.ReservationStatus) *domain.Reservation {
	t.Helper()
	res, err := store.Reservations().Create(context.Background(), &domain.Reservation{
		SpaceID: spaceID, UserID: userID, Date: day,
		StartTime: types.TimeString(start), EndTime: types.TimeString(end), Status: status,
	})
	require.NoError(t, err)
	return res
}

func TestStore_RollbackOnError(t *testing.T) {
	store, space := seed(t)
	res := reserve(t, store, space.ID, 1, "10:00", "11:00", domain.StatusConfirmed)
	failure := errors.New("user write failed")

	err := store.Do(context.Background(), func(ctx context.Context) error {
		require.NoError(t, store.Reservations().UpdateStatus(ctx, res.ID, domain.StatusNoShow))
		until := domain.AddDays(day, 3)
		require.NoError(t, store.Users().UpdatePenalty(ctx, 1, &until))
		_, err := store.Reservations().Create(ctx, &domain.Reservation{
			SpaceID: space.ID, UserID: 1, Date: day, StartTime: "12:00", EndTime: "13:00", Status: domain.StatusConfirmed,
		})
		require.NoError(t, err)
		return failure
	})
	require.ErrorIs(t, err, failure)

	got, err := store.Reservations().GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)

	user, err := store.Users().GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, user.PenaltyUntil)

	all, err := store.Reservations().GetByUserID(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_CommitKeepsChanges(t *testing.T) {
	store, space := seed(t)

	err := store.Do(context.Background(), func(ctx context.Context) error {
		require.NoError(t, store.Reservations().LockUserDay(ctx, 1, day))
		require.NoError(t, store.Reservations().LockSpaceDay(ctx, space.ID, day))
		return store.Reservations().CreateClosure(ctx, space.ID, day)
	})
	require.NoError(t, err)

	closed, err := store.Reservations().IsClosed(context.Background(), space.ID, day)
	require.NoError(t, err)
	assert.True(t, closed)
}

func TestStore_LockOutsideTransaction(t *testing.T) {
	store, space := seed(t)

	err := store.Reservations().LockSpaceDay(context.Background(), space.ID, day)

	assert.ErrorIs(t, err, reservationRepo.ErrTransaction)
}

func TestReservationRepository_Queries(t *testing.T) {
	store, space := seed(t)
	ctx := context.Background()
	repo := store.Reservations()

	reserve(t, store, space.ID, 1, "10:00", "11:00", domain.StatusConfirmed)
	reserve(t, store, space.ID, 1, "11:00", "12:00", domain.StatusPending)
	reserve(t, store, space.ID, 2, "10:30", "11:30", domain.StatusCancelled)

	overlapping, err := repo.CountOverlapping(ctx, space.ID, day, "10:30", "11:30", domain.ActiveStatuses)
	require.NoError(t, err)
	assert.Equal(t, 2, overlapping)

	touching, err := repo.CountOverlapping(ctx, space.ID, day, "12:00", "13:00", domain.ActiveStatuses)
	require.NoError(t, err)
	assert.Equal(t, 0, touching)

	count, err := repo.CountByUserAndDate(ctx, 1, day, domain.ActiveStatuses)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	list, err := repo.GetBySpaceAndDate(ctx, space.ID, day)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, types.TimeString("10:00"), list[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), list[2].StartTime)

	updated, err := repo.UpdateStatusBySpaceAndDate(ctx, space.ID, day, domain.ActiveStatuses, domain.StatusCancelledByStaff)
	require.NoError(t, err)
	assert.Len(t, updated, 2)

	exists, err := repo.ExistsBySpaceDateStatus(ctx, space.ID, day, domain.StatusCancelledByStaff)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReservationRepository_ReturnsCopies(t *testing.T) {
	store, space := seed(t)
	res := reserve(t, store, space.ID, 1, "10:00", "11:00", domain.StatusConfirmed)

	got, err := store.Reservations().GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	got.Status = domain.StatusNoShow

	again, err := store.Reservations().GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, again.Status)
}

func TestSpaceRepository_DeleteCascades(t *testing.T) {
	store, space := seed(t)
	ctx := context.Background()
	res := reserve(t, store, space.ID, 1, "10:00", "11:00", domain.StatusConfirmed)
	require.NoError(t, store.Reservations().CreateClosure(ctx, space.ID, domain.AddDays(day, 1)))

	require.NoError(t, store.Spaces().Delete(ctx, space.ID))

	_, err := store.Spaces().GetByID(ctx, space.ID)
	assert.ErrorIs(t, err, spaceRepo.ErrSpaceNotFound)
	_, err = store.Reservations().GetByID(ctx, res.ID)
	assert.ErrorIs(t, err, reservationRepo.ErrReservationNotFound)
	closed, err := store.Reservations().IsClosed(ctx, space.ID, domain.AddDays(day, 1))
	require.NoError(t, err)
	assert.False(t, closed)
}

func TestSpaceRepository_ListOrderedByName(t *testing.T) {
	store, _ := seed(t)
	ctx := context.Background()
	_, err := store.Spaces().Create(ctx, &domain.Space{Name: "Archive", Capacity: 1, FullDay: true})
	require.NoError(t, err)

	spaces, err := store.Spaces().List(ctx)
	require.NoError(t, err)
	require.Len(t, spaces, 2)
	assert.Equal(t, "Archive", spaces[0].Name)
	assert.Equal(t, "Library", spaces[1].Name)
}

func TestUserRepository_NotFound(t *testing.T) {
	store := NewStore()

	_, err := store.Users().GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, userRepo.ErrUserNotFound)
	assert.ErrorIs(t, store.Users().UpdatePenalty(context.Background(), 42, nil), userRepo.ErrUserNotFound)
}
