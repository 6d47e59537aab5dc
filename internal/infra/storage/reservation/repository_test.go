package reservation

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

var testDate = domain.NewDate(2025, 6, 2)

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock, db
}

func reservationRows() *sqlmock.Rows {
	return sqlmock.NewRows(reservationColumns)
}

func TestRepository_Create(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO reservations \(space_id,user_id,date,start_time,end_time,status\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6\) RETURNING id, created_at, updated_at`).
		WithArgs(int64(1), int64(2), testDate, "10:00:00", "11:00:00", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	created, err := repo.Create(context.Background(), &domain.Reservation{
		SpaceID:   1,
		UserID:    2,
		Date:      testDate,
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    domain.StatusConfirmed,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_InvalidStatus(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	_, err := repo.Create(context.Background(), &domain.Reservation{Status: "completed"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, space_id, user_id, date, start_time, end_time, status, created_at, updated_at FROM reservations WHERE id = \$1$`).
		WithArgs(int64(5)).
		WillReturnRows(reservationRows().AddRow(int64(5), int64(1), int64(2), testDate, "10:00:00", "11:30:00", "confirmed", now, now))

	got, err := repo.GetByID(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), got.StartTime)
	assert.Equal(t, types.TimeString("11:30"), got.EndTime)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, testDate, got.Date)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_LocksRowInTransaction(t *testing.T) {
	repo, mock, db := newTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	tx, err := dbmetrics.Plain(db).BeginTx(context.Background(), nil)
	require.NoError(t, err)

	_, err = repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 5)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountOverlapping(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reservations WHERE date = \$1 AND space_id = \$2 AND status IN \(\$3,\$4\) AND start_time < \$5 AND end_time > \$6`).
		WithArgs(testDate, int64(1), "pending", "confirmed", "12:00:00", "10:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountOverlapping(context.Background(), 1, testDate, "10:00", "12:00", domain.ActiveStatuses)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountByUserAndDate(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reservations WHERE date = \$1 AND status IN \(\$2,\$3\) AND user_id = \$4`).
		WithArgs(testDate, "pending", "confirmed", int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountByUserAndDate(context.Background(), 9, testDate, domain.ActiveStatuses)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	mock.ExpectExec(`UPDATE reservations SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("cancelled", int64(77)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 77, domain.StatusCancelled)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatusBySpaceAndDate(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE reservations SET status = \$1, updated_at = NOW\(\) WHERE date = \$2 AND space_id = \$3 AND status IN \(\$4,\$5\) RETURNING id, space_id`).
		WithArgs("cancelled_by_staff", testDate, int64(1), "pending", "confirmed").
		WillReturnRows(reservationRows().
			AddRow(int64(1), int64(1), int64(2), testDate, "10:00:00", "11:00:00", "cancelled_by_staff", now, now).
			AddRow(int64(2), int64(1), int64(3), testDate, "12:00:00", "13:00:00", "cancelled_by_staff", now, now))

	updated, err := repo.UpdateStatusBySpaceAndDate(context.Background(), 1, testDate, domain.ActiveStatuses, domain.StatusCancelledByStaff)

	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, int64(3), updated[1].UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockSpaceDay(t *testing.T) {
	repo, mock, db := newTestRepo(t)

	t.Run("requires transaction", func(t *testing.T) {
		err := repo.LockSpaceDay(context.Background(), 1, testDate)
		assert.ErrorIs(t, err, ErrTransaction)
	})

	t.Run("takes advisory lock", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtextextended\(\$1, 0\)\)`).
			WithArgs("space:1:2025-06-02").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs("user:4:2025-06-02").
			WillReturnError(errors.New("deadlock detected"))
		mock.ExpectCommit()

		tx, err := dbmetrics.Plain(db).BeginTx(context.Background(), nil)
		require.NoError(t, err)
		ctx := dbmetrics.WithTx(context.Background(), tx)

		require.NoError(t, repo.LockSpaceDay(ctx, 1, testDate))
		assert.ErrorIs(t, repo.LockUserDay(ctx, 4, testDate), ErrExecQuery)

		require.NoError(t, tx.Commit())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Closures(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	mock.ExpectExec(`INSERT INTO space_closures \(space_id,date\) VALUES \(\$1,\$2\) ON CONFLICT \(space_id, date\) DO NOTHING`).
		WithArgs(int64(1), testDate).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT EXISTS \( SELECT 1 FROM space_closures WHERE date = \$1 AND space_id = \$2 \)`).
		WithArgs(testDate, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, repo.CreateClosure(context.Background(), 1, testDate))

	closed, err := repo.IsClosed(context.Background(), 1, testDate)
	require.NoError(t, err)
	assert.True(t, closed)
	require.NoError(t, mock.ExpectationsWereMet())
}
