package user

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

var userColumns = []string{"id", "username", "full_name", "email", "phone", "role", "penalty_until"}

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newTestRepo(t)
	until := domain.NewDate(2025, 6, 5)

	mock.ExpectQuery(`SELECT id, username, full_name, email, phone, role, penalty_until FROM users WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(4), "maria", "Maria P.", "maria@example.com", "+306900000000", "student", until))

	user, err := repo.GetByID(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, user.Role)
	require.NotNil(t, user.Phone)
	assert.Equal(t, "+306900000000", *user.Phone)
	require.NotNil(t, user.PenaltyUntil)
	assert.Equal(t, until, *user.PenaltyUntil)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NullableColumns(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(5), "staff1", "Staff", "staff@example.com", nil, "staff", nil))

	user, err := repo.GetByID(context.Background(), 5)

	require.NoError(t, err)
	assert.True(t, user.IsStaff())
	assert.Nil(t, user.Phone)
	assert.Nil(t, user.PenaltyUntil)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`FROM users`).WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByID(context.Background(), 1)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_UpdatePenalty(t *testing.T) {
	repo, mock := newTestRepo(t)
	until := domain.NewDate(2025, 6, 5)

	mock.ExpectExec(`UPDATE users SET penalty_until = \$1 WHERE id = \$2`).
		WithArgs(until, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET penalty_until = \$1 WHERE id = \$2`).
		WithArgs(nil, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdatePenalty(context.Background(), 4, &until))
	assert.ErrorIs(t, repo.UpdatePenalty(context.Background(), 404, nil), ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
