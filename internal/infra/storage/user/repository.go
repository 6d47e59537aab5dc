package user

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/psqlbuilder"
)

const tableUsers = "users"

// Repository репозиторий пользователей.
// Пользователи заводятся сервисом аутентификации, здесь только чтение и штрафы.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "username", "full_name", "email", "phone", "role", "penalty_until").
		From(tableUsers).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.User
	var phone sql.NullString
	var penaltyUntil sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&user.Email,
		&phone,
		&user.Role,
		&penaltyUntil,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %v", ErrScanRow, err)
	}

	if phone.Valid && phone.String != "" {
		user.Phone = &phone.String
	}
	if penaltyUntil.Valid {
		until := domain.DateOf(penaltyUntil.Time)
		user.PenaltyUntil = &until
	}

	return &user, nil
}

// UpdatePenalty устанавливает дату окончания штрафа (nil снимает штраф)
func (r *Repository) UpdatePenalty(ctx context.Context, id int64, penaltyUntil *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var value interface{}
	if penaltyUntil != nil {
		value = *penaltyUntil
	}

	query, args, err := psqlbuilder.Update(tableUsers).
		Set("penalty_until", value).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePenalty - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePenalty - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePenalty - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
