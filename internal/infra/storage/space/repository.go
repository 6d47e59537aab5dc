package space

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

const tableSpaces = "spaces"

var spaceColumns = []string{
	"id",
	"name",
	"description",
	"capacity",
	"open_time",
	"close_time",
	"full_day",
	"created_at",
	"updated_at",
}

// Repository репозиторий помещений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория помещений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает помещение
func (r *Repository) Create(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	openTime, closeTime := hoursValues(space)
	query, args, err := psqlbuilder.Insert(tableSpaces).
		Columns("name", "description", "capacity", "open_time", "close_time", "full_day").
		Values(space.Name, space.Description, space.Capacity, openTime, closeTime, space.FullDay).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&space.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	space.CreatedAt = createdAt.Time
	space.UpdatedAt = updatedAt.Time

	return space, nil
}

// GetByID получает помещение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(spaceColumns...).
		From(tableSpaces).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	space, err := scanSpace(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan space: %v", ErrScanRow, err)
	}

	return space, nil
}

// List возвращает все помещения, отсортированные по названию
func (r *Repository) List(ctx context.Context) ([]*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(spaceColumns...).
		From(tableSpaces).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spaces := make([]*domain.Space, 0)
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		spaces = append(spaces, space)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return spaces, nil
}

// Update обновляет помещение
func (r *Repository) Update(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	openTime, closeTime := hoursValues(space)
	query, args, err := psqlbuilder.Update(tableSpaces).
		Set("name", space.Name).
		Set("description", space.Description).
		Set("capacity", space.Capacity).
		Set("open_time", openTime).
		Set("close_time", closeTime).
		Set("full_day", space.FullDay).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": space.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	space.CreatedAt = createdAt.Time
	space.UpdatedAt = updatedAt.Time

	return space, nil
}

// Delete удаляет помещение. Бронирования и отметки о закрытии удаляются каскадно.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableSpaces).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSpaceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpace(row rowScanner) (*domain.Space, error) {
	var space domain.Space
	var openTime, closeTime types.TimeString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&space.ID,
		&space.Name,
		&space.Description,
		&space.Capacity,
		&openTime,
		&closeTime,
		&space.FullDay,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	space.OpenTime = openTime
	space.CloseTime = closeTime
	space.CreatedAt = createdAt.Time
	space.UpdatedAt = updatedAt.Time

	return &space, nil
}

// hoursValues возвращает часы работы для записи; у круглосуточных помещений NULL
func hoursValues(space *domain.Space) (interface{}, interface{}) {
	if space.FullDay {
		return nil, nil
	}
	return space.OpenTime, space.CloseTime
}
