package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

const (
	tableReservations = "reservations"
	tableClosures     = "space_closures"
)

var reservationColumns = []string{
	"id",
	"space_id",
	"user_id",
	"date",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование.
// Проверки вместимости и лимитов выполняются вызывающей стороной в той же транзакции.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if !reservation.Status.IsValid() {
		return nil, fmt.Errorf("%w: Create - %q", ErrInvalidStatus, reservation.Status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableReservations).
		Columns("space_id", "user_id", "date", "start_time", "end_time", "status").
		Values(
			reservation.SpaceID,
			reservation.UserID,
			reservation.Date,
			reservation.StartTime,
			reservation.EndTime,
			reservation.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&reservation.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// GetByUserID получает все бронирования пользователя, сначала новые
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC", "start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, "GetByUserID", query, args)
}

// GetBySpaceAndDate получает все бронирования помещения на дату в порядке времени начала
func (r *Repository) GetBySpaceAndDate(ctx context.Context, spaceID int64, date time.Time) ([]*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"space_id": spaceID, "date": date}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpaceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, "GetBySpaceAndDate", query, args)
}

// GetBySpaceWithFilter получает бронирования помещения за период (включительно)
// Пустой filter.Statuses означает все статусы
func (r *Repository) GetBySpaceWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"space_id": filter.SpaceID}).
		Where(squirrel.GtOrEq{"date": filter.StartDate}).
		Where(squirrel.LtOrEq{"date": filter.EndDate}).
		OrderBy("date ASC", "start_time ASC")

	if len(filter.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpaceWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, "GetBySpaceWithFilter", query, args)
}

// CountByUserAndDate считает бронирования пользователя на дату с указанными статусами
func (r *Repository) CountByUserAndDate(ctx context.Context, userID int64, date time.Time, statuses []domain.ReservationStatus) (int, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableReservations).
		Where(squirrel.Eq{"user_id": userID, "date": date, "status": statusStrings(statuses)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByUserAndDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryCount(ctx, "CountByUserAndDate", query, args)
}

// CountOverlapping считает бронирования помещения на дату, пересекающиеся с [start, end)
func (r *Repository) CountOverlapping(
	ctx context.Context,
	spaceID int64,
	date time.Time,
	start, end types.TimeString,
	statuses []domain.ReservationStatus,
) (int, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableReservations).
		Where(squirrel.Eq{"space_id": spaceID, "date": date, "status": statusStrings(statuses)}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryCount(ctx, "CountOverlapping", query, args)
}

// ExistsBySpaceDateStatus проверяет наличие бронирования помещения на дату в статусе
func (r *Repository) ExistsBySpaceDateStatus(ctx context.Context, spaceID int64, date time.Time, status domain.ReservationStatus) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From(tableReservations).
		Where(squirrel.Eq{"space_id": spaceID, "date": date, "status": status}).
		Limit(1).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsBySpaceDateStatus - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsBySpaceDateStatus - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: UpdateStatus - %q", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// UpdateStatusBySpaceAndDate переводит все бронирования помещения на дату из статусов from в статус to.
// Возвращает изменённые бронирования.
func (r *Repository) UpdateStatusBySpaceAndDate(
	ctx context.Context,
	spaceID int64,
	date time.Time,
	from []domain.ReservationStatus,
	to domain.ReservationStatus,
) ([]*domain.Reservation, error) {
	if !to.IsValid() {
		return nil, fmt.Errorf("%w: UpdateStatusBySpaceAndDate - %q", ErrInvalidStatus, to)
	}

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"space_id": spaceID, "date": date, "status": statusStrings(from)}).
		Suffix("RETURNING " + strings.Join(reservationColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatusBySpaceAndDate - build update query: %v", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, "UpdateStatusBySpaceAndDate", query, args)
}

// LockSpaceDay берёт транзакционную advisory-блокировку на (помещение, дата)
func (r *Repository) LockSpaceDay(ctx context.Context, spaceID int64, date time.Time) error {
	return r.advisoryLock(ctx, fmt.Sprintf("space:%d:%s", spaceID, date.Format(domain.DateFormat)))
}

// LockUserDay берёт транзакционную advisory-блокировку на (пользователь, дата)
func (r *Repository) LockUserDay(ctx context.Context, userID int64, date time.Time) error {
	return r.advisoryLock(ctx, fmt.Sprintf("user:%d:%s", userID, date.Format(domain.DateFormat)))
}

// CreateClosure отмечает помещение закрытым персоналом на дату (идемпотентно)
func (r *Repository) CreateClosure(ctx context.Context, spaceID int64, date time.Time) error {
	query, args, err := psqlbuilder.Insert(tableClosures).
		Columns("space_id", "date").
		Values(spaceID, date).
		Suffix("ON CONFLICT (space_id, date) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateClosure - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateClosure - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// IsClosed проверяет, закрыто ли помещение персоналом на дату
func (r *Repository) IsClosed(ctx context.Context, spaceID int64, date time.Time) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From(tableClosures).
		Where(squirrel.Eq{"space_id": spaceID, "date": date}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsClosed - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: IsClosed - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

func (r *Repository) advisoryLock(ctx context.Context, key string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: advisory lock %s", ErrTransaction, key)
	}

	_, err := dbmetrics.GetExecutor(ctx, r.db).
		ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key)
	if err != nil {
		return fmt.Errorf("%w: advisory lock %s: %v", ErrExecQuery, key, err)
	}

	return nil
}

func (r *Repository) queryReservations(ctx context.Context, op, query string, args []interface{}) ([]*domain.Reservation, error) {
	rows, err := dbmetrics.GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return reservations, nil
}

func (r *Repository) queryCount(ctx context.Context, op, query string, args []interface{}) (int, error) {
	var count int
	if err := dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, op, err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.SpaceID,
		&reservation.UserID,
		&reservation.Date,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.Date = domain.DateOf(reservation.Date)
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
