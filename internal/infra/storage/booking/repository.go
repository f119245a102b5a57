package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// Repository репозиторий бронирований: client_bookings и staff_bookings
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование в таблице его вида.
// Нарушение ограничения исключения возвращается как ErrOverlap.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	t, err := tableFor(booking.Kind)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert(t.name).
		Columns(
			"salon_id",
			"employee_id",
			"service_id",
			t.userColumn,
			"start_at",
			"end_at",
			"status",
			"notes",
		).
		Values(
			booking.SalonID,
			booking.EmployeeID,
			booking.ServiceID,
			booking.UserID,
			booking.StartAt,
			booking.EndAt,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, classifyWriteError("Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по виду и ID
func (r *Repository) GetByID(ctx context.Context, kind domain.BookingKind, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(t.columns()...).
		From(t.name).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...), kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, txmanager.WrapQueryError(ErrScanRow, "GetByID - scan booking", err)
	}

	return booking, nil
}

// ListByEmployee возвращает бронирования обоих видов, пересекающие [From, To), по возрастанию начала
func (r *Repository) ListByEmployee(ctx context.Context, filter domain.EmployeeBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result := make([]*domain.Booking, 0)
	for _, kind := range domain.BookingKinds {
		t := tables[kind]

		selectBuilder := psqlbuilder.Select(t.columns()...).
			From(t.name).
			Where(squirrel.Eq{"employee_id": filter.EmployeeID}).
			Where(squirrel.Lt{"start_at": filter.To}).
			Where(squirrel.Gt{"end_at": filter.From}).
			OrderBy("start_at ASC")

		if !filter.IncludeCancelled {
			selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
		}

		query, args, err := selectBuilder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: ListByEmployee - build select query: %v", ErrBuildQuery, err)
		}

		rows, err := executor.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByEmployee - execute query: %v", ErrExecQuery, err)
		}

		bookings, err := scanBookings(rows, kind)
		if err != nil {
			return nil, err
		}
		result = append(result, bookings...)
	}

	sortByStart(result)
	return result, nil
}

// UpdateStatus переводит бронирование из статуса from в статус to.
// Если статус уже изменился конкурентным запросом, возвращает ErrStaleBooking.
func (r *Repository) UpdateStatus(ctx context.Context, ref domain.BookingRef, from, to domain.BookingStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildStatusUpdate(ref, from, to, reason)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyWriteError("UpdateStatus - execute update", err)
	}

	return checkAffected("UpdateStatus", result)
}

// Reschedule переносит бронирование на другой интервал и (опционально) другого сотрудника.
// Обновление условное: строка должна по-прежнему совпадать с previous (сотрудник, начало, статус),
// иначе возвращается ErrStaleBooking.
func (r *Repository) Reschedule(ctx context.Context, previous, moved *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildRescheduleUpdate(previous, moved)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyWriteError("Reschedule - execute update", err)
	}

	return checkAffected("Reschedule", result)
}

func buildStatusUpdate(ref domain.BookingRef, from, to domain.BookingStatus, reason *string) (string, []interface{}, error) {
	t, err := tableFor(ref.Kind)
	if err != nil {
		return "", nil, err
	}

	updateBuilder := psqlbuilder.Update(t.name).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ref.ID}).
		Where(squirrel.Eq{"status": from})

	if reason != nil {
		updateBuilder = updateBuilder.Set("cancellation_reason", *reason)
	}

	return updateBuilder.ToSql()
}

func buildRescheduleUpdate(previous, moved *domain.Booking) (string, []interface{}, error) {
	t, err := tableFor(moved.Kind)
	if err != nil {
		return "", nil, err
	}

	return psqlbuilder.Update(t.name).
		Set("employee_id", moved.EmployeeID).
		Set("start_at", moved.StartAt).
		Set("end_at", moved.EndAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": moved.ID}).
		Where(squirrel.Eq{
			"employee_id": previous.EmployeeID,
			"start_at":    previous.StartAt,
			"status":      previous.Status,
		}).
		ToSql()
}

// checkAffected: ноль строк после прочитанного бронирования означает, что его изменили конкурентно
func checkAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrStaleBooking, op)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner, kind domain.BookingKind) (*domain.Booking, error) {
	booking := domain.Booking{Kind: kind}
	var (
		notes, reason        sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.SalonID,
		&booking.EmployeeID,
		&booking.ServiceID,
		&booking.UserID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&notes,
		&reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		booking.Notes = &notes.String
	}
	if reason.Valid {
		booking.CancellationReason = &reason.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows, kind domain.BookingKind) ([]*domain.Booking, error) {
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
