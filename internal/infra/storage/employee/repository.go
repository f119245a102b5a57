package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Repository сотрудники, их услуги и недельное расписание
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "is_active").
		From("employees").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var e domain.Employee
	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.SalonID, &e.Name, &e.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, txmanager.WrapQueryError(ErrScanRow, "GetByID - scan employee", err)
	}

	return &e, nil
}

// ListEligibleForService активные сотрудники, оказывающие услугу, по возрастанию ID
func (r *Repository) ListEligibleForService(ctx context.Context, serviceID int64) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("e.id", "e.salon_id", "e.name", "e.is_active").
		From("employees e").
		Join("employee_services es ON es.employee_id = e.id").
		Where(squirrel.Eq{"es.service_id": serviceID}).
		Where(squirrel.Eq{"e.is_active": true}).
		OrderBy("e.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListEligibleForService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, txmanager.WrapQueryError(ErrExecQuery, "ListEligibleForService - execute query", err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.SalonID, &e.Name, &e.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListEligibleForService - scan employee: %v", ErrScanRow, err)
		}
		employees = append(employees, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, txmanager.WrapQueryError(ErrScanRow, "ListEligibleForService - rows error", err)
	}

	return employees, nil
}

// IsEligible проверяет, что сотрудник оказывает услугу
func (r *Repository) IsEligible(ctx context.Context, employeeID, serviceID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("employee_services").
		Where(squirrel.Eq{"employee_id": employeeID, "service_id": serviceID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsEligible - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, txmanager.WrapQueryError(ErrScanRow, "IsEligible - scan", err)
	}

	return exists, nil
}

// GetScheduleEntry запись расписания сотрудника на день недели.
// ErrScheduleNotFound означает выходной.
func (r *Repository) GetScheduleEntry(ctx context.Context, employeeID int64, weekday time.Weekday) (*domain.ScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("employee_id", "weekday", "start_time", "end_time", "break_start", "break_end").
		From("employee_schedules").
		Where(squirrel.Eq{"employee_id": employeeID, "weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleEntry - build select query: %v", ErrBuildQuery, err)
	}

	var (
		entry                            domain.ScheduleEntry
		day                              int
		start, end, breakStart, breakEnd sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.EmployeeID,
		&day,
		&start,
		&end,
		&breakStart,
		&breakEnd,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, txmanager.WrapQueryError(ErrScanRow, "GetScheduleEntry - scan entry", err)
	}

	entry.Weekday = time.Weekday(day)
	for _, field := range []struct {
		src sql.NullString
		dst **types.TimeString
	}{
		{start, &entry.Start},
		{end, &entry.End},
		{breakStart, &entry.BreakStart},
		{breakEnd, &entry.BreakEnd},
	} {
		if !field.src.Valid {
			continue
		}
		ts, err := types.NewTimeStringFromString(field.src.String)
		if err != nil {
			return nil, fmt.Errorf("%w: GetScheduleEntry - parse time: %v", ErrScanRow, err)
		}
		*field.dst = &ts
	}

	return &entry, nil
}
