package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// ActiveOverlapping возвращает все не отменённые бронирования сотрудника обоих видов,
// пересекающие [from, to). exclude (если задан) исключается только из таблицы своего вида.
func (r *Repository) ActiveOverlapping(
	ctx context.Context,
	employeeID int64,
	from, to time.Time,
	exclude *domain.BookingRef,
) ([]domain.LedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildLedgerQuery(employeeID, from, to, exclude)
	if err != nil {
		return nil, fmt.Errorf("%w: ActiveOverlapping - build union query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, txmanager.WrapQueryError(ErrExecQuery, "ActiveOverlapping - execute query", err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		var (
			entry domain.LedgerEntry
			kind  string
		)
		if err := rows.Scan(&entry.ID, &kind, &entry.StartAt, &entry.EndAt); err != nil {
			return nil, txmanager.WrapQueryError(ErrScanRow, "ActiveOverlapping - scan entry", err)
		}
		entry.Kind = domain.BookingKind(kind)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, txmanager.WrapQueryError(ErrScanRow, "ActiveOverlapping - rows error", err)
	}

	return entries, nil
}

// LockEmployee берёт транзакционную advisory-блокировку на сотрудника.
// Сериализует конкурентные записи в обе таблицы; снимается при commit/rollback.
func (r *Repository) LockEmployee(ctx context.Context, employeeID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockEmployee - called outside of transaction", ErrExecQuery)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", employeeID); err != nil {
		return classifyWriteError("LockEmployee - acquire advisory lock", err)
	}
	return nil
}

// buildLedgerQuery строит один UNION ALL запрос по обеим таблицам
func buildLedgerQuery(employeeID int64, from, to time.Time, exclude *domain.BookingRef) (string, []interface{}, error) {
	parts := make([]squirrel.SelectBuilder, 0, len(domain.BookingKinds))

	for _, kind := range domain.BookingKinds {
		t := tables[kind]

		part := squirrel.Select("id", fmt.Sprintf("'%s' AS kind", kind), "start_at", "end_at").
			From(t.name).
			Where(squirrel.Eq{"employee_id": employeeID}).
			Where(squirrel.NotEq{"status": domain.StatusCancelled}).
			Where(squirrel.Lt{"start_at": to}).
			Where(squirrel.Gt{"end_at": from})

		if exclude != nil && exclude.Kind == kind {
			part = part.Where(squirrel.NotEq{"id": exclude.ID})
		}

		parts = append(parts, part)
	}

	return psqlbuilder.Union("ORDER BY start_at ASC", parts...)
}

func sortByStart(bookings []*domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].StartAt.Before(bookings[j].StartAt)
	})
}
