package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// Repository праздники салонов (повторяются ежегодно по месяцу и дню)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория праздников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBySalonAndKind праздники салона одного вида
func (r *Repository) ListBySalonAndKind(ctx context.Context, salonID int64, kind domain.HolidayKind) ([]domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "month", "day", "kind", "name").
		From("holidays").
		Where(squirrel.Eq{"salon_id": salonID, "kind": kind}).
		OrderBy("month ASC", "day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalonAndKind - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, txmanager.WrapQueryError(ErrExecQuery, "ListBySalonAndKind - execute query", err)
	}
	defer rows.Close()

	holidays := make([]domain.Holiday, 0)
	for rows.Next() {
		var (
			h     domain.Holiday
			month int
		)
		if err := rows.Scan(&h.ID, &h.SalonID, &month, &h.Day, &h.Kind, &h.Name); err != nil {
			return nil, fmt.Errorf("%w: ListBySalonAndKind - scan holiday: %v", ErrScanRow, err)
		}
		h.Month = time.Month(month)
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, txmanager.WrapQueryError(ErrScanRow, "ListBySalonAndKind - rows error", err)
	}

	return holidays, nil
}
