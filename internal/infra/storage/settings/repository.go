package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// Repository настройки салонов (политика праздников, таймзона, ограничения записи)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var columns = []string{
	"salon_id",
	"holiday_policy",
	"timezone",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"created_at",
	"updated_at",
}

// GetBySalonID получает настройки салона
func (r *Repository) GetBySalonID(ctx context.Context, salonID int64) (*domain.SalonSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("salon_settings").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonID - build select query: %v", ErrBuildQuery, err)
	}

	settings, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, txmanager.WrapQueryError(ErrScanRow, "GetBySalonID - scan settings", err)
	}

	return settings, nil
}

// Upsert создаёт или полностью перезаписывает настройки салона
func (r *Repository) Upsert(ctx context.Context, s *domain.SalonSettings) (*domain.SalonSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salon_settings").
		Columns(
			"salon_id",
			"holiday_policy",
			"timezone",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			s.SalonID,
			s.HolidayPolicy,
			s.Timezone,
			s.AdvanceBookingDays,
			s.MinBookingNoticeMinutes,
		).
		Suffix(`ON CONFLICT (salon_id) DO UPDATE SET
			holiday_policy = EXCLUDED.holiday_policy,
			timezone = EXCLUDED.timezone,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = NOW()
		RETURNING ` + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	saved, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return saved, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSettings(row rowScanner) (*domain.SalonSettings, error) {
	var (
		s                    domain.SalonSettings
		policy               sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&s.SalonID,
		&policy,
		&s.Timezone,
		&s.AdvanceBookingDays,
		&s.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if policy.Valid {
		kind, err := domain.ParseHolidayKind(policy.String)
		if err != nil {
			return nil, err
		}
		s.HolidayPolicy = &kind
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
