package settings

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type fakeRow struct {
	values []interface{}
	err    error
}

func (f fakeRow) Scan(dest ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = f.values[i].(int64)
		case *int:
			*p = f.values[i].(int)
		case *string:
			*p = f.values[i].(string)
		case *sql.NullString:
			if err := p.Scan(f.values[i]); err != nil {
				return err
			}
		case *sql.NullTime:
			if err := p.Scan(f.values[i]); err != nil {
				return err
			}
		default:
			return errors.New("unexpected destination")
		}
	}
	return nil
}

func TestScanSettings(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	s, err := scanSettings(fakeRow{values: []interface{}{
		int64(3), "standard", "Europe/Moscow", 14, 120, now, now,
	}})
	require.NoError(t, err)

	require.NotNil(t, s.HolidayPolicy)
	assert.Equal(t, domain.HolidayKindStandard, *s.HolidayPolicy)
	assert.Equal(t, "Europe/Moscow", s.Timezone)
	assert.Equal(t, 14, s.AdvanceBookingDays)
	assert.Equal(t, 120, s.MinBookingNoticeMinutes)
	assert.Equal(t, now, s.CreatedAt)
}

func TestScanSettings_NullPolicy(t *testing.T) {
	s, err := scanSettings(fakeRow{values: []interface{}{
		int64(3), nil, "UTC", 0, 60, nil, nil,
	}})
	require.NoError(t, err)
	assert.Nil(t, s.HolidayPolicy)
}

func TestScanSettings_UnknownPolicy(t *testing.T) {
	_, err := scanSettings(fakeRow{values: []interface{}{
		int64(3), "lunar", "UTC", 0, 60, nil, nil,
	}})
	assert.ErrorIs(t, err, domain.ErrUnknownHolidayKind)
}

func TestScanSettings_PropagatesNoRows(t *testing.T) {
	_, err := scanSettings(fakeRow{err: sql.ErrNoRows})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
