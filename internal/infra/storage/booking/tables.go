package booking

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

const (
	// SQLSTATE exclusion_violation
	exclusionViolationCode = "23P01"
	// SQLSTATE serialization_failure
	serializationFailureCode = "40001"
)

// table описывает таблицу одного вида бронирований
type table struct {
	name       string
	userColumn string
}

var tables = map[domain.BookingKind]table{
	domain.BookingKindClient: {name: "client_bookings", userColumn: "client_id"},
	domain.BookingKindStaff:  {name: "staff_bookings", userColumn: "created_by"},
}

func tableFor(kind domain.BookingKind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return t, nil
}

// columns полный набор колонок бронирования, одинаковый для обеих таблиц
func (t table) columns() []string {
	return []string{
		"id",
		"salon_id",
		"employee_id",
		"service_id",
		t.userColumn,
		"start_at",
		"end_at",
		"status",
		"notes",
		"cancellation_reason",
		"created_at",
		"updated_at",
	}
}

// classifyWriteError переводит коды Postgres в ошибки пакета
func classifyWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case exclusionViolationCode:
			return fmt.Errorf("%w: %s: %v", ErrOverlap, op, err)
		case serializationFailureCode:
			return fmt.Errorf("%w: %s: %v", txmanager.ErrSerializationFailure, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
