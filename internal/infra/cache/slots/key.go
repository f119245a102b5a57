package slots

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const keyPrefix = "slots"

// Key идентифицирует закэшированный список слотов
type Key struct {
	SalonID    int64
	ServiceID  int64
	EmployeeID *int64 // nil = любой подходящий сотрудник
	Date       string // YYYY-MM-DD в таймзоне салона
}

// String "slots:{salon}:{service}:{employee|any}:{date}"
func (k Key) String() string {
	employee := "any"
	if k.EmployeeID != nil {
		employee = strconv.FormatInt(*k.EmployeeID, 10)
	}
	return fmt.Sprintf("%s:%d:%d:%s:%s", keyPrefix, k.SalonID, k.ServiceID, employee, k.Date)
}

// indexKey множество ключей, зависящих от пары (сотрудник, дата)
func indexKey(pair domain.EmployeeDate) string {
	return fmt.Sprintf("%s:idx:%d:%s", keyPrefix, pair.EmployeeID, pair.Date)
}

// salonIndexKey множество всех ключей салона
func salonIndexKey(salonID int64) string {
	return fmt.Sprintf("%s:salon:%d", keyPrefix, salonID)
}
