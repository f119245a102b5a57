package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Config параметры движка доступности
type Config struct {
	// SlotGranularityMinutes шаг сетки слотов; 0 = длительность услуги
	SlotGranularityMinutes int
	// HorizonDays сколько дней вперёд просматривает NearestSlot
	HorizonDays int
}

// ListSlotsRequest запрос списка слотов на дату
type ListSlotsRequest struct {
	SalonID    int64
	ServiceID  int64
	EmployeeID *int64    // nil = любой подходящий сотрудник
	Date       time.Time // календарная дата; время и таймзона игнорируются
}

// NearestSlotRequest запрос ближайшего слота
type NearestSlotRequest struct {
	SalonID     int64
	ServiceID   int64
	EmployeeID  *int64
	PreferredAt *time.Time // nil = сейчас
}

// FindEmployeeRequest запрос автоподбора сотрудника
type FindEmployeeRequest struct {
	SalonID         int64
	ServiceID       int64
	StartAt         time.Time
	DurationMinutes *int // nil = длительность услуги
}

// SlotCheckRequest авторитетная проверка одного интервала
type SlotCheckRequest struct {
	EmployeeID      int64
	StartAt         time.Time
	DurationMinutes int
	Exclude         *domain.BookingRef // бронирование, которое переносится
}
