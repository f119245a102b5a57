package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	slotsCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/slots"
)

// CatalogRepository источник длительности услуги
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// EmployeeRepository сотрудники, допуск к услугам и недельное расписание
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	ListEligibleForService(ctx context.Context, serviceID int64) ([]*domain.Employee, error)
	IsEligible(ctx context.Context, employeeID, serviceID int64) (bool, error)
	GetScheduleEntry(ctx context.Context, employeeID int64, weekday time.Weekday) (*domain.ScheduleEntry, error)
}

// HolidayRepository праздники салона
type HolidayRepository interface {
	ListBySalonAndKind(ctx context.Context, salonID int64, kind domain.HolidayKind) ([]domain.Holiday, error)
}

// SettingsProvider настройки салона; при их отсутствии возвращает значения по умолчанию
type SettingsProvider interface {
	Resolve(ctx context.Context, salonID int64) (*domain.SalonSettings, error)
}

// BookingLedger единое чтение активных бронирований обоих видов
type BookingLedger interface {
	ActiveOverlapping(ctx context.Context, employeeID int64, from, to time.Time, exclude *domain.BookingRef) ([]domain.LedgerEntry, error)
}

// SlotsCache кэш списков слотов с инвалидацией по (сотрудник, дата)
type SlotsCache interface {
	Get(ctx context.Context, key slotsCache.Key) ([]time.Time, bool, error)
	Set(ctx context.Context, key slotsCache.Key, slots []time.Time, deps []domain.EmployeeDate) error
	Invalidate(ctx context.Context, pairs ...domain.EmployeeDate) error
}

// MetricsRecorder метрики кэша
type MetricsRecorder interface {
	IncSlotsCache(result string)
	IncSlotsInvalidation(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
