package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	LockEmployee(ctx context.Context, employeeID int64) error
}

// AvailabilityService движок доступности
type AvailabilityService interface {
	GetService(ctx context.Context, salonID, serviceID int64) (*domain.Service, error)
	EnsureEligible(ctx context.Context, salonID, serviceID, employeeID int64) error
	FindAvailableEmployee(ctx context.Context, req *availability.FindEmployeeRequest) (*int64, error)
	IsSlotAvailable(ctx context.Context, req *availability.SlotCheckRequest) (bool, error)
	InvalidateBookings(ctx context.Context, bookings ...*domain.Booking)
}

// SettingsProvider настройки салона (или значения по умолчанию)
type SettingsProvider interface {
	Resolve(ctx context.Context, salonID int64) (*domain.SalonSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder метрики конфликтов записи
type MetricsRecorder interface {
	IncBookingConflict(reason string)
}

type noopMetrics struct{}

func (noopMetrics) IncBookingConflict(string) {}

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
