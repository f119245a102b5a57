package bookings

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, kind domain.BookingKind, id int64) (*domain.Booking, error)
	ListByEmployee(ctx context.Context, filter domain.EmployeeBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, ref domain.BookingRef, from, to domain.BookingStatus, reason *string) error
}

// EmployeeRepository нужен для таймзоны салона сотрудника
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

// SettingsProvider настройки салона (или значения по умолчанию)
type SettingsProvider interface {
	Resolve(ctx context.Context, salonID int64) (*domain.SalonSettings, error)
}

// SlotsInvalidator вытеснение кэша слотов по бронированиям
type SlotsInvalidator interface {
	InvalidateBookings(ctx context.Context, bookings ...*domain.Booking)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
