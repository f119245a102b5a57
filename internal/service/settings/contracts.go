package settings

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек салона
type SettingsRepository interface {
	GetBySalonID(ctx context.Context, salonID int64) (*domain.SalonSettings, error)
	Upsert(ctx context.Context, settings *domain.SalonSettings) (*domain.SalonSettings, error)
}

// SalonCache сброс кэша слотов всего салона
type SalonCache interface {
	InvalidateSalon(ctx context.Context, salonID int64) error
}

// MetricsRecorder метрики инвалидации кэша
type MetricsRecorder interface {
	IncSlotsInvalidation(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
