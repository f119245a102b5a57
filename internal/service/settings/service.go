package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/settings/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// Config значения по умолчанию для салонов без сохранённых настроек
type Config struct {
	DefaultTimezone         string
	DefaultMinNoticeMinutes int
}

// Service сервис настроек салона
type Service struct {
	settingsRepo SettingsRepository
	cache        SalonCache
	metrics      MetricsRecorder
	cfg          Config
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	cache SalonCache,
	metrics MetricsRecorder,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.DefaultTimezone == "" {
		cfg.DefaultTimezone = domain.DefaultTimezone
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		settingsRepo: settingsRepo,
		cache:        cache,
		metrics:      metrics,
		cfg:          cfg,
		logger:       logger,
	}
}

type noopMetrics struct{}

func (noopMetrics) IncSlotsInvalidation(string) {}

// Resolve возвращает сохранённые настройки салона или значения по умолчанию
func (s *Service) Resolve(ctx context.Context, salonID int64) (*domain.SalonSettings, error) {
	settings, err := s.settingsRepo.GetBySalonID(ctx, salonID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultSalonSettings(salonID, s.cfg.DefaultTimezone, s.cfg.DefaultMinNoticeMinutes), nil
		}
		s.logger.Error("Resolve: repository error for salon=%d: %v", salonID, err)
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}
	return settings, nil
}

// Get получает настройки салона
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, salonID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for salon=%d", salonID)

	if salonID <= 0 {
		return nil, fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	settings, err := s.Resolve(ctx, salonID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSettings(settings), nil
}

// Update заменяет настройки салона и сбрасывает кэш слотов салона:
// политика праздников и таймзона меняют все списки слотов
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for salon=%d by user=%d", req.SalonID, req.UserID)

	// 1. Валидируем входные данные
	if err := s.validateUpdateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	// 2. Сохраняем настройки
	updated, err := s.settingsRepo.Upsert(ctx, req.ToDomainSettings(s.cfg.DefaultTimezone))
	if err != nil {
		s.logger.Error("Update: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 3. Сбрасываем кэш слотов салона (ошибка не откатывает изменение)
	if err := s.cache.InvalidateSalon(ctx, req.SalonID); err != nil {
		s.metrics.IncSlotsInvalidation(metrics.InvalidationError)
		s.logger.Error("Update: failed to invalidate slots cache for salon=%d: %v", req.SalonID, err)
	} else {
		s.metrics.IncSlotsInvalidation(metrics.InvalidationOK)
	}

	s.logger.Info("Update: successfully updated settings for salon=%d", req.SalonID)
	return models.FromDomainSettings(updated), nil
}

// validateUpdateRequest валидирует параметры настроек
func (s *Service) validateUpdateRequest(req *models.UpdateSettingsRequest) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	// Проверяем политику праздников
	if req.HolidayPolicy != nil {
		if _, err := domain.ParseHolidayKind(*req.HolidayPolicy); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	// Проверяем таймзону
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
		}
	}

	// Проверяем advanceBookingDays
	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	// Проверяем minBookingNoticeMinutes
	if req.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || req.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	return nil
}
