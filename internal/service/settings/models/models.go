package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модели

// UpdateSettingsRequest полная замена настроек салона (PUT)
type UpdateSettingsRequest struct {
	UserID                  int64   `json:"-"`
	SalonID                 int64   `json:"-"`
	HolidayPolicy           *string `json:"holidayPolicy"` // null = праздники не учитываются
	Timezone                string  `json:"timezone"`      // пусто = таймзона по умолчанию
	AdvanceBookingDays      int     `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int     `json:"minBookingNoticeMinutes"`
}

// Response модели

// SettingsResponse ответ с настройками салона
type SettingsResponse struct {
	SalonID                 int64      `json:"salonId"`
	HolidayPolicy           *string    `json:"holidayPolicy"`
	Timezone                string     `json:"timezone"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	IsDefault               bool       `json:"isDefault"`
	CreatedAt               *time.Time `json:"createdAt,omitempty"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO.
// Настройки без даты создания ещё не сохранены - это значения по умолчанию.
func FromDomainSettings(s *domain.SalonSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		SalonID:                 s.SalonID,
		Timezone:                s.Timezone,
		AdvanceBookingDays:      s.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		IsDefault:               s.CreatedAt.IsZero(),
	}
	if s.HolidayPolicy != nil {
		policy := string(*s.HolidayPolicy)
		resp.HolidayPolicy = &policy
	}
	if !s.CreatedAt.IsZero() {
		createdAt, updatedAt := s.CreatedAt, s.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// ToDomainSettings конвертирует запрос в domain модель.
// Политика праздников должна быть уже провалидирована.
func (r *UpdateSettingsRequest) ToDomainSettings(defaultTimezone string) *domain.SalonSettings {
	s := &domain.SalonSettings{
		SalonID:                 r.SalonID,
		Timezone:                r.Timezone,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
	if s.Timezone == "" {
		s.Timezone = defaultTimezone
	}
	if r.HolidayPolicy != nil {
		policy := domain.HolidayKind(*r.HolidayPolicy)
		s.HolidayPolicy = &policy
	}
	return s
}
