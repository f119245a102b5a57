package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownHolidayKind unknown holiday policy value
var ErrUnknownHolidayKind = errors.New("domain: unknown holiday kind")

// HolidayKind groups holidays; a salon enforces at most one kind at a time
type HolidayKind string

const (
	HolidayKindStandard HolidayKind = "standard"
	HolidayKindCustom   HolidayKind = "custom"
)

// ParseHolidayKind validates a raw kind value
func ParseHolidayKind(s string) (HolidayKind, error) {
	switch k := HolidayKind(s); k {
	case HolidayKindStandard, HolidayKindCustom:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownHolidayKind, s)
	}
}

// Holiday recurs every year on Month/Day
type Holiday struct {
	ID      int64
	SalonID int64
	Month   time.Month
	Day     int
	Kind    HolidayKind
	Name    string
}

// OccursOn reports whether the holiday falls on date (year is ignored)
func (h *Holiday) OccursOn(date time.Time) bool {
	return date.Month() == h.Month && date.Day() == h.Day
}

// Closure is the outcome of a holiday lookup for one date
type Closure struct {
	Closed bool
	Name   string
}

// SalonSettings per-salon booking settings
type SalonSettings struct {
	SalonID                 int64
	HolidayPolicy           *HolidayKind // nil = no holidays enforced
	Timezone                string
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// Location resolves the salon timezone
func (s *SalonSettings) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// DefaultSalonSettings is used when a salon has no stored settings
func DefaultSalonSettings(salonID int64, timezone string, minNoticeMinutes int) *SalonSettings {
	return &SalonSettings{
		SalonID:                 salonID,
		Timezone:                timezone,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: minNoticeMinutes,
	}
}
