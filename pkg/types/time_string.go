package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

const (
	timeLayout        = "15:04"
	timeLayoutSeconds = "15:04:05"
	minutesPerDay     = 24 * 60
	endOfDay          = TimeString("24:00")
)

// TimeString время суток в формате "HH:MM" (wall-clock, без даты и таймзоны)
type TimeString string

// NewTimeStringFromString парсит и нормализует строку "HH:MM" или "HH:MM:SS".
// "24:00" (Postgres TIME '24:00:00') означает конец суток.
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(s)
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(minutes)
}

// NewTimeStringFromMinutes создаёт TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes out of day range", ErrInvalidTimeString, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// FromTime берёт wall-clock время из t в его собственной локации
func FromTime(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

func (t TimeString) String() string {
	return string(t)
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// Minutes возвращает количество минут от полуночи (1440 для "24:00")
func (t TimeString) Minutes() (int, error) {
	return parseMinutes(string(t))
}

// Before сравнивает два валидных значения. Для формата HH:MM лексикографическое
// сравнение совпадает с хронологическим.
func (t TimeString) Before(other TimeString) bool {
	return t < other
}

// On возвращает момент времени t в дату date (в локации date); "24:00" - полночь следующего дня
func (t TimeString) On(date time.Time) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location()), nil
}

// Scan реализует sql.Scanner. Postgres TIME приходит как "HH:MM:SS".
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = FromTime(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, value)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

func parseMinutes(s string) (int, error) {
	if s == string(endOfDay) || s == string(endOfDay)+":00" {
		return minutesPerDay, nil
	}
	parsed, err := time.Parse(timeLayout, s)
	if err != nil {
		parsed, err = time.Parse(timeLayoutSeconds, s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}
