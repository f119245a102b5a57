package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if _, err := domain.ParseBookingKind(string(req.Kind)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	// Проверяем, что время начала указано и кратно минуте
	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}
	if req.StartAt.Second() != 0 || req.StartAt.Nanosecond() != 0 {
		return fmt.Errorf("%w: startAt must be a whole minute", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Status != nil {
		if _, err := domain.ParseBookingStatus(string(*req.Status)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !req.Status.IsInitial() {
			return fmt.Errorf("%w: initial status must be REQUESTED or CONFIRMED", ErrInvalidInput)
		}
	}

	return nil
}

// validateTiming проверяет время записи относительно now и настроек салона.
// Ограничения уведомления и горизонта действуют только для клиентских записей.
func validateTiming(kind domain.BookingKind, startAt, now time.Time, settings *domain.SalonSettings, loc *time.Location) error {
	if startAt.Before(now) {
		return ErrStartInPast
	}

	if kind != domain.BookingKindClient {
		return nil
	}

	// Проверяем minBookingNoticeMinutes
	notice := time.Duration(settings.MinBookingNoticeMinutes) * time.Minute
	if startAt.Before(now.Add(notice)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, settings.MinBookingNoticeMinutes)
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if settings.AdvanceBookingDays == 0 {
		return nil
	}

	// Сравниваем календарные даты в таймзоне салона
	maxDate := domain.DayStart(now, loc).AddDate(0, 0, settings.AdvanceBookingDays)
	if domain.DayStart(startAt, loc).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
	}

	return nil
}
