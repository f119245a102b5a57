package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if _, err := domain.ParseBookingKind(string(req.Kind)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}
	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}
	if req.StartAt.Second() != 0 || req.StartAt.Nanosecond() != 0 {
		return fmt.Errorf("%w: startAt must be a whole minute", ErrInvalidInput)
	}
	return nil
}

// validateTiming те же правила, что при создании: прошлое запрещено всем,
// уведомление и горизонт - только клиентским записям
func validateTiming(kind domain.BookingKind, startAt, now time.Time, settings *domain.SalonSettings, loc *time.Location) error {
	if startAt.Before(now) {
		return ErrStartInPast
	}
	if kind != domain.BookingKindClient {
		return nil
	}

	notice := time.Duration(settings.MinBookingNoticeMinutes) * time.Minute
	if startAt.Before(now.Add(notice)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, settings.MinBookingNoticeMinutes)
	}

	if settings.AdvanceBookingDays == 0 {
		return nil
	}
	maxDate := domain.DayStart(now, loc).AddDate(0, 0, settings.AdvanceBookingDays)
	if domain.DayStart(startAt, loc).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
	}
	return nil
}
