package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func validateListSlotsRequest(req *ListSlotsRequest) error {
	if err := validateSalonService(req.SalonID, req.ServiceID); err != nil {
		return err
	}
	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

func validateNearestSlotRequest(req *NearestSlotRequest) error {
	if err := validateSalonService(req.SalonID, req.ServiceID); err != nil {
		return err
	}
	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}
	if req.PreferredAt != nil && req.PreferredAt.IsZero() {
		return fmt.Errorf("%w: preferredAt is invalid", ErrInvalidInput)
	}
	return nil
}

func validateFindEmployeeRequest(req *FindEmployeeRequest) error {
	if err := validateSalonService(req.SalonID, req.ServiceID); err != nil {
		return err
	}
	if err := validateStart(req.StartAt); err != nil {
		return err
	}
	if req.DurationMinutes != nil {
		return validateDuration(*req.DurationMinutes)
	}
	return nil
}

func validateSlotCheckRequest(req *SlotCheckRequest) error {
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}
	if err := validateStart(req.StartAt); err != nil {
		return err
	}
	if err := validateDuration(req.DurationMinutes); err != nil {
		return err
	}
	if req.Exclude != nil {
		if req.Exclude.ID <= 0 {
			return fmt.Errorf("%w: exclude id must be positive", ErrInvalidInput)
		}
		if _, err := domain.ParseBookingKind(string(req.Exclude.Kind)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	return nil
}

func validateSalonService(salonID, serviceID int64) error {
	if salonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}
	if serviceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	return nil
}

func validateStart(start time.Time) error {
	if start.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}
	if start.Second() != 0 || start.Nanosecond() != 0 {
		return fmt.Errorf("%w: start time must be a whole minute", ErrInvalidInput)
	}
	return nil
}

func validateDuration(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	if minutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}
	return nil
}
