package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	employeeRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/employee"
)

// window рабочее окно сотрудника на день недели; nil - выходной
func (s *Service) window(ctx context.Context, employeeID int64, weekday time.Weekday) (*domain.WorkingWindow, error) {
	entry, err := s.employeeRepo.GetScheduleEntry(ctx, employeeID, weekday)
	if errors.Is(err, employeeRepo.ErrScheduleNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("window: failed to get schedule for employee=%d weekday=%d: %v", employeeID, weekday, err)
		return nil, storageError("failed to get schedule", err)
	}

	w, err := entry.Window()
	if err != nil {
		s.logger.Error("window: employee=%d weekday=%d: %v", employeeID, weekday, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return w, nil
}
