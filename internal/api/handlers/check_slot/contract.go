package check_slot

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

type AvailabilityService interface {
	IsSlotAvailable(ctx context.Context, req *availability.SlotCheckRequest) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
