package list_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

type AvailabilityService interface {
	ListSlots(ctx context.Context, req *availability.ListSlotsRequest) ([]time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
