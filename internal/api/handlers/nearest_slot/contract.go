package nearest_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

type AvailabilityService interface {
	NearestSlot(ctx context.Context, req *availability.NearestSlotRequest) (*time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
