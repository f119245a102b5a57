package available_employee

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

type AvailabilityService interface {
	FindAvailableEmployee(ctx context.Context, req *availability.FindEmployeeRequest) (*int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
