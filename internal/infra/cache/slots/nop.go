package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// NopCache кэш выключен: всегда промах, запись и инвалидация ничего не делают
type NopCache struct{}

func (NopCache) Get(context.Context, Key) ([]time.Time, bool, error) {
	return nil, false, nil
}

func (NopCache) Set(context.Context, Key, []time.Time, []domain.EmployeeDate) error {
	return nil
}

func (NopCache) Invalidate(context.Context, ...domain.EmployeeDate) error {
	return nil
}

func (NopCache) InvalidateSalon(context.Context, int64) error {
	return nil
}
