package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// HolidayCalendar отвечает, закрыт ли салон в дату, по активной политике праздников
type HolidayCalendar struct {
	policy   *domain.HolidayKind
	holidays []domain.Holiday
}

// NewHolidayCalendar создаёт календарь. nil политика - праздников нет.
func NewHolidayCalendar(policy *domain.HolidayKind, holidays []domain.Holiday) *HolidayCalendar {
	return &HolidayCalendar{policy: policy, holidays: holidays}
}

// IsClosed сравнивает месяц и день даты с праздниками активного вида
func (c *HolidayCalendar) IsClosed(date time.Time) domain.Closure {
	if c == nil || c.policy == nil {
		return domain.Closure{}
	}
	for i := range c.holidays {
		h := &c.holidays[i]
		if h.Kind == *c.policy && h.OccursOn(date) {
			return domain.Closure{Closed: true, Name: h.Name}
		}
	}
	return domain.Closure{}
}

// salonContext настройки салона, нужные для одного запроса
type salonContext struct {
	settings *domain.SalonSettings
	loc      *time.Location
	calendar *HolidayCalendar
}

// loadSalon читает настройки, таймзону и праздники активной политики
func (s *Service) loadSalon(ctx context.Context, salonID int64) (*salonContext, error) {
	settings, err := s.settings.Resolve(ctx, salonID)
	if err != nil {
		s.logger.Error("loadSalon: failed to resolve settings for salon=%d: %v", salonID, err)
		return nil, storageError("failed to resolve settings", err)
	}

	loc, err := settings.Location()
	if err != nil {
		s.logger.Error("loadSalon: salon=%d has invalid timezone %q: %v", salonID, settings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
	}

	calendar := NewHolidayCalendar(nil, nil)
	if settings.HolidayPolicy != nil {
		holidays, err := s.holidayRepo.ListBySalonAndKind(ctx, salonID, *settings.HolidayPolicy)
		if err != nil {
			s.logger.Error("loadSalon: failed to list holidays for salon=%d: %v", salonID, err)
			return nil, storageError("failed to list holidays", err)
		}
		calendar = NewHolidayCalendar(settings.HolidayPolicy, holidays)
	}

	return &salonContext{settings: settings, loc: loc, calendar: calendar}, nil
}
