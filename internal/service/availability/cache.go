package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	slotsCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

type noopMetrics struct{}

func (noopMetrics) IncSlotsCache(string)        {}
func (noopMetrics) IncSlotsInvalidation(string) {}

func (s *Service) cacheKey(q *slotQuery, date time.Time) slotsCache.Key {
	key := slotsCache.Key{
		SalonID:   q.salonID,
		ServiceID: q.service.ID,
		Date:      date.Format(domain.DateFormat),
	}
	if q.employee != nil {
		id := q.employee.ID
		key.EmployeeID = &id
	}
	return key
}

// cachedSlots читает кэш; ошибка кэша равнозначна промаху
func (s *Service) cachedSlots(ctx context.Context, key slotsCache.Key) ([]time.Time, bool) {
	slots, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.IncSlotsCache(metrics.CacheError)
		s.logger.Warn("cache: failed to read %s: %v", key, err)
		return nil, false
	case !ok:
		s.metrics.IncSlotsCache(metrics.CacheMiss)
		return nil, false
	default:
		s.metrics.IncSlotsCache(metrics.CacheHit)
		return slots, true
	}
}

// storeSlots сохраняет список, если с начала его вычисления не было инвалидаций.
// Иначе список мог быть прочитан до зафиксированной записи и пережил бы её вытеснение.
func (s *Service) storeSlots(ctx context.Context, key slotsCache.Key, slots []time.Time, deps []domain.EmployeeDate, generation uint64) {
	s.invalidationMu.RLock()
	defer s.invalidationMu.RUnlock()

	if s.invalidations != generation {
		s.logger.Info("cache: skip storing %s, invalidated during computation", key)
		return
	}
	if err := s.cache.Set(ctx, key, slots, deps); err != nil {
		s.logger.Warn("cache: failed to store %s: %v", key, err)
	}
}

func (s *Service) invalidationGeneration() uint64 {
	s.invalidationMu.RLock()
	defer s.invalidationMu.RUnlock()
	return s.invalidations
}

// nextInvalidation отмечает инвалидацию до удаления ключей: сохранение, начатое раньше,
// либо уже завершилось и будет удалено, либо увидит новое поколение
func (s *Service) nextInvalidation() {
	s.invalidationMu.Lock()
	s.invalidations++
	s.invalidationMu.Unlock()
}

// InvalidateBookings вытесняет из кэша записи по парам (сотрудник, дата), которые занимают бронирования.
// Ошибки логируются и не возвращаются: запись в журнал уже зафиксирована.
func (s *Service) InvalidateBookings(ctx context.Context, bookings ...*domain.Booking) {
	seen := make(map[domain.EmployeeDate]struct{})
	pairs := make([]domain.EmployeeDate, 0, len(bookings))

	for _, b := range bookings {
		if b == nil {
			continue
		}
		for _, pair := range b.AffectedDates(s.locationFor(ctx, b.SalonID)) {
			if _, ok := seen[pair]; ok {
				continue
			}
			seen[pair] = struct{}{}
			pairs = append(pairs, pair)
		}
	}
	if len(pairs) == 0 {
		return
	}

	s.nextInvalidation()
	if err := s.cache.Invalidate(ctx, pairs...); err != nil {
		s.metrics.IncSlotsInvalidation(metrics.InvalidationError)
		s.logger.Error("cache: failed to invalidate %v: %v", pairs, err)
		return
	}
	s.metrics.IncSlotsInvalidation(metrics.InvalidationOK)
}

// locationFor таймзона салона; при ошибке UTC, чтобы инвалидация всё равно прошла
func (s *Service) locationFor(ctx context.Context, salonID int64) *time.Location {
	settings, err := s.settings.Resolve(ctx, salonID)
	if err != nil {
		s.logger.Warn("cache: failed to resolve settings for salon=%d, using UTC: %v", salonID, err)
		return time.UTC
	}
	loc, err := settings.Location()
	if err != nil {
		s.logger.Warn("cache: salon=%d has invalid timezone %q, using UTC", salonID, settings.Timezone)
		return time.UTC
	}
	return loc
}
