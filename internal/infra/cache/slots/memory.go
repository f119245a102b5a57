package slots

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type memoryEntry struct {
	slots     []time.Time
	expiresAt time.Time
	deps      []domain.EmployeeDate
	salonID   int64
}

// MemoryCache кэш слотов в памяти процесса (один инстанс, тесты)
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
	index   map[domain.EmployeeDate]map[string]struct{}
}

// NewMemoryCache создаёт кэш с заданным TTL записей
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
		index:   make(map[domain.EmployeeDate]map[string]struct{}),
	}
}

func (c *MemoryCache) Get(_ context.Context, key Key) ([]time.Time, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key.String()]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		if current, still := c.entries[key.String()]; still && !c.now().Before(current.expiresAt) {
			c.removeLocked(key.String())
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	out := make([]time.Time, len(entry.slots))
	copy(out, entry.slots)
	return out, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key Key, slots []time.Time, deps []domain.EmployeeDate) error {
	k := key.String()
	stored := make([]time.Time, len(slots))
	copy(stored, slots)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(k)
	c.entries[k] = memoryEntry{
		slots:     stored,
		expiresAt: c.now().Add(c.ttl),
		deps:      deps,
		salonID:   key.SalonID,
	}
	for _, dep := range deps {
		if c.index[dep] == nil {
			c.index[dep] = make(map[string]struct{})
		}
		c.index[dep][k] = struct{}{}
	}
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context, pairs ...domain.EmployeeDate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, pair := range pairs {
		for k := range c.index[pair] {
			c.removeLocked(k)
		}
		delete(c.index, pair)
	}
	return nil
}

func (c *MemoryCache) InvalidateSalon(_ context.Context, salonID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, entry := range c.entries {
		if entry.salonID == salonID {
			c.removeLocked(k)
		}
	}
	return nil
}

// removeLocked удаляет запись и её ссылки из индекса; вызывается под c.mu
func (c *MemoryCache) removeLocked(k string) {
	entry, ok := c.entries[k]
	if !ok {
		return
	}
	delete(c.entries, k)
	for _, dep := range entry.deps {
		delete(c.index[dep], k)
		if len(c.index[dep]) == 0 {
			delete(c.index, dep)
		}
	}
}
