package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

func TestMemoryCache_SetGetExpire(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(time.Minute)
	cache.now = func() time.Time { return now }
	ctx := context.Background()
	key := Key{SalonID: 1, ServiceID: 2, Date: "2025-03-03"}

	require.NoError(t, cache.Set(ctx, key, sampleSlots(), nil))

	got, hit, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, sampleSlots(), got)

	now = now.Add(2 * time.Minute)
	_, hit, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, cache.entries)
}

func TestMemoryCache_ReturnsCopy(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()
	key := Key{SalonID: 1, ServiceID: 2, Date: "2025-03-03"}
	require.NoError(t, cache.Set(ctx, key, sampleSlots(), nil))

	got, _, _ := cache.Get(ctx, key)
	got[0] = time.Time{}

	again, _, _ := cache.Get(ctx, key)
	assert.Equal(t, sampleSlots()[0], again[0])
}

func TestMemoryCache_Invalidate(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	e7 := Key{SalonID: 1, ServiceID: 2, EmployeeID: ptr.Ptr(int64(7)), Date: "2025-03-03"}
	e8 := Key{SalonID: 1, ServiceID: 2, EmployeeID: ptr.Ptr(int64(8)), Date: "2025-03-03"}
	anyKey := Key{SalonID: 1, ServiceID: 2, Date: "2025-03-03"}
	pair7 := domain.EmployeeDate{EmployeeID: 7, Date: "2025-03-03"}
	pair8 := domain.EmployeeDate{EmployeeID: 8, Date: "2025-03-03"}

	require.NoError(t, cache.Set(ctx, e7, sampleSlots(), []domain.EmployeeDate{pair7}))
	require.NoError(t, cache.Set(ctx, e8, sampleSlots(), []domain.EmployeeDate{pair8}))
	require.NoError(t, cache.Set(ctx, anyKey, sampleSlots(), []domain.EmployeeDate{pair7, pair8}))

	require.NoError(t, cache.Invalidate(ctx, pair7))

	_, hit, _ := cache.Get(ctx, e7)
	assert.False(t, hit)
	_, hit, _ = cache.Get(ctx, anyKey)
	assert.False(t, hit)
	_, hit, _ = cache.Get(ctx, e8)
	assert.True(t, hit)

	// e8 остаётся в индексе своей пары, any - удалён из него
	assert.Len(t, cache.index[pair8], 1)
}

func TestMemoryCache_InvalidateSalon(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, Key{SalonID: 1, ServiceID: 2, Date: "2025-03-03"}, sampleSlots(), nil))
	require.NoError(t, cache.Set(ctx, Key{SalonID: 2, ServiceID: 2, Date: "2025-03-03"}, sampleSlots(), nil))

	require.NoError(t, cache.InvalidateSalon(ctx, 1))

	_, hit, _ := cache.Get(ctx, Key{SalonID: 1, ServiceID: 2, Date: "2025-03-03"})
	assert.False(t, hit)
	_, hit, _ = cache.Get(ctx, Key{SalonID: 2, ServiceID: 2, Date: "2025-03-03"})
	assert.True(t, hit)
}

func TestNopCache_AlwaysMisses(t *testing.T) {
	ctx := context.Background()
	key := Key{SalonID: 1, ServiceID: 2, Date: "2025-03-03"}
	var cache NopCache

	require.NoError(t, cache.Set(ctx, key, sampleSlots(), nil))
	_, hit, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, cache.Invalidate(ctx, domain.EmployeeDate{EmployeeID: 1, Date: "2025-03-03"}))
	assert.NoError(t, cache.InvalidateSalon(ctx, 1))
}
