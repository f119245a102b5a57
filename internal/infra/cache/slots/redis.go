package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// RedisCache кэш слотов в Redis.
// Рядом с каждым значением ведутся индексы (сотрудник, дата) -> ключи и салон -> ключи,
// чтобы инвалидировать только затронутые записи.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache создаёт кэш с заданным TTL записей
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get возвращает слоты и признак попадания
func (c *RedisCache) Get(ctx context.Context, key Key) ([]time.Time, bool, error) {
	data, err := c.client.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %s: %v", ErrCache, key, err)
	}

	var slots []time.Time
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrDecode, key, err)
	}

	return slots, true, nil
}

// Set сохраняет слоты и регистрирует ключ в индексах зависимостей
func (c *RedisCache) Set(ctx context.Context, key Key, slots []time.Time, deps []domain.EmployeeDate) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrCache, key, err)
	}

	k := key.String()
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, k, data, c.ttl)
	for _, dep := range deps {
		idx := indexKey(dep)
		pipe.SAdd(ctx, idx, k)
		pipe.Expire(ctx, idx, c.ttl)
	}
	salonIdx := salonIndexKey(key.SalonID)
	pipe.SAdd(ctx, salonIdx, k)
	pipe.Expire(ctx, salonIdx, c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCache, key, err)
	}
	return nil
}

// Invalidate удаляет записи, зависящие от переданных пар (сотрудник, дата)
func (c *RedisCache) Invalidate(ctx context.Context, pairs ...domain.EmployeeDate) error {
	var errs []error
	for _, pair := range pairs {
		if err := c.dropIndex(ctx, indexKey(pair)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InvalidateSalon удаляет все записи салона
func (c *RedisCache) InvalidateSalon(ctx context.Context, salonID int64) error {
	return c.dropIndex(ctx, salonIndexKey(salonID))
}

func (c *RedisCache) dropIndex(ctx context.Context, idx string) error {
	keys, err := c.client.SMembers(ctx, idx).Result()
	if err != nil {
		return fmt.Errorf("%w: read index %s: %v", ErrCache, idx, err)
	}

	if err := c.client.Del(ctx, append(keys, idx)...).Err(); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrCache, idx, err)
	}
	return nil
}
