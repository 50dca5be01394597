// Package trackingcache implements the tracking-number cache on Redis.
// It maps tracking numbers to parcel IDs so public tracking lookups skip
// the secondary-index scan on repeat requests.
package trackingcache

import (
	"context"
	"errors"
	"time"

	"donedelivery/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "tracking:"
	defaultTTL = 24 * time.Hour
)

// RedisTrackingCache implements TrackingCache using a Redis client.
// Entries expire after a TTL so the cache never outlives the parcel
// retention window by much.
type RedisTrackingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTrackingCache creates a tracking cache on the given Redis client.
// A non-positive ttl falls back to the default of 24 hours.
func NewRedisTrackingCache(client *redis.Client, ttl time.Duration) *RedisTrackingCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisTrackingCache{client: client, ttl: ttl}
}

// GetParcelID returns the cached parcel ID for a tracking number.
// A missing key is reported as absence, not as an error.
func (c *RedisTrackingCache) GetParcelID(
	ctx context.Context,
	trackingNumber kernel.TrackingNumber,
) (kernel.UUID, bool, error) {
	value, err := c.client.Get(ctx, keyPrefix+trackingNumber.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return kernel.UUID{}, false, nil
		}
		return kernel.UUID{}, false, err
	}

	id, err := kernel.UUIDFromString(value)
	if err != nil {
		// Unparseable entry: treat as a miss so the caller repopulates it.
		return kernel.UUID{}, false, nil
	}

	return id, true, nil
}

// SetParcelID records the parcel ID for a tracking number with the cache TTL.
func (c *RedisTrackingCache) SetParcelID(
	ctx context.Context,
	trackingNumber kernel.TrackingNumber,
	id kernel.UUID,
) error {
	return c.client.Set(ctx, keyPrefix+trackingNumber.String(), id.String(), c.ttl).Err()
}
