package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Collection keys. The per-entity key formats below are part of the
// external contract and must not change.
const (
	AllToursKey    = "all_tours"
	AllBookingsKey = "all_bookings"
)

// TourKey returns the cache key for a single tour.
func TourKey(id uuid.UUID) string {
	return "tour_" + id.String()
}

// BookingKey returns the cache key for a single booking.
func BookingKey(id uuid.UUID) string {
	return "booking_" + id.String()
}

// Cache wraps a Redis client and stores JSON snapshots of entities with a
// fixed TTL. It is a read-through cache: callers populate it on read miss
// and invalidate by deleting keys after committed writes, never by
// updating entries in place.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New constructs a Cache with the given entry TTL.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Connect parses redisURL, creates the client backing the snapshot
// store, and verifies connectivity with a ping.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

// Get retrieves and unmarshals the snapshot stored under key.
// Returns nil, nil on a cache miss (not an error).
func Get[T any](ctx context.Context, c *Cache, key string) (*T, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal([]byte(val), &v); err != nil {
		return nil, fmt.Errorf("unmarshaling cached %s: %w", key, err)
	}

	return &v, nil
}

// Set stores a JSON snapshot of v under key with the configured TTL.
func Set[T any](ctx context.Context, c *Cache, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling for cache key %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

// Invalidate deletes the given keys. Deleting absent keys is a no-op,
// so concurrent invalidations of the same key are idempotent.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate %v: %w", keys, err)
	}
	return nil
}
