package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
	"github.com/redis/go-redis/v9"
)

const (
	snapshotKeyPrefix = "moon:snapshot:" // moon:snapshot:{date}:{tz}:{lat}:{lng}
	defaultTTL        = 36 * time.Hour
)

// SnapshotCache stores computed reports in Redis. Reports are pure functions
// of their key, so entries never need invalidation, only expiry.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a SnapshotCache; ttl <= 0 selects the default.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SnapshotCache{client: client, ttl: ttl}
}

// Get returns the cached report or domain.ErrCacheMiss.
func (c *SnapshotCache) Get(ctx context.Context, date, tz string, lat, lng float64) (*domain.Report, error) {
	data, err := c.client.Get(ctx, c.key(date, tz, lat, lng)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &report, nil
}

// Put stores report under its date and location.
func (c *SnapshotCache) Put(ctx context.Context, report *domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := c.key(report.Date, report.Location.Timezone, report.Location.Latitude, report.Location.Longitude)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *SnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Coordinates are rounded to two decimals (about 1 km) so nearby observers
// share an entry; the model ignores position for the moon anyway.
func (c *SnapshotCache) key(date, tz string, lat, lng float64) string {
	return fmt.Sprintf("%s%s:%s:%.2f:%.2f", snapshotKeyPrefix, date, tz, lat, lng)
}
