package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ihor-metko/courtbook/services/court-service/internal/pricing"
	"github.com/redis/go-redis/v9"
)

// TimelineCache memoizes resolved day timelines in Redis. Entries are
// versioned per court: invalidation bumps the court's version counter,
// so stale entries stop being addressed and age out via TTL instead of
// being enumerated and deleted.
type TimelineCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *TimelineCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TimelineCache{rdb: rdb, ttl: ttl}
}

func versionKey(courtID string) string {
	return "courtbook:tlver:" + courtID
}

func entryKey(courtID string, version int64, date string) string {
	return fmt.Sprintf("courtbook:tl:%s:%d:%s", courtID, version, date)
}

func (c *TimelineCache) version(ctx context.Context, courtID string) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey(courtID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

// Get returns the cached timeline for a court and date, or false on a
// miss. Redis errors count as misses; the caller recomputes.
func (c *TimelineCache) Get(ctx context.Context, courtID, date string) ([]pricing.Segment, bool) {
	ver, err := c.version(ctx, courtID)
	if err != nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, entryKey(courtID, ver, date)).Bytes()
	if err != nil {
		return nil, false
	}
	var segments []pricing.Segment
	if err := json.Unmarshal(raw, &segments); err != nil {
		return nil, false
	}
	return segments, true
}

// Set stores a resolved timeline under the court's current version.
// Best effort: a failed write just means the next request recomputes.
func (c *TimelineCache) Set(ctx context.Context, courtID, date string, segments []pricing.Segment) {
	ver, err := c.version(ctx, courtID)
	if err != nil {
		return
	}
	raw, err := json.Marshal(segments)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, entryKey(courtID, ver, date), raw, c.ttl).Err()
}

// Invalidate drops every cached date for the court by bumping its
// version counter.
func (c *TimelineCache) Invalidate(ctx context.Context, courtID string) error {
	return c.rdb.Incr(ctx, versionKey(courtID)).Err()
}
