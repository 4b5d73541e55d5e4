// Package cache is a Redis read-through cache for finalized lesson
// plans. Plans are immutable once generated, so the only invalidation is
// deletion. Every operation fails open: a cache outage degrades to
// database reads, never to request errors.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const planTTL = 24 * time.Hour

// PlanCache caches serialized lesson plans by owner and id.
type PlanCache struct {
	client *redis.Client
}

// New connects to Redis. A nil *PlanCache is a valid no-op cache, so
// callers can pass through a failed connection untouched.
func New(redisURL string) (*PlanCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &PlanCache{client: client}, nil
}

func planKey(userID string, planID int64) string {
	return fmt.Sprintf("lesson_plan:%s:%d", userID, planID)
}

// GetPlan returns the cached plan bytes, or (nil, false) on miss or any
// cache error.
func (c *PlanCache) GetPlan(ctx context.Context, userID string, planID int64) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, planKey(userID, planID)).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

// SetPlan stores the serialized plan. Errors are swallowed.
func (c *PlanCache) SetPlan(ctx context.Context, userID string, planID int64, raw []byte) {
	if c == nil {
		return
	}
	_ = c.client.Set(ctx, planKey(userID, planID), raw, planTTL).Err()
}

// DeletePlan drops the cached plan after the row is deleted.
func (c *PlanCache) DeletePlan(ctx context.Context, userID string, planID int64) {
	if c == nil {
		return
	}
	_ = c.client.Del(ctx, planKey(userID, planID)).Err()
}

// Close releases the underlying connection pool.
func (c *PlanCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
