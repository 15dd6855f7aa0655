// Package cache provides a Redis-backed read-through cache sitting in front
// of the Plan Store, using the same
// namespaced-key convention (internal/orbit/api/storage.go), applied here to
// plan reads instead of per-orbit user storage.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

// DefaultTTL bounds how long a cached plan survives
// without an invalidating write; short enough that a crashed invalidation
// self-heals quickly.
const DefaultTTL = 5 * time.Minute

// PlanCache wraps a pdomain.PlanRepository with a Redis read-through cache
// for GetLatestPlan, invalidated on every write path.
type PlanCache struct {
	client *redis.Client
	next   pdomain.PlanRepository
	ttl    time.Duration
}

// NewPlanCache builds a cache in front of next. client may be nil, in which
// case the cache degrades to a pass-through (matching the
// in-memory-fallback posture when Redis is unavailable in development).
func NewPlanCache(client *redis.Client, next pdomain.PlanRepository) *PlanCache {
	return &PlanCache{client: client, next: next, ttl: DefaultTTL}
}

func namespaceKey(owner uuid.UUID) string {
	return fmt.Sprintf("studyflow:plan:latest:%s", owner)
}

func (c *PlanCache) GetLatestPlan(ctx context.Context, owner uuid.UUID) (*pdomain.PlanRecord, error) {
	if c.client == nil {
		return c.next.GetLatestPlan(ctx, owner)
	}

	key := namespaceKey(owner)
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var plan pdomain.PlanRecord
		if jsonErr := json.Unmarshal(raw, &plan); jsonErr == nil {
			return &plan, nil
		}
	}

	plan, err := c.next.GetLatestPlan(ctx, owner)
	if err != nil || plan == nil {
		return plan, err
	}

	if encoded, marshalErr := json.Marshal(plan); marshalErr == nil {
		_ = c.client.Set(ctx, key, encoded, c.ttl).Err()
	}
	return plan, nil
}

func (c *PlanCache) ListPlans(ctx context.Context, owner uuid.UUID) ([]*pdomain.PlanRecord, error) {
	return c.next.ListPlans(ctx, owner)
}

func (c *PlanCache) SavePlan(ctx context.Context, owner uuid.UUID, plan *pdomain.PlanRecord) error {
	if err := c.next.SavePlan(ctx, owner, plan); err != nil {
		return err
	}
	c.invalidate(ctx, owner)
	return nil
}

func (c *PlanCache) UpdateSessionStatus(ctx context.Context, owner, sessionID uuid.UUID, status pdomain.SessionStatus) (int, error) {
	version, err := c.next.UpdateSessionStatus(ctx, owner, sessionID, status)
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx, owner)
	return version, nil
}

func (c *PlanCache) RemoveTaskFromPlans(ctx context.Context, owner, taskID uuid.UUID) error {
	if err := c.next.RemoveTaskFromPlans(ctx, owner, taskID); err != nil {
		return err
	}
	c.invalidate(ctx, owner)
	return nil
}

func (c *PlanCache) RemoveHabitFromPlans(ctx context.Context, owner, habitID uuid.UUID) error {
	if err := c.next.RemoveHabitFromPlans(ctx, owner, habitID); err != nil {
		return err
	}
	c.invalidate(ctx, owner)
	return nil
}

func (c *PlanCache) invalidate(ctx context.Context, owner uuid.UUID) {
	if c.client == nil {
		return
	}
	_ = c.client.Del(ctx, namespaceKey(owner)).Err()
}

var _ pdomain.PlanRepository = (*PlanCache)(nil)
