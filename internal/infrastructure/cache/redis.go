// Package cache provides Redis-backed caches for hot read paths.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tokopos/internal/core/id"
	"tokopos/internal/domain/subscription"
)

const planKeyPrefix = "tokopos:plan:"

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// PlanCache caches resolved subscription plans per tenant.
// Implements subscription.Cache.
type PlanCache struct {
	client *redis.Client
}

// NewPlanCache creates a plan cache over an existing client.
func NewPlanCache(client *redis.Client) *PlanCache {
	return &PlanCache{client: client}
}

func planKey(tenantID id.ID) string {
	return planKeyPrefix + tenantID.String()
}

// GetPlan returns the cached plan, or nil on miss.
func (c *PlanCache) GetPlan(ctx context.Context, tenantID id.ID) (*subscription.Plan, error) {
	data, err := c.client.Get(ctx, planKey(tenantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached plan: %w", err)
	}

	var plan subscription.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decode cached plan: %w", err)
	}
	return &plan, nil
}

// SetPlan stores the resolved plan with a TTL.
func (c *PlanCache) SetPlan(ctx context.Context, tenantID id.ID, plan *subscription.Plan, ttl time.Duration) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	if err := c.client.Set(ctx, planKey(tenantID), data, ttl).Err(); err != nil {
		return fmt.Errorf("set cached plan: %w", err)
	}
	return nil
}

// Invalidate drops the cached plan for a tenant.
func (c *PlanCache) Invalidate(ctx context.Context, tenantID id.ID) error {
	if err := c.client.Del(ctx, planKey(tenantID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached plan: %w", err)
	}
	return nil
}
