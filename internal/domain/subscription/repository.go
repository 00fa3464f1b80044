package subscription

import (
	"context"
	"time"

	"tokopos/internal/core/id"
)

// Repository defines the interface for subscription persistence.
type Repository interface {
	// GetPlanByID retrieves a plan definition.
	GetPlanByID(ctx context.Context, planID id.ID) (*Plan, error)

	// GetActiveForTenant retrieves the tenant's current subscription,
	// or NotFound when the tenant never subscribed.
	GetActiveForTenant(ctx context.Context, tenantID id.ID) (*TenantSubscription, error)
}

// Cache is a read-through cache for resolved entitlements. Implemented
// over Redis; a nil Cache disables caching.
type Cache interface {
	// GetPlan returns the cached plan for a tenant, or nil on miss.
	GetPlan(ctx context.Context, tenantID id.ID) (*Plan, error)

	// SetPlan stores the resolved plan with a TTL.
	SetPlan(ctx context.Context, tenantID id.ID, plan *Plan, ttl time.Duration) error

	// Invalidate drops the cached plan for a tenant.
	Invalidate(ctx context.Context, tenantID id.ID) error
}
