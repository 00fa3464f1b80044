// Package subscription provides tenant subscription plans and the
// entitlement checks derived from them.
package subscription

import (
	"time"

	"tokopos/internal/core/id"
)

// PlanCode identifies a subscription tier.
type PlanCode string

const (
	PlanFree       PlanCode = "FREE"
	PlanPro        PlanCode = "PRO"
	PlanEnterprise PlanCode = "ENTERPRISE"
)

// Plan describes what a subscription tier allows.
type Plan struct {
	ID   id.ID    `db:"id" json:"id"`
	Code PlanCode `db:"code" json:"code"`
	Name string   `db:"name" json:"name"`

	// AllowedPaymentMethods lists the settlement methods the tier may
	// record. The free tier is cash only.
	AllowedPaymentMethods []string `db:"allowed_payment_methods" json:"allowed_payment_methods"`

	MaxProducts       int   `db:"max_products" json:"max_products"`
	MaxStores         int   `db:"max_stores" json:"max_stores"`
	PriceCentsMonthly int64 `db:"price_cents_monthly" json:"price_cents_monthly"`
}

// SubscriptionStatus tracks a tenant's subscription lifecycle.
type SubscriptionStatus string

const (
	SubStatusActive    SubscriptionStatus = "ACTIVE"
	SubStatusExpired   SubscriptionStatus = "EXPIRED"
	SubStatusCancelled SubscriptionStatus = "CANCELLED"
)

// TenantSubscription binds a tenant to a plan.
type TenantSubscription struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"tenant_id"`
	PlanID   id.ID `db:"plan_id" json:"plan_id"`

	Status    SubscriptionStatus `db:"status" json:"status"`
	StartedAt time.Time          `db:"started_at" json:"started_at"`
	ExpiresAt *time.Time         `db:"expires_at" json:"expires_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the subscription currently grants its plan.
func (s *TenantSubscription) IsActive(now time.Time) bool {
	if s.Status != SubStatusActive {
		return false
	}
	if s.ExpiresAt != nil && now.After(*s.ExpiresAt) {
		return false
	}
	return true
}

// FreePlan is the fallback entitlement set for tenants without an
// active subscription.
func FreePlan() *Plan {
	return &Plan{
		Code:                  PlanFree,
		Name:                  "Free",
		AllowedPaymentMethods: []string{"CASH"},
		MaxProducts:           50,
		MaxStores:             1,
	}
}
