// Package store provides the Store catalog. A store is a tenant's
// physical or virtual outlet; sales are recorded against one.
package store

import (
	"context"
	"time"

	"tokopos/internal/core/id"
)

// Store represents a tenant outlet.
type Store struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"tenant_id"`

	Name    string  `db:"name" json:"name"`
	Address *string `db:"address" json:"address,omitempty"`
	Phone   *string `db:"phone" json:"phone,omitempty"`

	// IsDefault marks the outlet used when a sale does not name one.
	// Exactly one store per tenant carries this flag.
	IsDefault bool `db:"is_default" json:"is_default"`
	IsActive  bool `db:"is_active" json:"is_active"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Repository defines the interface for Store persistence.
type Repository interface {
	// GetByID retrieves a store by ID within the tenant.
	GetByID(ctx context.Context, tenantID, storeID id.ID) (*Store, error)

	// GetDefaultForTenant retrieves the tenant's default store.
	GetDefaultForTenant(ctx context.Context, tenantID id.ID) (*Store, error)

	// List retrieves all active stores of the tenant.
	List(ctx context.Context, tenantID id.ID) ([]*Store, error)
}
