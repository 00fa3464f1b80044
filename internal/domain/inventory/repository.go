package inventory

import (
	"context"
	"time"

	"tokopos/internal/core/id"
	"tokopos/internal/domain"
)

// MovementFilter narrows the movement listing. All set fields combine
// with AND.
type MovementFilter struct {
	ProductID *id.ID
	Reason    *Reason
	DateFrom  *time.Time
	DateTo    *time.Time

	domain.ListFilter
}

// Repository defines the interface for Movement persistence. Movements
// are append-only; there are no update or delete operations.
type Repository interface {
	// Create inserts a new ledger entry.
	Create(ctx context.Context, m *Movement) error

	// List retrieves ledger entries joined with product display fields,
	// newest first. The total count is computed under the same filter.
	List(ctx context.Context, tenantID id.ID, filter MovementFilter) (domain.ListResult[*MovementWithProduct], error)

	// SumForProduct returns the sum of qty_change over all entries of
	// one product. Used by reconciliation to verify the ledger against
	// the product's materialized stock_quantity.
	SumForProduct(ctx context.Context, tenantID, productID id.ID) (int64, error)
}
