package sales

import (
	"context"

	"tokopos/internal/core/id"
)

// SaleFilter narrows the sale listing. Terminal clients paginate with
// a raw limit/offset, so the offset is carried as given rather than
// floored to a page boundary.
type SaleFilter struct {
	StoreID *id.ID

	Limit  int
	Offset int
}

// Normalize clamps pagination to sane bounds.
func (f *SaleFilter) Normalize() {
	if f.Limit < 1 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// SaleList is one window of sale headers with offset pagination.
type SaleList struct {
	Items  []*Sale
	Limit  int
	Offset int
	Total  int64
}

// Repository defines the interface for Sale persistence.
type Repository interface {
	// CreateSale inserts the sale header.
	CreateSale(ctx context.Context, sale *Sale) error

	// CreateItems bulk-inserts the sale lines. Must run inside the
	// sale's transaction.
	CreateItems(ctx context.Context, items []*SaleItem) error

	// CreatePayment inserts a payment row.
	CreatePayment(ctx context.Context, payment *Payment) error

	// GetByID retrieves a sale with its items.
	GetByID(ctx context.Context, tenantID, saleID id.ID) (*Sale, error)

	// List retrieves sale headers newest first.
	List(ctx context.Context, tenantID id.ID, filter SaleFilter) (SaleList, error)

	// GetPayment retrieves the payment row of a sale, if any.
	GetPayment(ctx context.Context, tenantID, saleID id.ID) (*Payment, error)
}
