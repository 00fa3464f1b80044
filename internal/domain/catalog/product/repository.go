package product

import (
	"context"

	"tokopos/internal/core/id"
	"tokopos/internal/domain"
)

// Repository defines the interface for Product persistence.
// All operations are scoped to a tenant.
type Repository interface {
	// Create inserts a new product.
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product by ID within the tenant.
	GetByID(ctx context.Context, tenantID, productID id.ID) (*Product, error)

	// GetForUpdate retrieves a product with a row lock. Must be called
	// inside a transaction; concurrent adjustments to the same product
	// serialize on this lock.
	GetForUpdate(ctx context.Context, tenantID, productID id.ID) (*Product, error)

	// List retrieves products matching the filter.
	List(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*Product], error)

	// Update persists changes to an existing product.
	Update(ctx context.Context, p *Product) error

	// UpdateStock sets the on-hand quantity. Only the inventory
	// adjustment path calls this, inside the adjustment transaction.
	UpdateStock(ctx context.Context, tenantID, productID id.ID, quantity int64) error

	// SoftDelete marks a product deleted without removing its rows,
	// so historical movements and sale lines keep resolving.
	SoftDelete(ctx context.Context, tenantID, productID id.ID) error

	// FindBySKU retrieves a product by SKU within the tenant.
	FindBySKU(ctx context.Context, tenantID id.ID, sku string) (*Product, error)

	// FindByBarcode retrieves a product by barcode within the tenant.
	FindByBarcode(ctx context.Context, tenantID id.ID, barcode string) (*Product, error)

	// ListLowStock retrieves active products that have dropped below
	// their minimum stock threshold.
	ListLowStock(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*Product], error)
}
