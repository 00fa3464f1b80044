package product

import (
	"context"

	"github.com/shopspring/decimal"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/core/tx"
	"tokopos/internal/domain"
	"tokopos/pkg/logger"
)

// Service provides business logic for the Product catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// CreateInput carries the fields accepted when creating a product.
// There is no stock field; every product starts at zero and stock
// only moves through inventory adjustments, so the on-hand quantity
// always reconciles with the movement ledger.
type CreateInput struct {
	Name              string
	SKU               *string
	Barcode           *string
	Category          *string
	Type              *ProductType
	PriceCents        int64
	CostCents         int64
	TaxRate           decimal.Decimal
	MinStockThreshold int64
	MaxStockThreshold int64
	SupplierID        *id.ID
	Unit              string
}

// Create validates and persists a new product. When the type is not
// given explicitly it is inferred from the category label.
func (s *Service) Create(ctx context.Context, tenantID id.ID, input CreateInput) (*Product, error) {
	p := NewProduct(tenantID, input.Name, input.PriceCents)
	p.SKU = input.SKU
	p.Barcode = input.Barcode
	p.Category = input.Category
	p.CostCents = input.CostCents
	p.TaxRate = input.TaxRate
	p.MinStockThreshold = input.MinStockThreshold
	p.MaxStockThreshold = input.MaxStockThreshold
	p.SupplierID = input.SupplierID
	if input.Unit != "" {
		p.Unit = input.Unit
	}

	if input.Type != nil {
		p.Type = *input.Type
	} else if input.Category != nil {
		p.Type = InferType(*input.Category)
	}

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkUnique(ctx, p, id.Nil()); err != nil {
			return err
		}
		return s.repo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "product created",
		"product_id", p.ID,
		"name", p.Name,
		"product_type", p.Type,
	)

	return p, nil
}

// GetByID retrieves a product by ID.
func (s *Service) GetByID(ctx context.Context, tenantID, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, tenantID, productID)
}

// List retrieves products matching the filter.
func (s *Service) List(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	filter.Normalize()
	return s.repo.List(ctx, tenantID, filter)
}

// UpdateInput carries the mutable fields of a product. Nil fields are
// left unchanged. Stock quantity is deliberately absent; it only moves
// through inventory adjustments.
type UpdateInput struct {
	Name              *string
	SKU               *string
	Barcode           *string
	Category          *string
	Type              *ProductType
	PriceCents        *int64
	CostCents         *int64
	TaxRate           *decimal.Decimal
	MinStockThreshold *int64
	MaxStockThreshold *int64
	SupplierID        *id.ID
	Unit              *string
	IsActive          *bool
}

// Update applies partial changes to an existing product.
func (s *Service) Update(ctx context.Context, tenantID, productID id.ID, input UpdateInput) (*Product, error) {
	var updated *Product

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, tenantID, productID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			p.Name = *input.Name
		}
		if input.SKU != nil {
			p.SKU = input.SKU
		}
		if input.Barcode != nil {
			p.Barcode = input.Barcode
		}
		if input.Category != nil {
			p.Category = input.Category
		}
		if input.Type != nil {
			p.Type = *input.Type
		}
		if input.PriceCents != nil {
			p.PriceCents = *input.PriceCents
		}
		if input.CostCents != nil {
			p.CostCents = *input.CostCents
		}
		if input.TaxRate != nil {
			p.TaxRate = *input.TaxRate
		}
		if input.MinStockThreshold != nil {
			p.MinStockThreshold = *input.MinStockThreshold
		}
		if input.MaxStockThreshold != nil {
			p.MaxStockThreshold = *input.MaxStockThreshold
		}
		if input.SupplierID != nil {
			p.SupplierID = input.SupplierID
		}
		if input.Unit != nil {
			p.Unit = *input.Unit
		}
		if input.IsActive != nil {
			p.IsActive = *input.IsActive
		}

		if err := p.Validate(ctx); err != nil {
			return err
		}

		if err := s.checkUnique(ctx, p, p.ID); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete soft-deletes a product.
func (s *Service) Delete(ctx context.Context, tenantID, productID id.ID) error {
	if _, err := s.repo.GetByID(ctx, tenantID, productID); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, tenantID, productID)
}

// FindBySKU retrieves a product by SKU.
func (s *Service) FindBySKU(ctx context.Context, tenantID id.ID, sku string) (*Product, error) {
	return s.repo.FindBySKU(ctx, tenantID, sku)
}

// FindByBarcode retrieves a product by barcode.
func (s *Service) FindByBarcode(ctx context.Context, tenantID id.ID, barcode string) (*Product, error) {
	return s.repo.FindByBarcode(ctx, tenantID, barcode)
}

// ListLowStock retrieves products that have dropped below their
// minimum stock threshold.
func (s *Service) ListLowStock(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	filter.Normalize()
	return s.repo.ListLowStock(ctx, tenantID, filter)
}

// checkUnique rejects a product whose SKU or barcode collides with
// another product of the same tenant.
func (s *Service) checkUnique(ctx context.Context, p *Product, excludeID id.ID) error {
	if p.SKU != nil && *p.SKU != "" {
		existing, err := s.repo.FindBySKU(ctx, p.TenantID, *p.SKU)
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return apperror.NewDuplicate("product", "sku", *p.SKU)
		}
	}

	if p.Barcode != nil && *p.Barcode != "" {
		existing, err := s.repo.FindByBarcode(ctx, p.TenantID, *p.Barcode)
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return apperror.NewDuplicate("product", "barcode", *p.Barcode)
		}
	}

	return nil
}
