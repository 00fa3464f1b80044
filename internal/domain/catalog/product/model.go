// Package product provides the Product catalog.
// Products are the sellable and stockable items of a tenant; every
// inventory movement and sale line references one.
package product

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
)

// ProductType classifies how an item participates in stock and sales.
type ProductType string

const (
	TypeFinishedGood ProductType = "FINISHED_GOOD" // Sellable, stock-tracked
	TypeRawMaterial  ProductType = "RAW_MATERIAL"  // Consumed in production
	TypeComponent    ProductType = "COMPONENT"     // Assembled into finished goods
	TypeService      ProductType = "SERVICE"       // No physical stock
)

// Product represents a sellable or stockable catalog item.
type Product struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"tenant_id"`

	Name     string      `db:"name" json:"name"`
	SKU      *string     `db:"sku" json:"sku,omitempty"`
	Barcode  *string     `db:"barcode" json:"barcode,omitempty"`
	Category *string     `db:"category" json:"category,omitempty"`
	Type     ProductType `db:"product_type" json:"product_type"`

	// PriceCents is the selling price in minor currency units.
	// Money is kept as integer cents end to end, never floats.
	PriceCents int64 `db:"price_cents" json:"price_cents"`

	// CostCents is the acquisition/production cost in minor units.
	CostCents int64 `db:"cost_cents" json:"cost_cents"`

	// TaxRate is the fractional sales tax rate, e.g. 0.11 for 11% PPN.
	TaxRate decimal.Decimal `db:"tax_rate" json:"tax_rate"`

	// StockQuantity is the current on-hand quantity. It starts at zero
	// and is only ever written through the inventory adjustment path,
	// which also records the matching ledger entry.
	StockQuantity int64 `db:"stock_quantity" json:"stock_quantity"`

	// MinStockThreshold is the low-stock alert threshold.
	MinStockThreshold int64 `db:"min_stock_threshold" json:"min_stock_threshold"`

	// MaxStockThreshold caps restock suggestions. Zero means no cap.
	MaxStockThreshold int64 `db:"max_stock_threshold" json:"max_stock_threshold"`

	// SupplierID references the preferred supplier, if any.
	SupplierID *id.ID `db:"supplier_id" json:"supplier_id,omitempty"`

	// Unit is the unit of measure label (pcs, kg, box).
	Unit string `db:"unit" json:"unit"`

	IsActive bool `db:"is_active" json:"is_active"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// NewProduct creates a Product with required fields and defaults.
func NewProduct(tenantID id.ID, name string, priceCents int64) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:         id.New(),
		TenantID:   tenantID,
		Name:       name,
		Type:       TypeFinishedGood,
		PriceCents: priceCents,
		Unit:       "pcs",
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// InferType derives the product type from a free-form category label.
// Matching is case-insensitive on substrings so that "Raw Coffee Beans"
// or "bahan baku / ingredient" classify as raw material.
func InferType(category string) ProductType {
	upper := strings.ToUpper(category)
	switch {
	case strings.Contains(upper, "RAW"), strings.Contains(upper, "INGREDIENT"):
		return TypeRawMaterial
	case strings.Contains(upper, "COMPONENT"):
		return TypeComponent
	case strings.Contains(upper, "SERVICE"):
		return TypeService
	default:
		return TypeFinishedGood
	}
}

// IsStockTracked reports whether stock movements apply to this product.
func (p *Product) IsStockTracked() bool {
	return p.Type != TypeService
}

// IsLowStock reports whether on-hand quantity has fallen below the
// configured minimum threshold.
func (p *Product) IsLowStock() bool {
	return p.MinStockThreshold > 0 && p.StockQuantity < p.MinStockThreshold
}

// Validate checks the product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "name")
	}

	if !isValidType(p.Type) {
		return apperror.NewValidation("invalid product type").
			WithDetail("field", "product_type").
			WithDetail("value", string(p.Type))
	}

	if p.PriceCents < 0 {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price_cents")
	}

	if p.CostCents < 0 {
		return apperror.NewValidation("cost cannot be negative").
			WithDetail("field", "cost_cents")
	}

	if p.TaxRate.IsNegative() {
		return apperror.NewValidation("tax rate cannot be negative").
			WithDetail("field", "tax_rate")
	}

	if p.StockQuantity < 0 {
		return apperror.NewValidation("stock quantity cannot be negative").
			WithDetail("field", "stock_quantity")
	}

	if p.MinStockThreshold < 0 {
		return apperror.NewValidation("minimum stock threshold cannot be negative").
			WithDetail("field", "min_stock_threshold")
	}

	if p.MaxStockThreshold < 0 {
		return apperror.NewValidation("maximum stock threshold cannot be negative").
			WithDetail("field", "max_stock_threshold")
	}

	return nil
}

func isValidType(t ProductType) bool {
	switch t {
	case TypeFinishedGood, TypeRawMaterial, TypeComponent, TypeService:
		return true
	}
	return false
}
