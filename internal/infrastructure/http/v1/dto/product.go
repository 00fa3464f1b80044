package dto

import (
	"github.com/shopspring/decimal"

	"tokopos/internal/core/id"
	"tokopos/internal/domain"
	"tokopos/internal/domain/catalog/product"
)

// --- Request DTOs ---

// CreateProductRequest is the body of POST /products. It carries no
// stock field; products start at zero stock and receive quantity
// through inventory adjustments.
type CreateProductRequest struct {
	Name              string          `json:"name" binding:"required"`
	SKU               *string         `json:"sku,omitempty"`
	Barcode           *string         `json:"barcode,omitempty"`
	Category          *string         `json:"category,omitempty"`
	ProductType       *string         `json:"product_type,omitempty"`
	PriceCents        int64           `json:"price_cents"`
	CostCents         int64           `json:"cost_cents"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
	MinStockThreshold int64           `json:"min_stock_threshold"`
	MaxStockThreshold int64           `json:"max_stock_threshold"`
	SupplierID        *string         `json:"supplier_id,omitempty"`
	Unit              string          `json:"unit"`
}

// ToInput validates UUID fields and converts the request into a
// service input.
func (r *CreateProductRequest) ToInput() (product.CreateInput, error) {
	input := product.CreateInput{
		Name:              r.Name,
		SKU:               r.SKU,
		Barcode:           r.Barcode,
		Category:          r.Category,
		PriceCents:        r.PriceCents,
		CostCents:         r.CostCents,
		TaxRate:           r.TaxRate,
		MinStockThreshold: r.MinStockThreshold,
		MaxStockThreshold: r.MaxStockThreshold,
		Unit:              r.Unit,
	}
	if r.ProductType != nil {
		t := product.ProductType(*r.ProductType)
		input.Type = &t
	}
	if r.SupplierID != nil && *r.SupplierID != "" {
		supplierID, err := id.Parse(*r.SupplierID)
		if err != nil {
			return input, badUUID("supplier_id")
		}
		input.SupplierID = &supplierID
	}
	return input, nil
}

// UpdateProductRequest is the body of PUT /products/:id. Absent
// fields stay unchanged.
type UpdateProductRequest struct {
	Name              *string          `json:"name,omitempty"`
	SKU               *string          `json:"sku,omitempty"`
	Barcode           *string          `json:"barcode,omitempty"`
	Category          *string          `json:"category,omitempty"`
	ProductType       *string          `json:"product_type,omitempty"`
	PriceCents        *int64           `json:"price_cents,omitempty"`
	CostCents         *int64           `json:"cost_cents,omitempty"`
	TaxRate           *decimal.Decimal `json:"tax_rate,omitempty"`
	MinStockThreshold *int64           `json:"min_stock_threshold,omitempty"`
	MaxStockThreshold *int64           `json:"max_stock_threshold,omitempty"`
	SupplierID        *string          `json:"supplier_id,omitempty"`
	Unit              *string          `json:"unit,omitempty"`
	IsActive          *bool            `json:"is_active,omitempty"`
}

// ToInput validates UUID fields and converts the request into a
// service input.
func (r *UpdateProductRequest) ToInput() (product.UpdateInput, error) {
	input := product.UpdateInput{
		Name:              r.Name,
		SKU:               r.SKU,
		Barcode:           r.Barcode,
		Category:          r.Category,
		PriceCents:        r.PriceCents,
		CostCents:         r.CostCents,
		TaxRate:           r.TaxRate,
		MinStockThreshold: r.MinStockThreshold,
		MaxStockThreshold: r.MaxStockThreshold,
		Unit:              r.Unit,
		IsActive:          r.IsActive,
	}
	if r.ProductType != nil {
		t := product.ProductType(*r.ProductType)
		input.Type = &t
	}
	if r.SupplierID != nil && *r.SupplierID != "" {
		supplierID, err := id.Parse(*r.SupplierID)
		if err != nil {
			return input, badUUID("supplier_id")
		}
		input.SupplierID = &supplierID
	}
	return input, nil
}

// ProductListRequest binds the query of GET /products.
type ProductListRequest struct {
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
	Search  string `form:"search"`
	OrderBy string `form:"order_by"`
}

// ToFilter converts the query into a list filter.
func (r *ProductListRequest) ToFilter() domain.ListFilter {
	return domain.ListFilter{
		Page:    r.Page,
		Limit:   r.Limit,
		Search:  r.Search,
		OrderBy: r.OrderBy,
	}
}

// --- Response DTOs ---

// ProductListResponse is the body of GET /products.
type ProductListResponse struct {
	Products   []*product.Product `json:"products"`
	Pagination PaginationResponse `json:"pagination"`
}
