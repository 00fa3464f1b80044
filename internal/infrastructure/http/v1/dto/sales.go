package dto

import (
	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/domain/sales"
	"tokopos/pkg/money"
)

// --- Request DTOs ---

// SaleItemRequest is one line of a sale creation request.
type SaleItemRequest struct {
	ProductID      string `json:"product_id" binding:"required"`
	Qty            int64  `json:"qty" binding:"required"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	DiscountCents  int64  `json:"discount_cents"`
}

// CreateSaleRequest is the body of POST /sales. The route carries no
// bearer token; tenant and store identity travel in the body.
type CreateSaleRequest struct {
	TenantID      string            `json:"tenant_id" binding:"required"`
	StoreID       string            `json:"store_id" binding:"required"`
	CashierUserID string            `json:"cashier_user_id" binding:"required"`
	Items         []SaleItemRequest `json:"sale_items" binding:"required"`
	SubtotalCents *int64            `json:"subtotal_cents,omitempty"`
	DiscountCents int64             `json:"discount_cents"`
	TaxCents      int64             `json:"tax_cents"`
	TotalCents    *int64            `json:"total_cents,omitempty"`
	PaymentMethod *string           `json:"payment_method,omitempty"`
	Provider      *string           `json:"provider,omitempty"`
}

// ToInput validates UUID fields and converts the request. Field-level
// validation of quantities and amounts happens in the sales service.
func (r *CreateSaleRequest) ToInput() (id.ID, sales.CreateSaleInput, error) {
	var input sales.CreateSaleInput

	tenantID, err := id.Parse(r.TenantID)
	if err != nil {
		return id.Nil(), input, badUUID("tenant_id")
	}
	storeID, err := id.Parse(r.StoreID)
	if err != nil {
		return id.Nil(), input, badUUID("store_id")
	}
	cashierID, err := id.Parse(r.CashierUserID)
	if err != nil {
		return id.Nil(), input, badUUID("cashier_user_id")
	}

	input = sales.CreateSaleInput{
		StoreID:       storeID,
		CashierUserID: cashierID,
		SubtotalCents: r.SubtotalCents,
		DiscountCents: r.DiscountCents,
		TaxCents:      r.TaxCents,
		TotalCents:    r.TotalCents,
		Provider:      r.Provider,
	}

	for _, item := range r.Items {
		productID, err := id.Parse(item.ProductID)
		if err != nil {
			return id.Nil(), input, apperror.NewInvalidFormat("sale item product_id must be a valid UUID").
				WithMessageKey("sales.invalid_items").
				WithDetail("field", "sale_items.product_id")
		}
		input.Items = append(input.Items, sales.SaleItemInput{
			ProductID:      productID,
			Qty:            item.Qty,
			UnitPriceCents: item.UnitPriceCents,
			DiscountCents:  item.DiscountCents,
		})
	}

	if r.PaymentMethod != nil {
		method := sales.PaymentMethod(*r.PaymentMethod)
		input.PaymentMethod = &method
	}

	return tenantID, input, nil
}

// SaleListRequest binds the query of GET /sales.
type SaleListRequest struct {
	TenantID string `form:"tenant_id" binding:"required"`
	StoreID  string `form:"store_id"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

// ToFilter validates and converts the query. Limit and offset pass
// through as given; the service clamps them.
func (r *SaleListRequest) ToFilter() (id.ID, sales.SaleFilter, error) {
	var filter sales.SaleFilter

	tenantID, err := id.Parse(r.TenantID)
	if err != nil {
		return id.Nil(), filter, badUUID("tenant_id")
	}

	if r.StoreID != "" {
		storeID, err := id.Parse(r.StoreID)
		if err != nil {
			return id.Nil(), filter, badUUID("store_id")
		}
		filter.StoreID = &storeID
	}

	filter.Limit = r.Limit
	filter.Offset = r.Offset

	return tenantID, filter, nil
}

func badUUID(field string) error {
	return apperror.NewInvalidFormat(field + " must be a valid UUID").
		WithDetail("field", field)
}

// --- Response DTOs ---

// SaleResponse is a created or fetched sale with a localized message.
// TotalDisplay is the receipt-ready rupiah rendering of the total.
type SaleResponse struct {
	Message      string      `json:"message,omitempty"`
	Sale         *sales.Sale `json:"sale"`
	TotalDisplay string      `json:"total_display"`
}

// NewSaleResponse builds the response for a sale.
func NewSaleResponse(message string, sale *sales.Sale) SaleResponse {
	return SaleResponse{
		Message:      message,
		Sale:         sale,
		TotalDisplay: money.FormatIDR(sale.TotalCents),
	}
}

// SaleListResponse is the body of GET /sales.
type SaleListResponse struct {
	Sales      []*sales.Sale            `json:"sales"`
	Pagination OffsetPaginationResponse `json:"pagination"`
}

// NewSaleListResponse echoes the applied limit and offset back to the
// terminal alongside the total row count.
func NewSaleListResponse(result sales.SaleList) SaleListResponse {
	return SaleListResponse{
		Sales: result.Items,
		Pagination: OffsetPaginationResponse{
			Limit:  result.Limit,
			Offset: result.Offset,
			Count:  result.Total,
		},
	}
}
