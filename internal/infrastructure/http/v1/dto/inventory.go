package dto

import (
	"encoding/json"
	"strconv"
	"time"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/domain/inventory"
)

// --- Request DTOs ---

// StockAdjustmentRequest is the body of POST /inventory/stock-adjustment.
// Quantity is bound as json.Number so that a fractional value or a
// string where an integer is expected fails cleanly instead of being
// silently truncated.
type StockAdjustmentRequest struct {
	ProductID string      `json:"product_id" binding:"required"`
	Quantity  json.Number `json:"quantity" binding:"required"`
	Reason    string      `json:"reason" binding:"required"`
	Notes     *string     `json:"notes,omitempty"`
	StoreID   *string     `json:"store_id,omitempty"`
}

// ToInput validates and converts the request into an adjustment input.
func (r *StockAdjustmentRequest) ToInput() (inventory.AdjustInput, error) {
	var input inventory.AdjustInput

	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return input, apperror.NewInvalidFormat("product_id must be a valid UUID").
			WithDetail("field", "product_id")
	}

	delta, err := strconv.ParseInt(r.Quantity.String(), 10, 64)
	if err != nil {
		return input, apperror.NewInvalidFormat("quantity must be a whole number").
			WithDetail("field", "quantity").
			WithDetail("value", r.Quantity.String())
	}

	input = inventory.AdjustInput{
		ProductID:     productID,
		QuantityDelta: delta,
		Reason:        r.Reason,
		Notes:         r.Notes,
	}

	if r.StoreID != nil && *r.StoreID != "" {
		storeID, err := id.Parse(*r.StoreID)
		if err != nil {
			return input, apperror.NewInvalidFormat("store_id must be a valid UUID").
				WithDetail("field", "store_id")
		}
		input.StoreID = &storeID
	}

	return input, nil
}

// MovementListRequest binds the query of GET /inventory/movements.
type MovementListRequest struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	ProductID string `form:"product_id"`
	Reason    string `form:"reason"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
}

// ToFilter validates and converts the query into a movement filter.
func (r *MovementListRequest) ToFilter() (inventory.MovementFilter, error) {
	var filter inventory.MovementFilter
	filter.Page = r.Page
	filter.Limit = r.Limit

	if r.ProductID != "" {
		productID, err := id.Parse(r.ProductID)
		if err != nil {
			return filter, apperror.NewInvalidFormat("product_id must be a valid UUID").
				WithDetail("field", "product_id")
		}
		filter.ProductID = &productID
	}

	if r.Reason != "" {
		reason := inventory.Reason(r.Reason)
		filter.Reason = &reason
	}

	if r.DateFrom != "" {
		from, err := parseDate(r.DateFrom)
		if err != nil {
			return filter, apperror.NewInvalidFormat("date_from must be an RFC 3339 date").
				WithDetail("field", "date_from")
		}
		filter.DateFrom = &from
	}

	if r.DateTo != "" {
		to, err := parseDate(r.DateTo)
		if err != nil {
			return filter, apperror.NewInvalidFormat("date_to must be an RFC 3339 date").
				WithDetail("field", "date_to")
		}
		filter.DateTo = &to
	}

	return filter, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// --- Response DTOs ---

// AdjustedProductResponse is the product snapshot inside the
// adjustment response.
type AdjustedProductResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	OldStockQuantity int64  `json:"old_stock_quantity"`
	NewStockQuantity int64  `json:"new_stock_quantity"`
	QuantityAdjusted int64  `json:"quantity_adjusted"`
}

// StockAdjustmentResponse is the body returned by the adjustment
// endpoint.
type StockAdjustmentResponse struct {
	Message  string                  `json:"message"`
	Product  AdjustedProductResponse `json:"product"`
	Movement *inventory.Movement     `json:"movement"`
}

// NewStockAdjustmentResponse builds the response from an adjustment
// result.
func NewStockAdjustmentResponse(message string, res *inventory.AdjustResult) StockAdjustmentResponse {
	return StockAdjustmentResponse{
		Message: message,
		Product: AdjustedProductResponse{
			ID:               res.Product.ID.String(),
			Name:             res.Product.Name,
			OldStockQuantity: res.OldStock,
			NewStockQuantity: res.NewStock,
			QuantityAdjusted: res.Movement.QtyChange,
		},
		Movement: res.Movement,
	}
}

// MovementListResponse is the body of GET /inventory/movements.
type MovementListResponse struct {
	Movements  []*inventory.MovementWithProduct `json:"movements"`
	Pagination PaginationResponse               `json:"pagination"`
}
