// Package inventory provides the stock adjustment engine and the
// movement ledger. Every change to a product's on-hand quantity goes
// through AdjustStock, which applies the delta and writes exactly one
// immutable ledger entry in the same transaction.
package inventory

import (
	"strings"
	"time"

	"tokopos/internal/core/id"
)

// Reason is the canonical ledger classification of a stock change.
type Reason string

const (
	ReasonSale       Reason = "SALE"
	ReasonPurchase   Reason = "PURCHASE"
	ReasonAdjustment Reason = "ADJUSTMENT"
)

// RefType names the kind of document a movement originated from.
type RefType string

const (
	RefTypeSale RefType = "sale"
)

// Movement is an immutable ledger entry recording one stock change.
// For any product, the sum of QtyChange over all of its movements
// equals the product's current stock_quantity.
type Movement struct {
	ID        id.ID `db:"id" json:"id"`
	TenantID  id.ID `db:"tenant_id" json:"tenant_id"`
	StoreID   id.ID `db:"store_id" json:"store_id"`
	ProductID id.ID `db:"product_id" json:"product_id"`

	// QtyChange is the signed delta. Positive increases stock,
	// negative decreases it.
	QtyChange int64  `db:"qty_change" json:"qty_change"`
	Reason    Reason `db:"reason" json:"reason"`
	Notes     *string `db:"notes" json:"notes,omitempty"`

	// RefType and RefID link the movement to its originating document,
	// e.g. the sale that consumed the stock.
	RefType *RefType `db:"ref_type" json:"ref_type,omitempty"`
	RefID   *id.ID   `db:"ref_id" json:"ref_id,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"ts"`
}

// MovementWithProduct is a ledger entry joined with display fields of
// its product, used by the movement listing.
type MovementWithProduct struct {
	Movement

	ProductName string  `db:"product_name" json:"product_name"`
	ProductSKU  *string `db:"product_sku" json:"product_sku,omitempty"`
}

// NormalizeReason maps an operator-supplied label to a canonical
// Reason. An exact canonical value (case-insensitive) is taken as is.
// Other input falls back to substring classification, checked in
// priority order SALE, PURCHASE, ADJUSTMENT; anything unrecognized,
// including empty input, files as ADJUSTMENT.
func NormalizeReason(raw string) Reason {
	upper := strings.ToUpper(strings.TrimSpace(raw))

	switch Reason(upper) {
	case ReasonSale, ReasonPurchase, ReasonAdjustment:
		return Reason(upper)
	}

	switch {
	case strings.Contains(upper, "SALE"):
		return ReasonSale
	case strings.Contains(upper, "PURCHASE"),
		strings.Contains(upper, "RESTOCK"),
		strings.Contains(upper, "BUY"):
		return ReasonPurchase
	case strings.Contains(upper, "ADJUST"),
		strings.Contains(upper, "CORRECT"),
		strings.Contains(upper, "TRANSFER"):
		return ReasonAdjustment
	default:
		return ReasonAdjustment
	}
}

// IsValidReason reports whether r is one of the canonical reasons.
func IsValidReason(r Reason) bool {
	switch r {
	case ReasonSale, ReasonPurchase, ReasonAdjustment:
		return true
	}
	return false
}
