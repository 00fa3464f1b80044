// Package sales provides the sale transaction coordinator. Creating a
// sale writes the header, its line items, the stock decrements with
// their ledger entries, and an optional payment row as one atomic unit.
package sales

import (
	"time"

	"tokopos/internal/core/id"
)

// PaymentMethod is how a sale is settled.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodCard     PaymentMethod = "CARD"
	MethodQRIS     PaymentMethod = "QRIS"
	MethodEWallet  PaymentMethod = "EWALLET"
	MethodTransfer PaymentMethod = "TRANSFER"
)

// PaymentStatus tracks settlement of a sale or payment row.
type PaymentStatus string

const (
	StatusPending  PaymentStatus = "PENDING"
	StatusPaid     PaymentStatus = "PAID"
	StatusFailed   PaymentStatus = "FAILED"
	StatusRefunded PaymentStatus = "REFUNDED"
)

// Sale is the header of one point-of-sale transaction.
type Sale struct {
	ID            id.ID `db:"id" json:"id"`
	TenantID      id.ID `db:"tenant_id" json:"tenant_id"`
	StoreID       id.ID `db:"store_id" json:"store_id"`
	CashierUserID id.ID `db:"cashier_user_id" json:"cashier_user_id"`

	// SaleNumber is the human-readable receipt number.
	SaleNumber string `db:"sale_number" json:"sale_number"`

	SubtotalCents int64 `db:"subtotal_cents" json:"subtotal_cents"`
	DiscountCents int64 `db:"discount_cents" json:"discount_cents"`
	TaxCents      int64 `db:"tax_cents" json:"tax_cents"`
	TotalCents    int64 `db:"total_cents" json:"total_cents"`

	PaymentMethod *PaymentMethod `db:"payment_method" json:"payment_method,omitempty"`
	PaymentStatus PaymentStatus  `db:"payment_status" json:"payment_status"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Items are the sale lines; loaded with the header.
	Items []*SaleItem `db:"-" json:"sale_items"`

	// Payment is the settlement row, when one was recorded.
	Payment *Payment `db:"-" json:"payment,omitempty"`
}

// SaleItem is one line of a sale.
type SaleItem struct {
	ID     id.ID `db:"id" json:"id"`
	SaleID id.ID `db:"sale_id" json:"sale_id"`

	ProductID      id.ID `db:"product_id" json:"product_id"`
	Qty            int64 `db:"qty" json:"qty"`
	UnitPriceCents int64 `db:"unit_price_cents" json:"unit_price_cents"`
	DiscountCents  int64 `db:"discount_cents" json:"discount_cents"`
	TotalCents     int64 `db:"total_cents" json:"total_cents"`
}

// Payment is a non-cash settlement record attached to a sale. Cash
// sales settle at the counter and carry no payment row.
type Payment struct {
	ID       id.ID `db:"id" json:"id"`
	TenantID id.ID `db:"tenant_id" json:"tenant_id"`
	SaleID   id.ID `db:"sale_id" json:"sale_id"`

	Method      PaymentMethod `db:"method" json:"method"`
	Provider    *string       `db:"provider" json:"provider,omitempty"`
	AmountCents int64         `db:"amount_cents" json:"amount_cents"`
	Status      PaymentStatus `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsValidPaymentMethod reports whether m is a known method.
func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCard, MethodQRIS, MethodEWallet, MethodTransfer:
		return true
	}
	return false
}
