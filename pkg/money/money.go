// Package money converts integer cent amounts to display values. All
// arithmetic in the system stays in int64 cents; decimals appear only
// at the presentation edge, on receipts and exports.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FromCents converts a cent amount to a decimal currency amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

// FormatIDR renders a cent amount as Indonesian rupiah, with dots as
// thousand separators and no fraction. Rupiah has no circulating
// subunit, so sub-rupiah cents round half up.
func FormatIDR(cents int64) string {
	amount := FromCents(cents).Round(0)

	digits := amount.Abs().String()
	var b strings.Builder
	if amount.IsNegative() {
		b.WriteString("-")
	}
	b.WriteString("Rp")

	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(".")
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
