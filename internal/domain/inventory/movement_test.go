package inventory

import "testing"

func TestNormalizeReason(t *testing.T) {
	tests := []struct {
		raw  string
		want Reason
	}{
		// Exact canonical values pass through.
		{"SALE", ReasonSale},
		{"sale", ReasonSale},
		{"Purchase", ReasonPurchase},
		{"ADJUSTMENT", ReasonAdjustment},

		// Substring classification, priority SALE > PURCHASE > ADJUSTMENT.
		{"pos_sale", ReasonSale},
		{"flash SALE clearance", ReasonSale},
		{"RESTOCK_PURCHASE", ReasonPurchase},
		{"restock", ReasonPurchase},
		{"weekly buy", ReasonPurchase},
		{"stock adjust", ReasonAdjustment},
		{"correction", ReasonAdjustment},
		{"warehouse transfer", ReasonAdjustment},

		// Unrecognized input files as ADJUSTMENT.
		{"xyz_unknown", ReasonAdjustment},
		{"", ReasonAdjustment},
		{"   ", ReasonAdjustment},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeReason(tt.raw); got != tt.want {
				t.Errorf("NormalizeReason(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsValidReason(t *testing.T) {
	for _, r := range []Reason{ReasonSale, ReasonPurchase, ReasonAdjustment} {
		if !IsValidReason(r) {
			t.Errorf("IsValidReason(%v) = false", r)
		}
	}
	if IsValidReason("RETURN") {
		t.Error("IsValidReason accepted unknown reason")
	}
}
