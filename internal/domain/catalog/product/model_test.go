package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		category string
		want     ProductType
	}{
		{"Raw Coffee Beans", TypeRawMaterial},
		{"raw material", TypeRawMaterial},
		{"Ingredients", TypeRawMaterial},
		{"ingredient - dairy", TypeRawMaterial},
		{"Electronic Components", TypeComponent},
		{"component", TypeComponent},
		{"Delivery Service", TypeService},
		{"services", TypeService},
		{"Beverages", TypeFinishedGood},
		{"", TypeFinishedGood},
		{"Snacks", TypeFinishedGood},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := InferType(tt.category); got != tt.want {
				t.Errorf("InferType(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestProductValidate(t *testing.T) {
	tenantID := id.New()
	ctx := context.Background()

	valid := func() *Product {
		return NewProduct(tenantID, "Kopi Susu", 25000)
	}

	t.Run("valid product passes", func(t *testing.T) {
		if err := valid().Validate(ctx); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Product)
	}{
		{"empty name", func(p *Product) { p.Name = "  " }},
		{"invalid type", func(p *Product) { p.Type = "GADGET" }},
		{"negative price", func(p *Product) { p.PriceCents = -1 }},
		{"negative cost", func(p *Product) { p.CostCents = -100 }},
		{"negative stock", func(p *Product) { p.StockQuantity = -5 }},
		{"negative tax rate", func(p *Product) { p.TaxRate = decimal.NewFromFloat(-0.1) }},
		{"negative min threshold", func(p *Product) { p.MinStockThreshold = -1 }},
		{"negative max threshold", func(p *Product) { p.MaxStockThreshold = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)

			err := p.Validate(ctx)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			appErr, ok := apperror.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != apperror.CodeValidation {
				t.Errorf("expected CodeValidation, got %v", appErr.Code)
			}
		})
	}
}

func TestProductIsLowStock(t *testing.T) {
	p := NewProduct(id.New(), "Gula", 5000)

	p.MinStockThreshold = 0
	p.StockQuantity = 0
	if p.IsLowStock() {
		t.Error("no threshold configured should never be low stock")
	}

	p.MinStockThreshold = 10
	p.StockQuantity = 9
	if !p.IsLowStock() {
		t.Error("below threshold should be low stock")
	}

	p.StockQuantity = 10
	if p.IsLowStock() {
		t.Error("exactly at threshold should not be low stock")
	}

	p.StockQuantity = 11
	if p.IsLowStock() {
		t.Error("above threshold should not be low stock")
	}
}

func TestProductIsStockTracked(t *testing.T) {
	p := NewProduct(id.New(), "Ongkir", 10000)
	p.Type = TypeService
	if p.IsStockTracked() {
		t.Error("services must not track stock")
	}

	p.Type = TypeFinishedGood
	if !p.IsStockTracked() {
		t.Error("finished goods must track stock")
	}
}
