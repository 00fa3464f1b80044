package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/domain"
)

// --- Stubs ---

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubRepo struct {
	products map[id.ID]*Product
}

func newStubRepo(products ...*Product) *stubRepo {
	m := make(map[id.ID]*Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &stubRepo{products: m}
}

func (r *stubRepo) get(tenantID, productID id.ID) (*Product, error) {
	p, ok := r.products[productID]
	if !ok || p.TenantID != tenantID || p.DeletedAt != nil {
		return nil, apperror.NewNotFound("product", productID)
	}
	return p, nil
}

func (r *stubRepo) Create(_ context.Context, p *Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, tenantID, productID id.ID) (*Product, error) {
	return r.get(tenantID, productID)
}

func (r *stubRepo) GetForUpdate(_ context.Context, tenantID, productID id.ID) (*Product, error) {
	return r.get(tenantID, productID)
}

func (r *stubRepo) List(_ context.Context, _ id.ID, _ domain.ListFilter) (domain.ListResult[*Product], error) {
	return domain.ListResult[*Product]{}, nil
}

func (r *stubRepo) Update(_ context.Context, p *Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubRepo) UpdateStock(_ context.Context, tenantID, productID id.ID, quantity int64) error {
	p, err := r.get(tenantID, productID)
	if err != nil {
		return err
	}
	p.StockQuantity = quantity
	return nil
}

func (r *stubRepo) SoftDelete(_ context.Context, tenantID, productID id.ID) error {
	p, err := r.get(tenantID, productID)
	if err != nil {
		return err
	}
	now := p.UpdatedAt
	p.DeletedAt = &now
	return nil
}

func (r *stubRepo) FindBySKU(_ context.Context, tenantID id.ID, sku string) (*Product, error) {
	for _, p := range r.products {
		if p.TenantID == tenantID && p.DeletedAt == nil && p.SKU != nil && *p.SKU == sku {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", sku)
}

func (r *stubRepo) FindByBarcode(_ context.Context, tenantID id.ID, barcode string) (*Product, error) {
	for _, p := range r.products {
		if p.TenantID == tenantID && p.DeletedAt == nil && p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", barcode)
}

func (r *stubRepo) ListLowStock(_ context.Context, _ id.ID, _ domain.ListFilter) (domain.ListResult[*Product], error) {
	return domain.ListResult[*Product]{}, nil
}

// --- Tests ---

func TestServiceCreateStartsAtZeroStock(t *testing.T) {
	tenantID := id.New()
	supplierID := id.New()
	repo := newStubRepo()
	svc := NewService(repo, stubTxManager{})

	created, err := svc.Create(context.Background(), tenantID, CreateInput{
		Name:              "Kopi Susu",
		PriceCents:        25000,
		CostCents:         12000,
		TaxRate:           decimal.NewFromFloat(0.11),
		MinStockThreshold: 5,
		MaxStockThreshold: 100,
		SupplierID:        &supplierID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.StockQuantity != 0 {
		t.Errorf("new product stock = %d, want 0", created.StockQuantity)
	}

	stored, err := repo.GetByID(context.Background(), tenantID, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.StockQuantity != 0 {
		t.Errorf("stored stock = %d, want 0", stored.StockQuantity)
	}
	if !stored.TaxRate.Equal(decimal.NewFromFloat(0.11)) {
		t.Errorf("tax rate = %s, want 0.11", stored.TaxRate)
	}
	if stored.MinStockThreshold != 5 || stored.MaxStockThreshold != 100 {
		t.Errorf("thresholds = %d/%d, want 5/100", stored.MinStockThreshold, stored.MaxStockThreshold)
	}
	if stored.SupplierID == nil || *stored.SupplierID != supplierID {
		t.Error("supplier reference not stored")
	}
}

func TestServiceCreateInfersTypeFromCategory(t *testing.T) {
	tenantID := id.New()
	repo := newStubRepo()
	svc := NewService(repo, stubTxManager{})

	category := "Raw Coffee Beans"
	created, err := svc.Create(context.Background(), tenantID, CreateInput{
		Name:       "Arabica Beans",
		PriceCents: 90000,
		Category:   &category,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Type != TypeRawMaterial {
		t.Errorf("type = %v, want %v", created.Type, TypeRawMaterial)
	}
}

func TestServiceCreateRejectsDuplicateSKU(t *testing.T) {
	tenantID := id.New()
	sku := "KS-001"

	existing := NewProduct(tenantID, "Kopi Susu", 25000)
	existing.SKU = &sku
	repo := newStubRepo(existing)
	svc := NewService(repo, stubTxManager{})

	_, err := svc.Create(context.Background(), tenantID, CreateInput{
		Name:       "Kopi Susu Gula Aren",
		PriceCents: 28000,
		SKU:        &sku,
	})
	if err == nil {
		t.Fatal("expected duplicate error, got nil")
	}

	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeDuplicate {
		t.Errorf("expected CodeDuplicate, got %v", err)
	}
}

func TestServiceUpdateAppliesPartialFields(t *testing.T) {
	tenantID := id.New()
	p := NewProduct(tenantID, "Gula Aren", 8000)
	repo := newStubRepo(p)
	svc := NewService(repo, stubTxManager{})

	newPrice := int64(9000)
	minThreshold := int64(20)
	taxRate := decimal.NewFromFloat(0.11)
	updated, err := svc.Update(context.Background(), tenantID, p.ID, UpdateInput{
		PriceCents:        &newPrice,
		MinStockThreshold: &minThreshold,
		TaxRate:           &taxRate,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.PriceCents != 9000 {
		t.Errorf("price = %d, want 9000", updated.PriceCents)
	}
	if updated.MinStockThreshold != 20 {
		t.Errorf("min threshold = %d, want 20", updated.MinStockThreshold)
	}
	if !updated.TaxRate.Equal(taxRate) {
		t.Errorf("tax rate = %s, want %s", updated.TaxRate, taxRate)
	}
	if updated.Name != "Gula Aren" {
		t.Errorf("name changed unexpectedly to %q", updated.Name)
	}
}
