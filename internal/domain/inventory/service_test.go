package inventory

import (
	"context"
	"testing"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/domain"
	"tokopos/internal/domain/catalog/product"
	"tokopos/internal/domain/event"
	"tokopos/internal/domain/store"
)

// --- Stubs ---

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubPublisher struct {
	events []event.Event
}

func (p *stubPublisher) Publish(_ context.Context, evt event.Event) error {
	p.events = append(p.events, evt)
	return nil
}

type stubProductRepo struct {
	products map[id.ID]*product.Product
}

func newStubProductRepo(products ...*product.Product) *stubProductRepo {
	m := make(map[id.ID]*product.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &stubProductRepo{products: m}
}

func (r *stubProductRepo) get(tenantID, productID id.ID) (*product.Product, error) {
	p, ok := r.products[productID]
	if !ok || p.TenantID != tenantID || p.DeletedAt != nil {
		return nil, apperror.NewNotFound("product", productID)
	}
	return p, nil
}

func (r *stubProductRepo) Create(_ context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) GetByID(_ context.Context, tenantID, productID id.ID) (*product.Product, error) {
	return r.get(tenantID, productID)
}

func (r *stubProductRepo) GetForUpdate(_ context.Context, tenantID, productID id.ID) (*product.Product, error) {
	return r.get(tenantID, productID)
}

func (r *stubProductRepo) List(_ context.Context, _ id.ID, _ domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{}, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) UpdateStock(_ context.Context, tenantID, productID id.ID, quantity int64) error {
	p, err := r.get(tenantID, productID)
	if err != nil {
		return err
	}
	p.StockQuantity = quantity
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, _, _ id.ID) error { return nil }

func (r *stubProductRepo) FindBySKU(_ context.Context, _ id.ID, _ string) (*product.Product, error) {
	return nil, apperror.NewNotFound("product", "sku")
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, _ id.ID, _ string) (*product.Product, error) {
	return nil, apperror.NewNotFound("product", "barcode")
}

func (r *stubProductRepo) ListLowStock(_ context.Context, _ id.ID, _ domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{}, nil
}

type stubMovementRepo struct {
	movements []*Movement
}

func (r *stubMovementRepo) Create(_ context.Context, m *Movement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, tenantID id.ID, filter MovementFilter) (domain.ListResult[*MovementWithProduct], error) {
	var items []*MovementWithProduct
	for _, m := range r.movements {
		if m.TenantID != tenantID {
			continue
		}
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		if filter.Reason != nil && m.Reason != *filter.Reason {
			continue
		}
		items = append(items, &MovementWithProduct{Movement: *m})
	}
	return domain.NewListResult(items, filter.ListFilter, int64(len(items))), nil
}

func (r *stubMovementRepo) SumForProduct(_ context.Context, tenantID, productID id.ID) (int64, error) {
	var sum int64
	for _, m := range r.movements {
		if m.TenantID == tenantID && m.ProductID == productID {
			sum += m.QtyChange
		}
	}
	return sum, nil
}

type stubStoreRepo struct {
	store *store.Store
}

func (r *stubStoreRepo) GetByID(_ context.Context, tenantID, storeID id.ID) (*store.Store, error) {
	if r.store != nil && r.store.ID == storeID && r.store.TenantID == tenantID {
		return r.store, nil
	}
	return nil, apperror.NewNotFound("store", storeID)
}

func (r *stubStoreRepo) GetDefaultForTenant(_ context.Context, tenantID id.ID) (*store.Store, error) {
	if r.store != nil && r.store.TenantID == tenantID {
		return r.store, nil
	}
	return nil, apperror.NewNotFound("store", tenantID)
}

func (r *stubStoreRepo) List(_ context.Context, _ id.ID) ([]*store.Store, error) {
	return []*store.Store{r.store}, nil
}

// --- Fixture ---

type fixture struct {
	svc       *Service
	products  *stubProductRepo
	movements *stubMovementRepo
	publisher *stubPublisher
	tenantID  id.ID
	storeID   id.ID
}

func newFixture(products ...*product.Product) *fixture {
	tenantID := id.New()
	for _, p := range products {
		p.TenantID = tenantID
	}

	st := &store.Store{ID: id.New(), TenantID: tenantID, Name: "Main", IsDefault: true, IsActive: true}

	productRepo := newStubProductRepo(products...)
	movementRepo := &stubMovementRepo{}
	publisher := &stubPublisher{}

	svc := NewService(movementRepo, productRepo, &stubStoreRepo{store: st}, stubTxManager{}, publisher)

	return &fixture{
		svc:       svc,
		products:  productRepo,
		movements: movementRepo,
		publisher: publisher,
		tenantID:  tenantID,
		storeID:   st.ID,
	}
}

func newTestProduct(stock int64) *product.Product {
	p := product.NewProduct(id.Nil(), "Kopi Susu", 25000)
	p.StockQuantity = stock
	return p
}

// --- Tests ---

func TestAdjustStock_AppliesDeltaAndWritesLedger(t *testing.T) {
	p := newTestProduct(10)
	f := newFixture(p)
	ctx := context.Background()

	notes := "weekly restock"
	res, err := f.svc.AdjustStock(ctx, f.tenantID, AdjustInput{
		ProductID:     p.ID,
		QuantityDelta: 40,
		Reason:        "restock",
		Notes:         &notes,
	})
	if err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}

	if res.OldStock != 10 || res.NewStock != 50 {
		t.Errorf("snapshot mismatch: old=%d new=%d", res.OldStock, res.NewStock)
	}
	if p.StockQuantity != 50 {
		t.Errorf("product stock = %d, want 50", p.StockQuantity)
	}

	if len(f.movements.movements) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(f.movements.movements))
	}
	m := f.movements.movements[0]
	if m.QtyChange != 40 {
		t.Errorf("qty_change = %d, want 40", m.QtyChange)
	}
	if m.Reason != ReasonPurchase {
		t.Errorf("reason = %v, want PURCHASE", m.Reason)
	}
	if m.StoreID != f.storeID {
		t.Errorf("movement store = %v, want default store %v", m.StoreID, f.storeID)
	}
	if m.Notes == nil || *m.Notes != notes {
		t.Errorf("notes not carried through")
	}

	if len(f.publisher.events) != 1 || f.publisher.events[0].EventType != event.TypeStockAdjusted {
		t.Errorf("expected one stock_adjusted event, got %+v", f.publisher.events)
	}
}

func TestAdjustStock_RejectsNegativeStock(t *testing.T) {
	p := newTestProduct(0)
	f := newFixture(p)

	_, err := f.svc.AdjustStock(context.Background(), f.tenantID, AdjustInput{
		ProductID:     p.ID,
		QuantityDelta: -5,
		Reason:        "correction",
	})
	if err == nil {
		t.Fatal("expected rejection, got nil")
	}
	if !apperror.IsInsufficientStock(err) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	// No side effects.
	if p.StockQuantity != 0 {
		t.Errorf("stock changed to %d after rejected adjustment", p.StockQuantity)
	}
	if len(f.movements.movements) != 0 {
		t.Errorf("ledger grew after rejected adjustment")
	}
	if len(f.publisher.events) != 0 {
		t.Errorf("event published after rejected adjustment")
	}
}

func TestAdjustStock_LedgerSumInvariant(t *testing.T) {
	p := newTestProduct(0)
	f := newFixture(p)
	ctx := context.Background()

	for _, delta := range []int64{50, -20, 5} {
		if _, err := f.svc.AdjustStock(ctx, f.tenantID, AdjustInput{
			ProductID:     p.ID,
			QuantityDelta: delta,
			Reason:        "adjust",
		}); err != nil {
			t.Fatalf("AdjustStock(%d) failed: %v", delta, err)
		}
	}

	if p.StockQuantity != 35 {
		t.Errorf("final stock = %d, want 35", p.StockQuantity)
	}

	sum, stock, ok, err := f.svc.VerifyLedger(ctx, f.tenantID, p.ID)
	if err != nil {
		t.Fatalf("VerifyLedger failed: %v", err)
	}
	if !ok || sum != 35 || stock != 35 {
		t.Errorf("ledger sum = %d, stock = %d, ok = %v; want 35/35/true", sum, stock, ok)
	}
}

func TestAdjustStock_SequentialConflict(t *testing.T) {
	// Two -60 adjustments against stock 100. With the row lock they
	// serialize; the second observes 40 and is rejected.
	p := newTestProduct(100)
	f := newFixture(p)
	ctx := context.Background()

	if _, err := f.svc.AdjustStock(ctx, f.tenantID, AdjustInput{
		ProductID: p.ID, QuantityDelta: -60, Reason: "sale",
	}); err != nil {
		t.Fatalf("first adjustment failed: %v", err)
	}

	_, err := f.svc.AdjustStock(ctx, f.tenantID, AdjustInput{
		ProductID: p.ID, QuantityDelta: -60, Reason: "sale",
	})
	if !apperror.IsInsufficientStock(err) {
		t.Fatalf("second adjustment: want insufficient stock, got %v", err)
	}

	if p.StockQuantity != 40 {
		t.Errorf("final stock = %d, want 40", p.StockQuantity)
	}
	if len(f.movements.movements) != 1 {
		t.Errorf("ledger entries = %d, want 1", len(f.movements.movements))
	}
}

func TestAdjustStock_ZeroDeltaRejected(t *testing.T) {
	p := newTestProduct(10)
	f := newFixture(p)

	_, err := f.svc.AdjustStock(context.Background(), f.tenantID, AdjustInput{
		ProductID: p.ID, QuantityDelta: 0, Reason: "adjust",
	})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdjustStock_UnknownProduct(t *testing.T) {
	f := newFixture(newTestProduct(10))

	_, err := f.svc.AdjustStock(context.Background(), f.tenantID, AdjustInput{
		ProductID: id.New(), QuantityDelta: 1, Reason: "adjust",
	})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdjustStock_WrongTenant(t *testing.T) {
	p := newTestProduct(10)
	f := newFixture(p)

	_, err := f.svc.AdjustStock(context.Background(), id.New(), AdjustInput{
		ProductID: p.ID, QuantityDelta: 1, Reason: "adjust",
	})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found for foreign tenant, got %v", err)
	}
}

func TestConsumeForSale(t *testing.T) {
	good := newTestProduct(10)
	svcItem := newTestProduct(0)
	svcItem.Type = product.TypeService

	f := newFixture(good, svcItem)
	ctx := context.Background()
	saleID := id.New()

	movements, err := f.svc.ConsumeForSale(ctx, f.tenantID, f.storeID, saleID, []SaleConsumption{
		{ProductID: good.ID, Quantity: 3},
		{ProductID: svcItem.ID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("ConsumeForSale failed: %v", err)
	}

	// The service line carries no stock, so only one movement.
	if len(movements) != 1 {
		t.Fatalf("movements = %d, want 1", len(movements))
	}

	m := movements[0]
	if m.QtyChange != -3 {
		t.Errorf("qty_change = %d, want -3", m.QtyChange)
	}
	if m.Reason != ReasonSale {
		t.Errorf("reason = %v, want SALE", m.Reason)
	}
	if m.RefType == nil || *m.RefType != RefTypeSale || m.RefID == nil || *m.RefID != saleID {
		t.Errorf("movement not linked to sale: refType=%v refID=%v", m.RefType, m.RefID)
	}

	if good.StockQuantity != 7 {
		t.Errorf("stock = %d, want 7", good.StockQuantity)
	}
}

func TestConsumeForSale_AbortsOnShortage(t *testing.T) {
	p := newTestProduct(2)
	f := newFixture(p)

	_, err := f.svc.ConsumeForSale(context.Background(), f.tenantID, f.storeID, id.New(), []SaleConsumption{
		{ProductID: p.ID, Quantity: 5},
	})
	if !apperror.IsInsufficientStock(err) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
}

func TestListMovements_InvalidReasonFilter(t *testing.T) {
	f := newFixture(newTestProduct(0))

	bad := Reason("RETURN")
	_, err := f.svc.ListMovements(context.Background(), f.tenantID, MovementFilter{Reason: &bad})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
