package inventory

import (
	"context"
	"time"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/core/tx"
	"tokopos/internal/domain"
	"tokopos/internal/domain/catalog/product"
	"tokopos/internal/domain/event"
	"tokopos/internal/domain/store"
	"tokopos/pkg/logger"
)

// Service is the stock adjustment engine. It owns every write to
// product stock quantities and to the movement ledger.
type Service struct {
	movements Repository
	products  product.Repository
	stores    store.Repository
	txManager tx.Manager
	events    event.Publisher
}

// NewService creates a new inventory service.
func NewService(
	movements Repository,
	products product.Repository,
	stores store.Repository,
	txManager tx.Manager,
	events event.Publisher,
) *Service {
	return &Service{
		movements: movements,
		products:  products,
		stores:    stores,
		txManager: txManager,
		events:    events,
	}
}

// AdjustInput carries one stock adjustment request.
type AdjustInput struct {
	ProductID id.ID

	// QuantityDelta is signed; positive restocks, negative consumes.
	QuantityDelta int64

	// Reason is an operator-supplied label, normalized by
	// NormalizeReason before storage.
	Reason string

	Notes *string

	// StoreID is optional; the tenant's default store is used when
	// absent.
	StoreID *id.ID

	// RefType and RefID link the movement to an originating document.
	RefType *RefType
	RefID   *id.ID
}

// AdjustResult reports the applied adjustment with before and after
// stock snapshots.
type AdjustResult struct {
	Product  *product.Product
	OldStock int64
	NewStock int64
	Movement *Movement
}

// stockAdjustedPayload is the outbox event body for one adjustment.
type stockAdjustedPayload struct {
	ProductID   id.ID  `json:"product_id"`
	ProductName string `json:"product_name"`
	QtyChange   int64  `json:"qty_change"`
	Reason      Reason `json:"reason"`
	OldStock    int64  `json:"old_stock"`
	NewStock    int64  `json:"new_stock"`
	LowStock    bool   `json:"low_stock"`
}

// AdjustStock applies a single stock delta to one product and records
// the matching ledger entry, atomically. A delta that would drive
// stock below zero is rejected with no side effects.
//
// Concurrent adjustments to the same product serialize on the row
// lock taken by GetForUpdate; adjustments to different products do
// not contend.
func (s *Service) AdjustStock(ctx context.Context, tenantID id.ID, input AdjustInput) (*AdjustResult, error) {
	if input.QuantityDelta == 0 {
		return nil, apperror.NewValidation("quantity must be a non-zero integer").
			WithDetail("field", "quantity")
	}

	var result *AdjustResult

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		storeID, err := s.resolveStore(ctx, tenantID, input.StoreID)
		if err != nil {
			return err
		}

		res, err := s.applyAdjustment(ctx, tenantID, storeID, input)
		if err != nil {
			return err
		}

		evt := event.Event{
			TenantID:      tenantID,
			AggregateType: "InventoryMovement",
			AggregateID:   res.Movement.ID,
			EventType:     event.TypeStockAdjusted,
			Payload: stockAdjustedPayload{
				ProductID:   res.Product.ID,
				ProductName: res.Product.Name,
				QtyChange:   res.Movement.QtyChange,
				Reason:      res.Movement.Reason,
				OldStock:    res.OldStock,
				NewStock:    res.NewStock,
				LowStock:    res.Product.IsLowStock(),
			},
		}
		if err := s.events.Publish(ctx, evt); err != nil {
			return err
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock adjusted",
		"product_id", result.Product.ID,
		"qty_change", result.Movement.QtyChange,
		"reason", result.Movement.Reason,
		"old_stock", result.OldStock,
		"new_stock", result.NewStock,
	)

	return result, nil
}

// applyAdjustment performs the locked read-modify-write and ledger
// insert. Must run inside a transaction.
func (s *Service) applyAdjustment(ctx context.Context, tenantID, storeID id.ID, input AdjustInput) (*AdjustResult, error) {
	p, err := s.products.GetForUpdate(ctx, tenantID, input.ProductID)
	if err != nil {
		return nil, err
	}
	return s.applyToProduct(ctx, p, storeID, input)
}

// applyToProduct applies the delta to a product already locked by the
// current transaction.
func (s *Service) applyToProduct(ctx context.Context, p *product.Product, storeID id.ID, input AdjustInput) (*AdjustResult, error) {
	tenantID := p.TenantID
	oldStock := p.StockQuantity
	newStock := oldStock + input.QuantityDelta

	if newStock < 0 {
		return nil, apperror.NewInsufficientStock(p.ID.String(), -input.QuantityDelta, oldStock).
			WithDetail("product_name", p.Name)
	}

	if err := s.products.UpdateStock(ctx, tenantID, p.ID, newStock); err != nil {
		return nil, err
	}
	p.StockQuantity = newStock
	p.UpdatedAt = time.Now().UTC()

	m := &Movement{
		ID:        id.New(),
		TenantID:  tenantID,
		StoreID:   storeID,
		ProductID: p.ID,
		QtyChange: input.QuantityDelta,
		Reason:    NormalizeReason(input.Reason),
		Notes:     input.Notes,
		RefType:   input.RefType,
		RefID:     input.RefID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.movements.Create(ctx, m); err != nil {
		return nil, err
	}

	return &AdjustResult{
		Product:  p,
		OldStock: oldStock,
		NewStock: newStock,
		Movement: m,
	}, nil
}

// SaleConsumption is one sale line's stock requirement.
type SaleConsumption struct {
	ProductID id.ID
	Quantity  int64
}

// ConsumeForSale decrements stock for every line of a sale and writes
// one SALE ledger entry per line, linked back to the sale. Must be
// called inside the sale's transaction; if any line would drive stock
// negative the whole transaction aborts.
//
// Lines referencing service products carry no stock and are skipped.
func (s *Service) ConsumeForSale(ctx context.Context, tenantID, storeID, saleID id.ID, items []SaleConsumption) ([]*Movement, error) {
	refType := RefTypeSale
	movements := make([]*Movement, 0, len(items))

	for _, item := range items {
		p, err := s.products.GetForUpdate(ctx, tenantID, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !p.IsStockTracked() {
			continue
		}

		refID := saleID
		res, err := s.applyToProduct(ctx, p, storeID, AdjustInput{
			ProductID:     item.ProductID,
			QuantityDelta: -item.Quantity,
			Reason:        string(ReasonSale),
			RefType:       &refType,
			RefID:         &refID,
		})
		if err != nil {
			return nil, err
		}

		movements = append(movements, res.Movement)
	}

	return movements, nil
}

// ListMovements retrieves ledger entries for display, newest first.
func (s *Service) ListMovements(ctx context.Context, tenantID id.ID, filter MovementFilter) (domain.ListResult[*MovementWithProduct], error) {
	filter.Normalize()

	if filter.Reason != nil && !IsValidReason(*filter.Reason) {
		return domain.ListResult[*MovementWithProduct]{}, apperror.NewValidation("invalid movement reason").
			WithDetail("field", "reason").
			WithDetail("value", string(*filter.Reason))
	}

	return s.movements.List(ctx, tenantID, filter)
}

// VerifyLedger recomputes the ledger sum for a product and compares it
// with the materialized stock quantity. Returns both values and
// whether they agree.
func (s *Service) VerifyLedger(ctx context.Context, tenantID, productID id.ID) (ledgerSum, stock int64, ok bool, err error) {
	p, err := s.products.GetByID(ctx, tenantID, productID)
	if err != nil {
		return 0, 0, false, err
	}

	sum, err := s.movements.SumForProduct(ctx, tenantID, productID)
	if err != nil {
		return 0, 0, false, err
	}

	return sum, p.StockQuantity, sum == p.StockQuantity, nil
}

// resolveStore returns the given store after ownership validation, or
// the tenant's default store when none is given.
func (s *Service) resolveStore(ctx context.Context, tenantID id.ID, storeID *id.ID) (id.ID, error) {
	if storeID != nil && !id.IsNil(*storeID) {
		st, err := s.stores.GetByID(ctx, tenantID, *storeID)
		if err != nil {
			return id.Nil(), err
		}
		return st.ID, nil
	}

	st, err := s.stores.GetDefaultForTenant(ctx, tenantID)
	if err != nil {
		return id.Nil(), err
	}
	return st.ID, nil
}
