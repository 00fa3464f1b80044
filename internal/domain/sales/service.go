package sales

import (
	"context"
	"fmt"
	"time"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/core/tx"
	"tokopos/internal/domain/event"
	"tokopos/internal/domain/inventory"
	"tokopos/internal/domain/store"
	"tokopos/pkg/logger"
	"tokopos/pkg/salenumber"
)

// Entitlements answers whether a tenant's subscription plan allows a
// payment method. Implemented by the subscription service.
type Entitlements interface {
	CanUsePaymentMethod(ctx context.Context, tenantID id.ID, method string) (bool, error)
}

// Service coordinates sale creation as one atomic transaction.
type Service struct {
	repo         Repository
	stores       store.Repository
	inventory    *inventory.Service
	entitlements Entitlements
	txManager    tx.Manager
	events       event.Publisher
}

// NewService creates a new sales service.
func NewService(
	repo Repository,
	stores store.Repository,
	inventorySvc *inventory.Service,
	entitlements Entitlements,
	txManager tx.Manager,
	events event.Publisher,
) *Service {
	return &Service{
		repo:         repo,
		stores:       stores,
		inventory:    inventorySvc,
		entitlements: entitlements,
		txManager:    txManager,
		events:       events,
	}
}

// SaleItemInput is one requested sale line.
type SaleItemInput struct {
	ProductID      id.ID
	Qty            int64
	UnitPriceCents int64
	DiscountCents  int64
}

// CreateSaleInput carries one sale creation request.
type CreateSaleInput struct {
	StoreID       id.ID
	CashierUserID id.ID
	Items         []SaleItemInput

	// SubtotalCents and TotalCents are derived from the lines when nil.
	SubtotalCents *int64
	DiscountCents int64
	TaxCents      int64
	TotalCents    *int64

	PaymentMethod *PaymentMethod
	Provider      *string
}

// saleCreatedPayload is the outbox event body for a created sale.
type saleCreatedPayload struct {
	SaleID        id.ID          `json:"sale_id"`
	SaleNumber    string         `json:"sale_number"`
	StoreID       id.ID          `json:"store_id"`
	TotalCents    int64          `json:"total_cents"`
	ItemCount     int            `json:"item_count"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
}

// CreateSale creates the sale header, its line items, the matching
// stock decrements, and an optional payment row atomically. Any
// failure rolls the whole unit back.
func (s *Service) CreateSale(ctx context.Context, tenantID id.ID, input CreateSaleInput) (*Sale, error) {
	if err := s.validateInput(tenantID, input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sale := &Sale{
		ID:            id.New(),
		TenantID:      tenantID,
		StoreID:       input.StoreID,
		CashierUserID: input.CashierUserID,
		SaleNumber:    salenumber.Generate(),
		DiscountCents: input.DiscountCents,
		TaxCents:      input.TaxCents,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var lineTotal int64
	consumptions := make([]inventory.SaleConsumption, 0, len(input.Items))
	for _, in := range input.Items {
		total := in.Qty*in.UnitPriceCents - in.DiscountCents
		lineTotal += total

		sale.Items = append(sale.Items, &SaleItem{
			ID:             id.New(),
			SaleID:         sale.ID,
			ProductID:      in.ProductID,
			Qty:            in.Qty,
			UnitPriceCents: in.UnitPriceCents,
			DiscountCents:  in.DiscountCents,
			TotalCents:     total,
		})
		consumptions = append(consumptions, inventory.SaleConsumption{
			ProductID: in.ProductID,
			Quantity:  in.Qty,
		})
	}

	if input.SubtotalCents != nil {
		sale.SubtotalCents = *input.SubtotalCents
	} else {
		sale.SubtotalCents = lineTotal
	}
	if input.TotalCents != nil {
		sale.TotalCents = *input.TotalCents
	} else {
		sale.TotalCents = sale.SubtotalCents - sale.DiscountCents + sale.TaxCents
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.stores.GetByID(ctx, tenantID, input.StoreID); err != nil {
			return err
		}

		if err := s.repo.CreateSale(ctx, sale); err != nil {
			return err
		}
		if err := s.repo.CreateItems(ctx, sale.Items); err != nil {
			return err
		}

		// Each line's stock decrement writes a SALE ledger entry tied
		// back to this sale; a shortage on any line aborts everything.
		if _, err := s.inventory.ConsumeForSale(ctx, tenantID, sale.StoreID, sale.ID, consumptions); err != nil {
			return err
		}

		if input.PaymentMethod != nil && *input.PaymentMethod != MethodCash {
			if err := s.createPayment(ctx, sale, *input.PaymentMethod, input.Provider); err != nil {
				return err
			}
		}

		return s.events.Publish(ctx, event.Event{
			TenantID:      tenantID,
			AggregateType: "Sale",
			AggregateID:   sale.ID,
			EventType:     event.TypeSaleCreated,
			Payload: saleCreatedPayload{
				SaleID:        sale.ID,
				SaleNumber:    sale.SaleNumber,
				StoreID:       sale.StoreID,
				TotalCents:    sale.TotalCents,
				ItemCount:     len(sale.Items),
				PaymentMethod: sale.PaymentMethod,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale created",
		"sale_id", sale.ID,
		"sale_number", sale.SaleNumber,
		"total_cents", sale.TotalCents,
		"items", len(sale.Items),
	)

	return sale, nil
}

// createPayment checks the tenant's plan entitlement and inserts the
// payment row in PENDING status.
func (s *Service) createPayment(ctx context.Context, sale *Sale, method PaymentMethod, provider *string) error {
	allowed, err := s.entitlements.CanUsePaymentMethod(ctx, sale.TenantID, string(method))
	if err != nil {
		return fmt.Errorf("check payment entitlement: %w", err)
	}
	if !allowed {
		return apperror.NewPaymentNotAllowed(string(method))
	}

	now := time.Now().UTC()
	return s.repo.CreatePayment(ctx, &Payment{
		ID:          id.New(),
		TenantID:    sale.TenantID,
		SaleID:      sale.ID,
		Method:      method,
		Provider:    provider,
		AmountCents: sale.TotalCents,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// GetByID retrieves a sale with its items and payment.
func (s *Service) GetByID(ctx context.Context, tenantID, saleID id.ID) (*Sale, error) {
	sale, err := s.repo.GetByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}

	// Cash sales have no payment row; anything else is a real failure.
	payment, err := s.repo.GetPayment(ctx, sale.TenantID, saleID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	sale.Payment = payment

	return sale, nil
}

// List retrieves sale headers newest first.
func (s *Service) List(ctx context.Context, tenantID id.ID, filter SaleFilter) (SaleList, error) {
	filter.Normalize()
	return s.repo.List(ctx, tenantID, filter)
}

// validateInput rejects malformed requests before any database access.
func (s *Service) validateInput(tenantID id.ID, input CreateSaleInput) error {
	if id.IsNil(tenantID) {
		return apperror.NewValidation("tenant_id is required").WithDetail("field", "tenant_id")
	}
	if id.IsNil(input.StoreID) {
		return apperror.NewValidation("store_id is required").WithDetail("field", "store_id")
	}
	if id.IsNil(input.CashierUserID) {
		return apperror.NewValidation("cashier_user_id is required").WithDetail("field", "cashier_user_id")
	}
	if len(input.Items) == 0 {
		return apperror.NewValidation("sale_items must not be empty").WithDetail("field", "sale_items")
	}

	for i, item := range input.Items {
		if id.IsNil(item.ProductID) {
			return invalidItem(i, "product_id")
		}
		if item.Qty <= 0 {
			return invalidItem(i, "qty")
		}
		if item.UnitPriceCents < 0 {
			return invalidItem(i, "unit_price_cents")
		}
		if item.DiscountCents < 0 {
			return invalidItem(i, "discount_cents")
		}
	}

	if input.DiscountCents < 0 {
		return apperror.NewValidation("discount cannot be negative").WithDetail("field", "discount_cents")
	}
	if input.TaxCents < 0 {
		return apperror.NewValidation("tax cannot be negative").WithDetail("field", "tax_cents")
	}

	if input.PaymentMethod != nil && !IsValidPaymentMethod(*input.PaymentMethod) {
		return apperror.NewValidation("unknown payment method").
			WithDetail("field", "payment_method").
			WithDetail("value", string(*input.PaymentMethod))
	}

	return nil
}

func invalidItem(index int, field string) error {
	return apperror.NewValidation("invalid sale item").
		WithMessageKey("sales.invalid_items").
		WithDetail("index", index).
		WithDetail("field", field)
}
