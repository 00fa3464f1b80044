// Package sales_repo provides PostgreSQL implementations for sale
// persistence. Sale creation runs inside the coordinator's transaction;
// line items go through the COPY protocol.
package sales_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/domain/sales"
	"tokopos/internal/infrastructure/storage/postgres"
)

const (
	salesTable     = "sales"
	saleItemsTable = "sale_items"
	paymentsTable  = "payments"
)

var saleColumns = []string{
	"id", "tenant_id", "store_id", "cashier_user_id", "sale_number",
	"subtotal_cents", "discount_cents", "tax_cents", "total_cents",
	"payment_method", "payment_status", "created_at", "updated_at",
}

var saleItemColumns = []string{
	"id", "sale_id", "product_id", "qty",
	"unit_price_cents", "discount_cents", "total_cents",
}

// SaleRepo implements sales.Repository.
type SaleRepo struct {
	builder   squirrel.StatementBuilderType
	txManager *postgres.TxManager
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txManager *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txManager: txManager,
	}
}

// CreateSale inserts the sale header.
func (r *SaleRepo) CreateSale(ctx context.Context, sale *sales.Sale) error {
	q := r.builder.Insert(salesTable).
		Columns(saleColumns...).
		Values(
			sale.ID, sale.TenantID, sale.StoreID, sale.CashierUserID, sale.SaleNumber,
			sale.SubtotalCents, sale.DiscountCents, sale.TaxCents, sale.TotalCents,
			sale.PaymentMethod, sale.PaymentStatus, sale.CreatedAt, sale.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert sale: %w", err))
	}

	return nil
}

// CreateItems bulk-inserts the sale lines via COPY. Must run inside
// the sale's transaction.
func (r *SaleRepo) CreateItems(ctx context.Context, items []*sales.SaleItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{
			item.ID, item.SaleID, item.ProductID, item.Qty,
			item.UnitPriceCents, item.DiscountCents, item.TotalCents,
		})
	}

	inserter := postgres.NewBatchInserter(r.txManager)
	if _, err := inserter.CopyFromSlice(ctx, saleItemsTable, saleItemColumns, rows); err != nil {
		return apperror.NewDatabase(fmt.Errorf("copy sale items: %w", err))
	}

	return nil
}

// CreatePayment inserts a payment row.
func (r *SaleRepo) CreatePayment(ctx context.Context, p *sales.Payment) error {
	q := r.builder.Insert(paymentsTable).
		Columns(
			"id", "tenant_id", "sale_id", "method", "provider",
			"amount_cents", "status", "created_at", "updated_at",
		).
		Values(
			p.ID, p.TenantID, p.SaleID, p.Method, p.Provider,
			p.AmountCents, p.Status, p.CreatedAt, p.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert payment: %w", err))
	}

	return nil
}

// GetByID retrieves a sale with its items. A nil tenantID looks the
// sale up by ID alone (terminal receipt fetch without a token).
func (r *SaleRepo) GetByID(ctx context.Context, tenantID, saleID id.ID) (*sales.Sale, error) {
	cond := squirrel.Eq{"id": saleID}
	if !id.IsNil(tenantID) {
		cond["tenant_id"] = tenantID
	}

	q := r.builder.Select(saleColumns...).From(salesTable).
		Where(cond)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)

	var sale sales.Sale
	if err := pgxscan.Get(ctx, querier, &sale, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", saleID).WithMessageKey("sales.notFound")
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get sale: %w", err))
	}

	itemsQ := r.builder.Select(saleItemColumns...).From(saleItemsTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("id")

	itemsSQL, itemsArgs, err := itemsQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &sale.Items, itemsSQL, itemsArgs...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select sale items: %w", err))
	}

	return &sale, nil
}

// List retrieves sale headers newest first. The offset is applied as
// given; terminal clients page with raw limit/offset.
func (r *SaleRepo) List(ctx context.Context, tenantID id.ID, filter sales.SaleFilter) (sales.SaleList, error) {
	result := sales.SaleList{Limit: filter.Limit, Offset: filter.Offset}

	cond := squirrel.And{squirrel.Eq{"tenant_id": tenantID}}
	if filter.StoreID != nil {
		cond = append(cond, squirrel.Eq{"store_id": *filter.StoreID})
	}

	q := r.builder.Select(saleColumns...).From(salesTable).
		Where(cond).
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("select sales: %w", err))
	}

	countQ := r.builder.Select("COUNT(*)").From(salesTable).Where(cond)
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	if err := pgxscan.Get(ctx, querier, &result.Total, countSQL, countArgs...); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("count sales: %w", err))
	}

	return result, nil
}

// GetPayment retrieves the payment row of a sale, if any.
func (r *SaleRepo) GetPayment(ctx context.Context, tenantID, saleID id.ID) (*sales.Payment, error) {
	q := r.builder.Select(
		"id", "tenant_id", "sale_id", "method", "provider",
		"amount_cents", "status", "created_at", "updated_at",
	).From(paymentsTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "sale_id": saleID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p sales.Payment
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("payment", saleID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get payment: %w", err))
	}

	return &p, nil
}
