// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories. Every query is scoped by tenant_id.
package catalog_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/domain"
	"tokopos/internal/domain/catalog/product"
	"tokopos/internal/infrastructure/storage/postgres"
)

const productsTable = "products"

var productColumns = []string{
	"id", "tenant_id", "name", "sku", "barcode", "category", "product_type",
	"price_cents", "cost_cents", "tax_rate", "stock_quantity",
	"min_stock_threshold", "max_stock_threshold", "supplier_id",
	"unit", "is_active", "created_at", "updated_at", "deleted_at",
}

// ProductRepo implements product.Repository.
type ProductRepo struct {
	builder   squirrel.StatementBuilderType
	txManager *postgres.TxManager
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txManager: txManager,
	}
}

// Create inserts a new product.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	q := r.builder.Insert(productsTable).
		Columns(productColumns...).
		Values(
			p.ID, p.TenantID, p.Name, p.SKU, p.Barcode, p.Category, p.Type,
			p.PriceCents, p.CostCents, p.TaxRate, p.StockQuantity,
			p.MinStockThreshold, p.MaxStockThreshold, p.SupplierID,
			p.Unit, p.IsActive, p.CreatedAt, p.UpdatedAt, p.DeletedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert product: %w", err))
	}

	return nil
}

// GetByID retrieves a product by ID within the tenant.
func (r *ProductRepo) GetByID(ctx context.Context, tenantID, productID id.ID) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": productID, "tenant_id": tenantID}).
		Where(squirrel.Eq{"deleted_at": nil})

	return r.getOne(ctx, q, productID)
}

// GetForUpdate retrieves a product with a row lock. The lock holds for
// the rest of the transaction; adjustments to the same product queue
// behind it.
func (r *ProductRepo) GetForUpdate(ctx context.Context, tenantID, productID id.ID) (*product.Product, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL
		FOR UPDATE
	`, postgres.ColumnList(productColumns))

	var p product.Product
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &p, sql, productID, tenantID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get product for update: %w", err))
	}

	return &p, nil
}

// List retrieves products matching the filter.
func (r *ProductRepo) List(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	q := r.baseSelect().Where(squirrel.Eq{"tenant_id": tenantID})
	countQ := r.builder.Select("COUNT(*)").From(productsTable).
		Where(squirrel.Eq{"tenant_id": tenantID})

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deleted_at": nil})
		countQ = countQ.Where(squirrel.Eq{"deleted_at": nil})
	}

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"sku": like},
			squirrel.ILike{"barcode": like},
		}
		q = q.Where(cond)
		countQ = countQ.Where(cond)
	}

	orderBy := "name"
	if filter.OrderBy != "" {
		orderBy = postgres.SortExpr(filter.OrderBy)
	}
	q = q.OrderBy(orderBy).
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset()))

	return r.list(ctx, q, countQ, filter)
}

// Update persists changes to an existing product.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	q := r.builder.Update(productsTable).
		Set("name", p.Name).
		Set("sku", p.SKU).
		Set("barcode", p.Barcode).
		Set("category", p.Category).
		Set("product_type", p.Type).
		Set("price_cents", p.PriceCents).
		Set("cost_cents", p.CostCents).
		Set("tax_rate", p.TaxRate).
		Set("min_stock_threshold", p.MinStockThreshold).
		Set("max_stock_threshold", p.MaxStockThreshold).
		Set("supplier_id", p.SupplierID).
		Set("unit", p.Unit).
		Set("is_active", p.IsActive).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": p.ID, "tenant_id": p.TenantID}).
		Where(squirrel.Eq{"deleted_at": nil})

	return r.execExpectRow(ctx, q, "update product", p.ID)
}

// UpdateStock sets the on-hand quantity. Called only inside the
// adjustment transaction while the row lock is held.
func (r *ProductRepo) UpdateStock(ctx context.Context, tenantID, productID id.ID, quantity int64) error {
	q := r.builder.Update(productsTable).
		Set("stock_quantity", quantity).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": productID, "tenant_id": tenantID}).
		Where(squirrel.Eq{"deleted_at": nil})

	return r.execExpectRow(ctx, q, "update stock", productID)
}

// SoftDelete marks a product deleted.
func (r *ProductRepo) SoftDelete(ctx context.Context, tenantID, productID id.ID) error {
	now := time.Now().UTC()
	q := r.builder.Update(productsTable).
		Set("deleted_at", now).
		Set("is_active", false).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": productID, "tenant_id": tenantID}).
		Where(squirrel.Eq{"deleted_at": nil})

	return r.execExpectRow(ctx, q, "soft delete product", productID)
}

// FindBySKU retrieves a product by SKU within the tenant.
func (r *ProductRepo) FindBySKU(ctx context.Context, tenantID id.ID, sku string) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"tenant_id": tenantID, "sku": sku}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Limit(1)

	return r.getOne(ctx, q, sku)
}

// FindByBarcode retrieves a product by barcode within the tenant.
func (r *ProductRepo) FindByBarcode(ctx context.Context, tenantID id.ID, barcode string) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"tenant_id": tenantID, "barcode": barcode}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Limit(1)

	return r.getOne(ctx, q, barcode)
}

// ListLowStock retrieves active products that have dropped below
// their minimum stock threshold.
func (r *ProductRepo) ListLowStock(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	lowStock := squirrel.And{
		squirrel.Eq{"tenant_id": tenantID, "deleted_at": nil, "is_active": true},
		squirrel.Gt{"min_stock_threshold": 0},
		squirrel.Expr("stock_quantity < min_stock_threshold"),
	}

	q := r.baseSelect().Where(lowStock).
		OrderBy("stock_quantity ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset()))
	countQ := r.builder.Select("COUNT(*)").From(productsTable).Where(lowStock)

	return r.list(ctx, q, countQ, filter)
}

// --- Helpers ---

func (r *ProductRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.Select(productColumns...).From(productsTable)
}

func (r *ProductRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, key any) (*product.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p product.Product
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", key)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get product: %w", err))
	}

	return &p, nil
}

func (r *ProductRepo) list(ctx context.Context, q squirrel.SelectBuilder, countQ squirrel.SelectBuilder, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	var result domain.ListResult[*product.Product]
	querier := r.txManager.GetQuerier(ctx)

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	var items []*product.Product
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("select products: %w", err))
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := pgxscan.Get(ctx, querier, &total, countSQL, countArgs...); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("count products: %w", err))
	}

	return domain.NewListResult(items, filter, total), nil
}

func (r *ProductRepo) execExpectRow(ctx context.Context, q squirrel.UpdateBuilder, op string, key any) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build %s: %w", op, err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("%s: %w", op, err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", key)
	}

	return nil
}
