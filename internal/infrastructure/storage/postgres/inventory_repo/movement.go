// Package inventory_repo provides the PostgreSQL implementation of the
// movement ledger repository. The ledger is append-only.
package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/domain"
	"tokopos/internal/domain/inventory"
	"tokopos/internal/infrastructure/storage/postgres"
)

const movementsTable = "inventory_movements"

var movementColumns = []string{
	"id", "tenant_id", "store_id", "product_id",
	"qty_change", "reason", "notes", "ref_type", "ref_id", "created_at",
}

// MovementRepo implements inventory.Repository.
type MovementRepo struct {
	builder   squirrel.StatementBuilderType
	txManager *postgres.TxManager
}

// NewMovementRepo creates a new movement repository.
func NewMovementRepo(txManager *postgres.TxManager) *MovementRepo {
	return &MovementRepo{
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txManager: txManager,
	}
}

// Create inserts a new ledger entry.
func (r *MovementRepo) Create(ctx context.Context, m *inventory.Movement) error {
	q := r.builder.Insert(movementsTable).
		Columns(movementColumns...).
		Values(
			m.ID, m.TenantID, m.StoreID, m.ProductID,
			m.QtyChange, m.Reason, m.Notes, m.RefType, m.RefID, m.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert movement: %w", err))
	}

	return nil
}

// List retrieves ledger entries joined with product display fields,
// newest first. The count runs as an independent query under the same
// predicate.
func (r *MovementRepo) List(ctx context.Context, tenantID id.ID, filter inventory.MovementFilter) (domain.ListResult[*inventory.MovementWithProduct], error) {
	var result domain.ListResult[*inventory.MovementWithProduct]

	cond := r.filterConditions(tenantID, filter)

	q := r.builder.Select(
		"m.id", "m.tenant_id", "m.store_id", "m.product_id",
		"m.qty_change", "m.reason", "m.notes", "m.ref_type", "m.ref_id", "m.created_at",
		"p.name AS product_name", "p.sku AS product_sku",
	).
		From(movementsTable + " m").
		Join("products p ON p.id = m.product_id").
		Where(cond).
		OrderBy("m.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset()))

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)

	var items []*inventory.MovementWithProduct
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("select movements: %w", err))
	}

	countQ := r.builder.Select("COUNT(*)").
		From(movementsTable + " m").
		Where(cond)

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := pgxscan.Get(ctx, querier, &total, countSQL, countArgs...); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("count movements: %w", err))
	}

	return domain.NewListResult(items, filter.ListFilter, total), nil
}

// SumForProduct returns the ledger sum for one product.
func (r *MovementRepo) SumForProduct(ctx context.Context, tenantID, productID id.ID) (int64, error) {
	sql := `
		SELECT COALESCE(SUM(qty_change), 0)
		FROM inventory_movements
		WHERE tenant_id = $1 AND product_id = $2
	`

	var sum int64
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &sum, sql, tenantID, productID); err != nil {
		return 0, apperror.NewDatabase(fmt.Errorf("sum movements: %w", err))
	}

	return sum, nil
}

func (r *MovementRepo) filterConditions(tenantID id.ID, filter inventory.MovementFilter) squirrel.And {
	cond := squirrel.And{squirrel.Eq{"m.tenant_id": tenantID}}

	if filter.ProductID != nil {
		cond = append(cond, squirrel.Eq{"m.product_id": *filter.ProductID})
	}
	if filter.Reason != nil {
		cond = append(cond, squirrel.Eq{"m.reason": *filter.Reason})
	}
	if filter.DateFrom != nil {
		cond = append(cond, squirrel.GtOrEq{"m.created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		cond = append(cond, squirrel.LtOrEq{"m.created_at": *filter.DateTo})
	}

	return cond
}
