package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/domain/store"
	"tokopos/internal/infrastructure/storage/postgres"
)

const storesTable = "stores"

var storeColumns = []string{
	"id", "tenant_id", "name", "address", "phone",
	"is_default", "is_active", "created_at", "updated_at",
}

// StoreRepo implements store.Repository.
type StoreRepo struct {
	builder   squirrel.StatementBuilderType
	txManager *postgres.TxManager
}

// NewStoreRepo creates a new store repository.
func NewStoreRepo(txManager *postgres.TxManager) *StoreRepo {
	return &StoreRepo{
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txManager: txManager,
	}
}

// GetByID retrieves a store by ID within the tenant.
func (r *StoreRepo) GetByID(ctx context.Context, tenantID, storeID id.ID) (*store.Store, error) {
	q := r.builder.Select(storeColumns...).From(storesTable).
		Where(squirrel.Eq{"id": storeID, "tenant_id": tenantID})

	return r.getOne(ctx, q, storeID)
}

// GetDefaultForTenant retrieves the tenant's default store.
func (r *StoreRepo) GetDefaultForTenant(ctx context.Context, tenantID id.ID) (*store.Store, error) {
	q := r.builder.Select(storeColumns...).From(storesTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "is_default": true, "is_active": true}).
		Limit(1)

	return r.getOne(ctx, q, tenantID)
}

// List retrieves all active stores of the tenant.
func (r *StoreRepo) List(ctx context.Context, tenantID id.ID) ([]*store.Store, error) {
	q := r.builder.Select(storeColumns...).From(storesTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "is_active": true}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var stores []*store.Store
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &stores, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select stores: %w", err))
	}

	return stores, nil
}

func (r *StoreRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, key any) (*store.Store, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var st store.Store
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &st, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("store", key)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get store: %w", err))
	}

	return &st, nil
}
