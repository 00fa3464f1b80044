// Package subscription_repo provides the PostgreSQL implementation of
// subscription persistence.
package subscription_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/internal/domain/subscription"
	"tokopos/internal/infrastructure/storage/postgres"
)

const (
	plansTable         = "subscription_plans"
	subscriptionsTable = "tenant_subscriptions"
)

// SubscriptionRepo implements subscription.Repository.
type SubscriptionRepo struct {
	builder   squirrel.StatementBuilderType
	txManager *postgres.TxManager
}

// NewSubscriptionRepo creates a new subscription repository.
func NewSubscriptionRepo(txManager *postgres.TxManager) *SubscriptionRepo {
	return &SubscriptionRepo{
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txManager: txManager,
	}
}

// GetPlanByID retrieves a plan definition.
func (r *SubscriptionRepo) GetPlanByID(ctx context.Context, planID id.ID) (*subscription.Plan, error) {
	q := r.builder.Select(
		"id", "code", "name", "allowed_payment_methods",
		"max_products", "max_stores", "price_cents_monthly",
	).From(plansTable).
		Where(squirrel.Eq{"id": planID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var plan subscription.Plan
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &plan, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("plan", planID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get plan: %w", err))
	}

	return &plan, nil
}

// GetActiveForTenant retrieves the tenant's current subscription.
func (r *SubscriptionRepo) GetActiveForTenant(ctx context.Context, tenantID id.ID) (*subscription.TenantSubscription, error) {
	q := r.builder.Select(
		"id", "tenant_id", "plan_id", "status",
		"started_at", "expires_at", "created_at", "updated_at",
	).From(subscriptionsTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("started_at DESC").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sub subscription.TenantSubscription
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &sub, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("subscription", tenantID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get subscription: %w", err))
	}

	return &sub, nil
}
