package subscription

import (
	"context"
	"strings"
	"time"

	"tokopos/internal/core/apperror"
	"tokopos/internal/core/id"
	"tokopos/pkg/logger"
)

const planCacheTTL = 5 * time.Minute

// Service resolves tenant entitlements from subscription plans.
// Implements the sales service's Entitlements contract.
type Service struct {
	repo  Repository
	cache Cache
}

// NewService creates a new subscription service. cache may be nil.
func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// ResolvePlan returns the plan currently governing a tenant. Tenants
// without an active subscription fall back to the free plan.
func (s *Service) ResolvePlan(ctx context.Context, tenantID id.ID) (*Plan, error) {
	if s.cache != nil {
		plan, err := s.cache.GetPlan(ctx, tenantID)
		if err != nil {
			// Cache trouble degrades to a repository read.
			logger.Warn(ctx, "entitlement cache read failed", "error", err)
		} else if plan != nil {
			return plan, nil
		}
	}

	plan, err := s.resolveFromRepo(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPlan(ctx, tenantID, plan, planCacheTTL); err != nil {
			logger.Warn(ctx, "entitlement cache write failed", "error", err)
		}
	}

	return plan, nil
}

func (s *Service) resolveFromRepo(ctx context.Context, tenantID id.ID) (*Plan, error) {
	sub, err := s.repo.GetActiveForTenant(ctx, tenantID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return FreePlan(), nil
		}
		return nil, err
	}

	if !sub.IsActive(time.Now().UTC()) {
		return FreePlan(), nil
	}

	return s.repo.GetPlanByID(ctx, sub.PlanID)
}

// CanUsePaymentMethod reports whether the tenant's plan allows
// recording the given settlement method.
func (s *Service) CanUsePaymentMethod(ctx context.Context, tenantID id.ID, method string) (bool, error) {
	plan, err := s.ResolvePlan(ctx, tenantID)
	if err != nil {
		return false, err
	}

	for _, allowed := range plan.AllowedPaymentMethods {
		if strings.EqualFold(allowed, method) {
			return true, nil
		}
	}
	return false, nil
}
