package repositories

import (
	"context"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
)

// PlanRepositoryFacade defines operations for subscription plan data
type PlanRepositoryFacade interface {
	// SavePlan persists a new subscription plan.
	SavePlan(ctx context.Context, plan domain.SubscriptionPlan) error

	// FindPlanByID retrieves a specific plan.
	FindPlanByID(ctx context.Context, planID string) (*domain.SubscriptionPlan, error)

	// ListPlans retrieves all plans, optionally only active ones.
	ListPlans(ctx context.Context, activeOnly bool) ([]domain.SubscriptionPlan, error)
}
