package services

import (
	"context"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/gymtrack/gymtrack-api/internal/dto"
)

// SubscriptionSvcFacade defines operations on subscription windows.
type SubscriptionSvcFacade interface {
	SubscriptionLookupSvc

	// PurchaseSubscription creates a new window for the member from the plan's
	// duration. The window starts at the requested date (default today) and
	// ends DurationDays-1 later, inclusive.
	PurchaseSubscription(ctx context.Context, memberID string, req dto.CreateSubscriptionRequest, userID string) (*domain.SubscriptionWindow, error)

	// CancelSubscription flips a window to inactive; windows are never deleted.
	CancelSubscription(ctx context.Context, subscriptionID string, userID string) error

	// ListMemberSubscriptions retrieves all windows for a member, newest first.
	ListMemberSubscriptions(ctx context.Context, memberID string) ([]domain.SubscriptionWindow, error)
}

// PlanSvcFacade defines operations on subscription plans.
type PlanSvcFacade interface {
	// CreatePlan persists a new plan.
	CreatePlan(ctx context.Context, req dto.CreatePlanRequest, userID string) (*domain.SubscriptionPlan, error)

	// GetPlanByID retrieves a specific plan.
	GetPlanByID(ctx context.Context, planID string) (*domain.SubscriptionPlan, error)

	// ListPlans retrieves plans, optionally only active ones.
	ListPlans(ctx context.Context, activeOnly bool) ([]domain.SubscriptionPlan, error)
}
