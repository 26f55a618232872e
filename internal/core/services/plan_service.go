package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	portsrepo "github.com/gymtrack/gymtrack-api/internal/core/ports/repositories"
	portssvc "github.com/gymtrack/gymtrack-api/internal/core/ports/services"
	"github.com/gymtrack/gymtrack-api/internal/dto"
	"github.com/gymtrack/gymtrack-api/internal/middleware"
)

// planService provides subscription plan operations.
type planService struct {
	planRepo portsrepo.PlanRepositoryFacade
}

// NewPlanService creates a new PlanService.
func NewPlanService(planRepo portsrepo.PlanRepositoryFacade) portssvc.PlanSvcFacade {
	return &planService{planRepo: planRepo}
}

var _ portssvc.PlanSvcFacade = (*planService)(nil)

// CreatePlan persists a new plan.
func (s *planService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest, userID string) (*domain.SubscriptionPlan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: plan price cannot be negative", apperrors.ErrInvalidAmount)
	}

	now := time.Now().UTC()
	plan := domain.SubscriptionPlan{
		PlanID:       uuid.NewString(),
		Name:         req.Name,
		DurationDays: req.DurationDays,
		Price:        req.Price,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.planRepo.SavePlan(ctx, plan); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		logger.Error("Failed to save plan", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	logger.Info("Plan created", slog.String("plan_id", plan.PlanID), slog.String("name", plan.Name))
	return &plan, nil
}

// GetPlanByID retrieves a specific plan.
func (s *planService) GetPlanByID(ctx context.Context, planID string) (*domain.SubscriptionPlan, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find plan", slog.String("error", err.Error()), slog.String("plan_id", planID))
		}
		return nil, err
	}
	return plan, nil
}

// ListPlans retrieves plans, optionally only active ones.
func (s *planService) ListPlans(ctx context.Context, activeOnly bool) ([]domain.SubscriptionPlan, error) {
	plans, err := s.planRepo.ListPlans(ctx, activeOnly)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list plans", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}
