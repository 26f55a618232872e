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

// subscriptionService provides subscription window operations.
type subscriptionService struct {
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	planRepo         portsrepo.PlanRepositoryFacade
	memberRepo       portsrepo.MemberReader
	facilityLoc      *time.Location
}

// NewSubscriptionService creates a new SubscriptionService. facilityLoc is the
// gym's local timezone, used to anchor default start dates to the local
// calendar day.
func NewSubscriptionService(
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade,
	planRepo portsrepo.PlanRepositoryFacade,
	memberRepo portsrepo.MemberReader,
	facilityLoc *time.Location,
) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		memberRepo:       memberRepo,
		facilityLoc:      facilityLoc,
	}
}

var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

// PurchaseSubscription creates a new window for the member from the plan's
// duration. The window covers DurationDays inclusive calendar days starting at
// the requested date.
func (s *subscriptionService) PurchaseSubscription(ctx context.Context, memberID string, req dto.CreateSubscriptionRequest, userID string) (*domain.SubscriptionWindow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !member.IsActive {
		return nil, fmt.Errorf("%w: member %s is deactivated", apperrors.ErrInvalidState, memberID)
	}

	plan, err := s.planRepo.FindPlanByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("%w: plan %s is no longer offered", apperrors.ErrInvalidState, req.PlanID)
	}

	now := time.Now().UTC()
	start := domain.NormalizeDate(now, s.facilityLoc)
	if req.StartDate != nil {
		start = domain.NormalizeDate(*req.StartDate, s.facilityLoc)
	}
	// DurationDays counts both endpoints: a 30-day plan starting on the 1st
	// ends on the 30th.
	end := start.AddDate(0, 0, plan.DurationDays-1)

	subscription := domain.SubscriptionWindow{
		SubscriptionID: uuid.NewString(),
		MemberID:       memberID,
		PlanID:         plan.PlanID,
		StartDate:      start,
		EndDate:        end,
		Active:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.subscriptionRepo.SaveSubscription(ctx, subscription); err != nil {
		logger.Error("Failed to save subscription", slog.String("error", err.Error()), slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	logger.Info("Subscription purchased",
		slog.String("subscription_id", subscription.SubscriptionID),
		slog.String("member_id", memberID),
		slog.String("plan_id", plan.PlanID),
		slog.Time("end_date", end))
	return &subscription, nil
}

// CancelSubscription flips a window to inactive; windows are never deleted.
func (s *subscriptionService) CancelSubscription(ctx context.Context, subscriptionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.subscriptionRepo.CancelSubscription(ctx, subscriptionID, userID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to cancel subscription", slog.String("error", err.Error()), slog.String("subscription_id", subscriptionID))
		}
		return err
	}

	logger.Info("Subscription cancelled", slog.String("subscription_id", subscriptionID))
	return nil
}

// ListMemberSubscriptions retrieves all windows for a member, newest first.
func (s *subscriptionService) ListMemberSubscriptions(ctx context.Context, memberID string) ([]domain.SubscriptionWindow, error) {
	subs, err := s.subscriptionRepo.ListSubscriptionsByMemberID(ctx, memberID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list subscriptions", slog.String("error", err.Error()), slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

// GetLatestActiveSubscription returns the member's active window with the
// latest end date, or nil when the member has none. The nil translation keeps
// "no subscription" a domain fact rather than a lookup failure.
func (s *subscriptionService) GetLatestActiveSubscription(ctx context.Context, memberID string, asOf time.Time) (*domain.SubscriptionWindow, error) {
	window, err := s.subscriptionRepo.FindLatestActiveSubscription(ctx, memberID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		middleware.GetLoggerFromCtx(ctx).Error("Failed to find latest subscription", slog.String("error", err.Error()), slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to find latest subscription: %w", err)
	}
	return window, nil
}
