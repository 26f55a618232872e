package repositories

import (
	"context"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
)

// SubscriptionReader defines read operations for subscription windows
type SubscriptionReader interface {
	// FindSubscriptionByID retrieves a specific subscription window.
	FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.SubscriptionWindow, error)

	// FindLatestActiveSubscription retrieves the active window with the latest
	// end date for the member, or ErrNotFound when the member has none.
	// asOf is accepted for audit/query symmetry; the latest window is returned
	// even when already expired (the decision engine classifies it).
	FindLatestActiveSubscription(ctx context.Context, memberID string, asOf time.Time) (*domain.SubscriptionWindow, error)

	// ListSubscriptionsByMemberID retrieves all windows for a member, newest first.
	ListSubscriptionsByMemberID(ctx context.Context, memberID string) ([]domain.SubscriptionWindow, error)
}

// SubscriptionWriter defines write operations for subscription windows
type SubscriptionWriter interface {
	// SaveSubscription persists a new subscription window.
	SaveSubscription(ctx context.Context, subscription domain.SubscriptionWindow) error

	// CancelSubscription flips a window to inactive. Windows are never deleted.
	CancelSubscription(ctx context.Context, subscriptionID string, userID string, now time.Time) error
}

// SubscriptionRepositoryFacade combines all subscription repository interfaces
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
	SubscriptionWriter
}
