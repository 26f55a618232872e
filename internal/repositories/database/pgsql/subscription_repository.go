package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	portsrepo "github.com/gymtrack/gymtrack-api/internal/core/ports/repositories"
	"github.com/gymtrack/gymtrack-api/internal/models"
	"github.com/gymtrack/gymtrack-api/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSubscriptionRepository struct {
	BaseRepository
}

// newPgxSubscriptionRepository creates a new repository for subscription window data.
func newPgxSubscriptionRepository(pool *pgxpool.Pool) portsrepo.SubscriptionRepositoryFacade {
	return &PgxSubscriptionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SubscriptionRepositoryFacade = (*PgxSubscriptionRepository)(nil)

const subscriptionColumns = `subscription_id, member_id, plan_id, start_date, end_date, active, created_at, created_by, last_updated_at, last_updated_by`

func scanSubscription(row pgx.Row) (models.Subscription, error) {
	var s models.Subscription
	err := row.Scan(
		&s.SubscriptionID,
		&s.MemberID,
		&s.PlanID,
		&s.StartDate,
		&s.EndDate,
		&s.Active,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

// SaveSubscription persists a new subscription window.
func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, subscription domain.SubscriptionWindow) error {
	modelSub := mapping.ToModelSubscription(subscription)
	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelSub.SubscriptionID,
		modelSub.MemberID,
		modelSub.PlanID,
		modelSub.StartDate,
		modelSub.EndDate,
		modelSub.Active,
		modelSub.CreatedAt,
		modelSub.CreatedBy,
		modelSub.LastUpdatedAt,
		modelSub.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save subscription %s: %w", modelSub.SubscriptionID, err)
	}
	return nil
}

// FindSubscriptionByID retrieves a subscription window by its ID.
func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.SubscriptionWindow, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE subscription_id = $1;`

	modelSub, err := scanSubscription(r.Pool.QueryRow(ctx, query, subscriptionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription by ID %s: %w", subscriptionID, err)
	}

	domainSub := mapping.ToDomainSubscription(modelSub)
	return &domainSub, nil
}

// FindLatestActiveSubscription retrieves the active window with the latest end
// date for the member. The window is returned even when already expired;
// classification happens upstream.
func (r *PgxSubscriptionRepository) FindLatestActiveSubscription(ctx context.Context, memberID string, asOf time.Time) (*domain.SubscriptionWindow, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE member_id = $1 AND active = TRUE
		ORDER BY end_date DESC, created_at DESC
		LIMIT 1;
	`
	modelSub, err := scanSubscription(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest subscription for member %s: %w", memberID, err)
	}

	domainSub := mapping.ToDomainSubscription(modelSub)
	return &domainSub, nil
}

// ListSubscriptionsByMemberID retrieves all windows for a member, newest first.
func (r *PgxSubscriptionRepository) ListSubscriptionsByMemberID(ctx context.Context, memberID string) ([]domain.SubscriptionWindow, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE member_id = $1
		ORDER BY start_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions for member %s: %w", memberID, err)
	}
	defer rows.Close()

	modelSubs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Subscription, error) {
		return scanSubscription(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscriptions: %w", err)
	}

	return mapping.ToDomainSubscriptionSlice(modelSubs), nil
}

// CancelSubscription flips a window to inactive. Windows are never deleted.
func (r *PgxSubscriptionRepository) CancelSubscription(ctx context.Context, subscriptionID string, userID string, now time.Time) error {
	query := `
		UPDATE subscriptions
		SET active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE subscription_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, subscriptionID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to cancel subscription %s: %w", subscriptionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
