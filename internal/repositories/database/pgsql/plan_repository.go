package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	portsrepo "github.com/gymtrack/gymtrack-api/internal/core/ports/repositories"
	"github.com/gymtrack/gymtrack-api/internal/models"
	"github.com/gymtrack/gymtrack-api/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPlanRepository struct {
	BaseRepository
}

// newPgxPlanRepository creates a new repository for subscription plan data.
func newPgxPlanRepository(pool *pgxpool.Pool) portsrepo.PlanRepositoryFacade {
	return &PgxPlanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PlanRepositoryFacade = (*PgxPlanRepository)(nil)

const planColumns = `plan_id, name, duration_days, price, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanPlan(row pgx.Row) (models.SubscriptionPlan, error) {
	var p models.SubscriptionPlan
	err := row.Scan(
		&p.PlanID,
		&p.Name,
		&p.DurationDays,
		&p.Price,
		&p.IsActive,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// SavePlan persists a new subscription plan.
func (r *PgxPlanRepository) SavePlan(ctx context.Context, plan domain.SubscriptionPlan) error {
	modelPlan := mapping.ToModelPlan(plan)
	query := `
		INSERT INTO subscription_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelPlan.PlanID,
		modelPlan.Name,
		modelPlan.DurationDays,
		modelPlan.Price,
		modelPlan.IsActive,
		modelPlan.CreatedAt,
		modelPlan.CreatedBy,
		modelPlan.LastUpdatedAt,
		modelPlan.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: plan %s already exists", apperrors.ErrDuplicate, modelPlan.Name)
			}
		}
		return fmt.Errorf("failed to save plan %s: %w", modelPlan.PlanID, err)
	}
	return nil
}

// FindPlanByID retrieves a plan by its ID.
func (r *PgxPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE plan_id = $1;`

	modelPlan, err := scanPlan(r.Pool.QueryRow(ctx, query, planID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plan by ID %s: %w", planID, err)
	}

	domainPlan := mapping.ToDomainPlan(modelPlan)
	return &domainPlan, nil
}

// ListPlans retrieves all plans, optionally only active ones.
func (r *PgxPlanRepository) ListPlans(ctx context.Context, activeOnly bool) ([]domain.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	modelPlans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SubscriptionPlan, error) {
		return scanPlan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan plans: %w", err)
	}

	return mapping.ToDomainPlanSlice(modelPlans), nil
}
