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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMemberRepository struct {
	BaseRepository
}

// newPgxMemberRepository creates a new repository for member data.
func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

const memberColumns = `member_id, external_id, first_name, last_name, free_access, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanMember(row pgx.Row) (models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.MemberID,
		&m.ExternalID,
		&m.FirstName,
		&m.LastName,
		&m.FreeAccess,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveMember persists a new member.
func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	modelMember := mapping.ToModelMember(member)
	query := `
		INSERT INTO members (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelMember.MemberID,
		modelMember.ExternalID,
		modelMember.FirstName,
		modelMember.LastName,
		modelMember.FreeAccess,
		modelMember.IsActive,
		modelMember.CreatedAt,
		modelMember.CreatedBy,
		modelMember.LastUpdatedAt,
		modelMember.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: member with external ID %s already exists", apperrors.ErrDuplicate, modelMember.ExternalID)
			}
		}
		return fmt.Errorf("failed to save member %s: %w", modelMember.MemberID, err)
	}
	return nil
}

// FindMemberByID retrieves a member by its internal identifier.
func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1;`

	modelMember, err := scanMember(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by ID %s: %w", memberID, err)
	}

	domainMember := mapping.ToDomainMember(modelMember)
	return &domainMember, nil
}

// FindMemberByExternalID retrieves a member by national identity number.
func (r *PgxMemberRepository) FindMemberByExternalID(ctx context.Context, externalID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE external_id = $1;`

	modelMember, err := scanMember(r.Pool.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member by external ID: %w", err)
	}

	domainMember := mapping.ToDomainMember(modelMember)
	return &domainMember, nil
}

// ListMembers retrieves a paginated list of members.
func (r *PgxMemberRepository) ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	modelMembers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Member, error) {
		return scanMember(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan members: %w", err)
	}

	return mapping.ToDomainMemberSlice(modelMembers), nil
}

// UpdateMember updates an existing member's details.
func (r *PgxMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	modelMember := mapping.ToModelMember(member)
	query := `
		UPDATE members
		SET first_name = $2, last_name = $3, free_access = $4, last_updated_at = $5, last_updated_by = $6
		WHERE member_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelMember.MemberID,
		modelMember.FirstName,
		modelMember.LastName,
		modelMember.FreeAccess,
		modelMember.LastUpdatedAt,
		modelMember.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update member %s: %w", modelMember.MemberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateMember marks a member as inactive.
func (r *PgxMemberRepository) DeactivateMember(ctx context.Context, memberID string, userID string, now time.Time) error {
	query := `
		UPDATE members
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE member_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, memberID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate member %s: %w", memberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
