package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	portsrepo "github.com/gymtrack/gymtrack-api/internal/core/ports/repositories"
	"github.com/gymtrack/gymtrack-api/internal/models"
	"github.com/gymtrack/gymtrack-api/internal/utils/mapping"
	"github.com/gymtrack/gymtrack-api/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAttendanceRepository struct {
	BaseRepository
}

// newPgxAttendanceRepository creates a new repository for the attendance audit log.
func newPgxAttendanceRepository(pool *pgxpool.Pool) portsrepo.AttendanceRepositoryFacade {
	return &PgxAttendanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AttendanceRepositoryFacade = (*PgxAttendanceRepository)(nil)

// SaveAttendanceEvent appends one attendance event.
func (r *PgxAttendanceRepository) SaveAttendanceEvent(ctx context.Context, event domain.AttendanceEvent) error {
	modelEvent := mapping.ToModelAttendanceEvent(event)
	query := `
		INSERT INTO attendance_events (attendance_id, member_id, occurred_at, tier)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelEvent.AttendanceID,
		modelEvent.MemberID,
		modelEvent.Timestamp,
		modelEvent.Tier,
	)
	if err != nil {
		return fmt.Errorf("failed to save attendance event %s: %w", modelEvent.AttendanceID, err)
	}
	return nil
}

// ListAttendanceByMemberID retrieves a paginated attendance history for a
// member using token-based pagination, newest first.
func (r *PgxAttendanceRepository) ListAttendanceByMemberID(ctx context.Context, memberID string, limit int, nextToken *string) ([]domain.AttendanceEvent, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine if there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT attendance_id, member_id, occurred_at, tier
		FROM attendance_events
		WHERE member_id = $1
	`
	orderByClause := `ORDER BY occurred_at DESC, attendance_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{memberID}

	if nextToken != nil && *nextToken != "" {
		lastOccurredAt, lastID, decodeErr := pagination.DecodeCursorToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (occurred_at, attendance_id) < ($2, $3)`
		args = append(args, lastOccurredAt, lastID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query attendance for member "+memberID, err)
	}
	defer rows.Close()

	events := make([]models.AttendanceEvent, 0, fetchLimit)
	for rows.Next() {
		var e models.AttendanceEvent
		if err := rows.Scan(&e.AttendanceID, &e.MemberID, &e.Timestamp, &e.Tier); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan attendance row for member "+memberID, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating attendance rows for member "+memberID, err)
	}

	var nextTokenVal *string
	if len(events) > limit {
		last := events[limit-1]
		token := pagination.EncodeCursorToken(last.Timestamp, last.AttendanceID)
		nextTokenVal = &token
		events = events[:limit]
	}

	return mapping.ToDomainAttendanceEventSlice(events), nextTokenVal, nil
}
