package repositories

import (
	"context"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
)

// AttendanceRepositoryFacade defines operations for the attendance audit log.
// The log is append-only: there are no update or delete operations.
type AttendanceRepositoryFacade interface {
	// SaveAttendanceEvent appends one attendance event.
	SaveAttendanceEvent(ctx context.Context, event domain.AttendanceEvent) error

	// ListAttendanceByMemberID retrieves a paginated attendance history for a
	// member using token-based pagination, newest first.
	ListAttendanceByMemberID(ctx context.Context, memberID string, limit int, nextToken *string) ([]domain.AttendanceEvent, *string, error)
}
