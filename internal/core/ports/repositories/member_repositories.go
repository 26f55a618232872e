package repositories

import (
	"context"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
)

// MemberReader defines read operations for member data
type MemberReader interface {
	// FindMemberByID retrieves a specific member by its internal identifier.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// FindMemberByExternalID retrieves a member by their national identity number.
	FindMemberByExternalID(ctx context.Context, externalID string) (*domain.Member, error)

	// ListMembers retrieves a paginated list of members.
	ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error)
}

// MemberWriter defines write operations for member data
type MemberWriter interface {
	// SaveMember persists a new member.
	SaveMember(ctx context.Context, member domain.Member) error

	// UpdateMember updates an existing member's details.
	UpdateMember(ctx context.Context, member domain.Member) error

	// DeactivateMember marks a member as inactive.
	DeactivateMember(ctx context.Context, memberID string, userID string, now time.Time) error
}

// MemberRepositoryFacade combines all member-related repository interfaces
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}
