package services

import (
	"context"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/gymtrack/gymtrack-api/internal/dto"
)

// MemberReaderSvc defines read operations for member data
type MemberReaderSvc interface {
	// GetMemberByID retrieves a specific member by internal ID.
	GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// GetMemberByExternalID retrieves a member by national identity number.
	GetMemberByExternalID(ctx context.Context, externalID string) (*domain.Member, error)

	// ListMembers retrieves a paginated list of members.
	ListMembers(ctx context.Context, params dto.ListMembersParams) ([]domain.Member, error)
}

// MemberWriterSvc defines write operations for member data
type MemberWriterSvc interface {
	// CreateMember registers a new member.
	CreateMember(ctx context.Context, req dto.CreateMemberRequest, userID string) (*domain.Member, error)

	// UpdateMember updates an existing member's details.
	UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest, userID string) (*domain.Member, error)

	// DeactivateMember marks a member as inactive.
	DeactivateMember(ctx context.Context, memberID string, userID string) error
}

// SubscriptionLookupSvc is the read-only lookup the check-in flow depends on.
type SubscriptionLookupSvc interface {
	// GetLatestActiveSubscription returns the member's active window with the
	// latest end date, or nil when the member has none.
	GetLatestActiveSubscription(ctx context.Context, memberID string, asOf time.Time) (*domain.SubscriptionWindow, error)
}

// MemberSvcFacade combines all member-related service interfaces
type MemberSvcFacade interface {
	MemberReaderSvc
	MemberWriterSvc
}
