package dto

import (
	"time"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
)

// CreateMemberRequest defines the data needed to register a new member.
type CreateMemberRequest struct {
	ExternalID string `json:"externalID" binding:"required"`
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	FreeAccess bool   `json:"freeAccess"`
}

// UpdateMemberRequest defines the data allowed for updating a member.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateMemberRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	FreeAccess *bool   `json:"freeAccess"`
}

// MemberResponse defines the data returned for a member.
type MemberResponse struct {
	MemberID      string    `json:"memberID"`
	ExternalID    string    `json:"externalID"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	FreeAccess    bool      `json:"freeAccess"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToMemberResponse converts a domain.Member to MemberResponse DTO
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:      m.MemberID,
		ExternalID:    m.ExternalID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		FreeAccess:    m.FreeAccess,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToListMemberResponse converts a slice of domain.Member to response DTOs
func ToListMemberResponse(members []domain.Member) []MemberResponse {
	res := make([]MemberResponse, len(members))
	for i, m := range members {
		res[i] = ToMemberResponse(&m)
	}
	return res
}

// ListMembersParams defines query parameters for listing members.
type ListMembersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListMembersResponse wraps the list of members.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}
