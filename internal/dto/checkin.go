package dto

import (
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
)

// CheckInRequest is the payload submitted by the entrance terminal.
type CheckInRequest struct {
	ExternalID string `json:"externalID" binding:"required"`
}

// MemberDisplay carries the member fields shown on the check-in screen.
type MemberDisplay struct {
	MemberID   string `json:"memberID"`
	ExternalID string `json:"externalID"`
	Name       string `json:"name"`
}

// CheckInResponse is returned for every evaluated check-in attempt, granted or
// denied. Exactly one of DaysRemaining/DaysOverdue is set, per the tier.
type CheckInResponse struct {
	Granted       bool              `json:"granted"`
	Tier          domain.AccessTier `json:"tier"`
	DaysRemaining *int              `json:"daysRemaining,omitempty"`
	DaysOverdue   *int              `json:"daysOverdue,omitempty"`
	Message       string            `json:"message"`
	Member        *MemberDisplay    `json:"member,omitempty"`
}

// ToCheckInResponse builds the response payload from a decision and the member.
func ToCheckInResponse(decision domain.AccessDecision, member *domain.Member) CheckInResponse {
	resp := CheckInResponse{
		Granted: decision.Granted,
		Tier:    decision.Tier,
		Message: decision.Message,
	}
	switch decision.Tier {
	case domain.TierCurrent:
		remaining := decision.DaysRemaining
		resp.DaysRemaining = &remaining
	case domain.TierGrace, domain.TierExpired:
		overdue := decision.DaysOverdue
		resp.DaysOverdue = &overdue
	}
	if member != nil {
		resp.Member = &MemberDisplay{
			MemberID:   member.MemberID,
			ExternalID: member.ExternalID,
			Name:       member.DisplayName(),
		}
	}
	return resp
}
