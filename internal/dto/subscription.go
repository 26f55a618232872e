package dto

import (
	"time"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
)

// CreateSubscriptionRequest defines the data needed to purchase a subscription window.
// StartDate defaults to today when omitted.
type CreateSubscriptionRequest struct {
	PlanID    string     `json:"planID" binding:"required"`
	StartDate *time.Time `json:"startDate"`
}

// SubscriptionResponse defines the data returned for a subscription window.
type SubscriptionResponse struct {
	SubscriptionID string    `json:"subscriptionID"`
	MemberID       string    `json:"memberID"`
	PlanID         string    `json:"planID"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ToSubscriptionResponse converts a domain.SubscriptionWindow to its DTO
func ToSubscriptionResponse(s *domain.SubscriptionWindow) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID: s.SubscriptionID,
		MemberID:       s.MemberID,
		PlanID:         s.PlanID,
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		Active:         s.Active,
		CreatedAt:      s.CreatedAt,
		CreatedBy:      s.CreatedBy,
	}
}

// ToListSubscriptionResponse converts a slice of windows to response DTOs
func ToListSubscriptionResponse(subs []domain.SubscriptionWindow) []SubscriptionResponse {
	res := make([]SubscriptionResponse, len(subs))
	for i, s := range subs {
		res[i] = ToSubscriptionResponse(&s)
	}
	return res
}
