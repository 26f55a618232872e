package dto

import (
	"time"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePlanRequest defines the data needed to create a subscription plan.
type CreatePlanRequest struct {
	Name         string          `json:"name" binding:"required"`
	DurationDays int             `json:"durationDays" binding:"required,gt=0"`
	Price        decimal.Decimal `json:"price" binding:"required"`
}

// PlanResponse defines the data returned for a subscription plan.
type PlanResponse struct {
	PlanID       string          `json:"planID"`
	Name         string          `json:"name"`
	DurationDays int             `json:"durationDays"`
	Price        decimal.Decimal `json:"price"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToPlanResponse converts a domain.SubscriptionPlan to PlanResponse DTO
func ToPlanResponse(p *domain.SubscriptionPlan) PlanResponse {
	return PlanResponse{
		PlanID:       p.PlanID,
		Name:         p.Name,
		DurationDays: p.DurationDays,
		Price:        p.Price,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

// ToListPlanResponse converts a slice of plans to response DTOs
func ToListPlanResponse(plans []domain.SubscriptionPlan) []PlanResponse {
	res := make([]PlanResponse, len(plans))
	for i, p := range plans {
		res[i] = ToPlanResponse(&p)
	}
	return res
}
