package domain

import "github.com/shopspring/decimal"

// SubscriptionPlan defines a purchasable subscription duration and its price.
type SubscriptionPlan struct {
	PlanID       string          `json:"planID"` // Primary Key (UUID)
	Name         string          `json:"name"`
	DurationDays int             `json:"durationDays"` // Length of the window granted on purchase
	Price        decimal.Decimal `json:"price"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
