package models

import "github.com/shopspring/decimal"

// SubscriptionPlan represents a purchasable plan row.
type SubscriptionPlan struct {
	PlanID       string          `db:"plan_id"`
	Name         string          `db:"name"`
	DurationDays int             `db:"duration_days"`
	Price        decimal.Decimal `db:"price"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
