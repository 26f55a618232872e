package models

import "time"

// Subscription represents a time-bounded entitlement row. Dates are inclusive
// calendar dates stored as UTC midnights.
type Subscription struct {
	SubscriptionID string    `db:"subscription_id"`
	MemberID       string    `db:"member_id"`
	PlanID         string    `db:"plan_id"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	Active         bool      `db:"active"`
	AuditFields
}
