package domain

import "time"

// SubscriptionWindow is a time-bounded entitlement granting access.
// StartDate and EndDate are inclusive calendar dates with end-of-day semantics.
// A member may accumulate many windows over time; access decisions only
// consult the active window with the latest EndDate.
// Windows are never deleted; cancellation flips Active to false.
type SubscriptionWindow struct {
	SubscriptionID string    `json:"subscriptionID"` // Primary Key (UUID)
	MemberID       string    `json:"memberID"`       // FK -> members.member_id
	PlanID         string    `json:"planID"`         // FK -> subscription_plans.plan_id
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"` // Invariant: EndDate >= StartDate
	Active         bool      `json:"active"`
	AuditFields
}
