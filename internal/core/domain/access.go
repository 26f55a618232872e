package domain

import (
	"fmt"
	"time"
)

// AccessTier classifies an access decision.
type AccessTier string

const (
	TierUnrestricted AccessTier = "UNRESTRICTED" // free-access member
	TierCurrent      AccessTier = "CURRENT"      // subscription not yet expired
	TierGrace        AccessTier = "GRACE"        // expired but inside the overdue tolerance
	TierExpired      AccessTier = "EXPIRED"      // expired beyond tolerance
	TierNone         AccessTier = "NONE"         // no active subscription
)

// Business thresholds for admission. An off-by-one here directly changes who
// is let into the building, so both constants have explicit boundary tests.
const (
	// graceOverdueDays is the maximum number of overdue days still admitted.
	// The tolerance is the closed interval [1, graceOverdueDays]; day 7 is a hard block.
	graceOverdueDays = 6
	// expiryWarningDays is the daysRemaining threshold at or under which the
	// member is warned about upcoming expiry (still granted).
	expiryWarningDays = 7
)

// AccessDecision is the verdict produced for a check-in attempt.
// Exactly one of DaysRemaining/DaysOverdue is meaningful, selected by Tier:
// CURRENT carries DaysRemaining, GRACE and EXPIRED carry DaysOverdue.
type AccessDecision struct {
	Granted       bool       `json:"granted"`
	Tier          AccessTier `json:"tier"`
	DaysRemaining int        `json:"daysRemaining"`
	DaysOverdue   int        `json:"daysOverdue"`
	Message       string     `json:"message"`
}

// NormalizeDate truncates t to midnight of its calendar date in loc,
// re-expressed in UTC so that day arithmetic is immune to DST shifts.
func NormalizeDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole calendar days from a to b; negative when b is before a.
// Both arguments must be normalized dates.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// DecideAccess classifies a member's admission eligibility for today.
// Pure function: no clock, no storage, no side effects. today must be a
// normalized date (see NormalizeDate); window is the latest active
// subscription window or nil when the member has none.
func DecideAccess(today time.Time, freeAccess bool, window *SubscriptionWindow) AccessDecision {
	if freeAccess {
		return AccessDecision{
			Granted: true,
			Tier:    TierUnrestricted,
			Message: "free member - access always granted",
		}
	}

	if window == nil {
		return AccessDecision{
			Granted: false,
			Tier:    TierNone,
			Message: "no active subscription",
		}
	}

	daysRemaining := daysBetween(today, NormalizeDate(window.EndDate, time.UTC))
	if daysRemaining >= 0 {
		msg := "welcome"
		if daysRemaining <= expiryWarningDays {
			msg = fmt.Sprintf("subscription expires in %d days", daysRemaining)
		}
		return AccessDecision{
			Granted:       true,
			Tier:          TierCurrent,
			DaysRemaining: daysRemaining,
			Message:       msg,
		}
	}

	daysOverdue := -daysRemaining
	if daysOverdue <= graceOverdueDays {
		return AccessDecision{
			Granted:     true,
			Tier:        TierGrace,
			DaysOverdue: daysOverdue,
			Message:     fmt.Sprintf("overdue by %d days - please regularize with staff", daysOverdue),
		}
	}

	return AccessDecision{
		Granted:     false,
		Tier:        TierExpired,
		DaysOverdue: daysOverdue,
		Message:     fmt.Sprintf("access denied - overdue by more than %d days", graceOverdueDays),
	}
}
