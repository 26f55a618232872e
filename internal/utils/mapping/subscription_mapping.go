package mapping

import (
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/gymtrack/gymtrack-api/internal/models"
)

// ToModelSubscription converts a domain SubscriptionWindow to a model Subscription
func ToModelSubscription(d domain.SubscriptionWindow) models.Subscription {
	return models.Subscription{
		SubscriptionID: d.SubscriptionID,
		MemberID:       d.MemberID,
		PlanID:         d.PlanID,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		Active:         d.Active,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubscription converts a model Subscription to a domain SubscriptionWindow
func ToDomainSubscription(m models.Subscription) domain.SubscriptionWindow {
	return domain.SubscriptionWindow{
		SubscriptionID: m.SubscriptionID,
		MemberID:       m.MemberID,
		PlanID:         m.PlanID,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		Active:         m.Active,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSubscriptionSlice converts a slice of model subscriptions to domain windows
func ToDomainSubscriptionSlice(ms []models.Subscription) []domain.SubscriptionWindow {
	ds := make([]domain.SubscriptionWindow, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSubscription(m)
	}
	return ds
}
