package mapping

import (
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/gymtrack/gymtrack-api/internal/models"
)

// ToModelPlan converts a domain SubscriptionPlan to a model SubscriptionPlan
func ToModelPlan(d domain.SubscriptionPlan) models.SubscriptionPlan {
	return models.SubscriptionPlan{
		PlanID:       d.PlanID,
		Name:         d.Name,
		DurationDays: d.DurationDays,
		Price:        d.Price,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPlan converts a model SubscriptionPlan to a domain SubscriptionPlan
func ToDomainPlan(m models.SubscriptionPlan) domain.SubscriptionPlan {
	return domain.SubscriptionPlan{
		PlanID:       m.PlanID,
		Name:         m.Name,
		DurationDays: m.DurationDays,
		Price:        m.Price,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPlanSlice converts a slice of model plans to domain plans
func ToDomainPlanSlice(ms []models.SubscriptionPlan) []domain.SubscriptionPlan {
	ds := make([]domain.SubscriptionPlan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPlan(m)
	}
	return ds
}
