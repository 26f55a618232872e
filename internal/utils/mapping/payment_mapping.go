package mapping

import (
	"database/sql"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/gymtrack/gymtrack-api/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	m := models.Payment{
		PaymentID:              d.PaymentID,
		SubscriptionID:         d.SubscriptionID,
		DirectAmount:           d.DirectAmount,
		LedgerSettlementAmount: d.LedgerSettlementAmount,
		SettlementSkipped:      d.SettlementSkipped,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
	if d.SettlementMovementID != nil {
		m.SettlementMovementID = sql.NullString{String: *d.SettlementMovementID, Valid: true}
	}
	return m
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	d := domain.Payment{
		PaymentID:              m.PaymentID,
		SubscriptionID:         m.SubscriptionID,
		DirectAmount:           m.DirectAmount,
		LedgerSettlementAmount: m.LedgerSettlementAmount,
		SettlementSkipped:      m.SettlementSkipped,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
	if m.SettlementMovementID.Valid {
		movementID := m.SettlementMovementID.String
		d.SettlementMovementID = &movementID
	}
	return d
}

// ToDomainPaymentSlice converts a slice of model payments to domain payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
