package mapping

import (
	"database/sql"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/gymtrack/gymtrack-api/internal/models"
)

// ToModelLedgerAccount converts a domain LedgerAccount to a model LedgerAccount
func ToModelLedgerAccount(d domain.LedgerAccount) models.LedgerAccount {
	return models.LedgerAccount{
		AccountID:     d.AccountID,
		MemberID:      d.MemberID,
		DebtBalance:   d.DebtBalance,
		CreditBalance: d.CreditBalance,
		State:         string(d.State),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerAccount converts a model LedgerAccount to a domain LedgerAccount
func ToDomainLedgerAccount(m models.LedgerAccount) domain.LedgerAccount {
	return domain.LedgerAccount{
		AccountID:     m.AccountID,
		MemberID:      m.MemberID,
		DebtBalance:   m.DebtBalance,
		CreditBalance: m.CreditBalance,
		State:         domain.AccountState(m.State),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelMovement converts a domain Movement to a model Movement
func ToModelMovement(d domain.Movement) models.Movement {
	m := models.Movement{
		MovementID:  d.MovementID,
		AccountID:   d.AccountID,
		Kind:        string(d.Kind),
		Amount:      d.Amount,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.Direction != "" {
		m.Direction = sql.NullString{String: string(d.Direction), Valid: true}
	}
	if d.PaymentID != nil {
		m.PaymentID = sql.NullString{String: *d.PaymentID, Valid: true}
	}
	return m
}

// ToDomainMovement converts a model Movement to a domain Movement
func ToDomainMovement(m models.Movement) domain.Movement {
	d := domain.Movement{
		MovementID:  m.MovementID,
		AccountID:   m.AccountID,
		Kind:        domain.MovementKind(m.Kind),
		Amount:      m.Amount,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.Direction.Valid {
		d.Direction = domain.AdjustmentDirection(m.Direction.String)
	}
	if m.PaymentID.Valid {
		paymentID := m.PaymentID.String
		d.PaymentID = &paymentID
	}
	return d
}

// ToDomainMovementSlice converts a slice of model movements to domain movements
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	ds := make([]domain.Movement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
