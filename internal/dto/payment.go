package dto

import (
	"time"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest defines the data needed to record a combined payment:
// a direct amount attributed to the subscription plus an optional settlement
// applied to the member's current account.
type RecordPaymentRequest struct {
	SubscriptionID         string           `json:"subscriptionID" binding:"required"`
	DirectAmount           decimal.Decimal  `json:"directAmount"`
	LedgerSettlementAmount *decimal.Decimal `json:"ledgerSettlementAmount"`
	LedgerAccountID        *string          `json:"ledgerAccountID"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID              string          `json:"paymentID"`
	SubscriptionID         string          `json:"subscriptionID"`
	DirectAmount           decimal.Decimal `json:"directAmount"`
	LedgerSettlementAmount decimal.Decimal `json:"ledgerSettlementAmount"`
	SettlementMovementID   *string         `json:"settlementMovementID,omitempty"`
	SettlementSkipped      bool            `json:"settlementSkipped"`
	CreatedAt              time.Time       `json:"createdAt"`
	CreatedBy              string          `json:"createdBy"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:              p.PaymentID,
		SubscriptionID:         p.SubscriptionID,
		DirectAmount:           p.DirectAmount,
		LedgerSettlementAmount: p.LedgerSettlementAmount,
		SettlementMovementID:   p.SettlementMovementID,
		SettlementSkipped:      p.SettlementSkipped,
		CreatedAt:              p.CreatedAt,
		CreatedBy:              p.CreatedBy,
	}
}
