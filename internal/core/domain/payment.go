package domain

import "github.com/shopspring/decimal"

// Payment is a monetary receipt tied to a subscription. DirectAmount is the
// portion attributed to the subscription itself; LedgerSettlementAmount is an
// optional extra applied to the member's current account as a PAYMENT
// movement. A zero-value payment (both amounts zero) is rejected.
type Payment struct {
	PaymentID              string          `json:"paymentID"`      // Primary Key (UUID)
	SubscriptionID         string          `json:"subscriptionID"` // FK -> subscriptions.subscription_id
	DirectAmount           decimal.Decimal `json:"directAmount"`
	LedgerSettlementAmount decimal.Decimal `json:"ledgerSettlementAmount"`
	SettlementMovementID   *string         `json:"settlementMovementID,omitempty"` // Movement recorded for the settlement portion
	SettlementSkipped      bool            `json:"settlementSkipped"`              // True when the target account was CLOSED at payment time
	AuditFields
}
