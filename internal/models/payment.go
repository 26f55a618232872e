package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Payment represents a payment receipt row tied to a subscription.
type Payment struct {
	PaymentID              string          `db:"payment_id"`
	SubscriptionID         string          `db:"subscription_id"`
	DirectAmount           decimal.Decimal `db:"direct_amount"`
	LedgerSettlementAmount decimal.Decimal `db:"ledger_settlement_amount"`
	SettlementMovementID   sql.NullString  `db:"settlement_movement_id"`
	SettlementSkipped      bool            `db:"settlement_skipped"`
	AuditFields
}
