package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// LedgerAccount represents a member's current account row. Both balances are
// non-negative NUMERIC columns; State is recomputed on every mutation.
type LedgerAccount struct {
	AccountID     string          `db:"account_id"`
	MemberID      string          `db:"member_id"`
	DebtBalance   decimal.Decimal `db:"debt_balance"`
	CreditBalance decimal.Decimal `db:"credit_balance"`
	State         string          `db:"state"`
	AuditFields
}

// Movement represents one immutable ledger movement row.
// Direction and PaymentID are nullable: Direction is set only for
// adjustments, PaymentID only for settlement movements.
type Movement struct {
	MovementID  string          `db:"movement_id"`
	AccountID   string          `db:"account_id"`
	Kind        string          `db:"kind"`
	Direction   sql.NullString  `db:"direction"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	PaymentID   sql.NullString  `db:"payment_id"`
	AuditFields
}
