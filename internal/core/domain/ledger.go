package domain

import (
	"fmt"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountState is the lifecycle state of a ledger account.
type AccountState string

const (
	// StateActive: the account has (or had) monetary activity; balances may be non-zero.
	StateActive AccountState = "ACTIVE"
	// StateSettled: both balances are exactly zero; the account is still open for new movements.
	StateSettled AccountState = "SETTLED"
	// StateClosed: terminal until explicitly reopened; no movements accepted.
	StateClosed AccountState = "CLOSED"
)

// MovementKind is the type of a ledger movement.
type MovementKind string

const (
	MovementDebt       MovementKind = "DEBT"
	MovementCredit     MovementKind = "CREDIT"
	MovementPayment    MovementKind = "PAYMENT"
	MovementAdjustment MovementKind = "ADJUSTMENT"
)

// AdjustmentDirection carries the sign of an ADJUSTMENT movement explicitly.
// The amount itself stays strictly positive; the direction says which balance grows.
type AdjustmentDirection string

const (
	AdjustDebtIncrease   AdjustmentDirection = "DEBT_INCREASE"
	AdjustCreditIncrease AdjustmentDirection = "CREDIT_INCREASE"
)

// LedgerAccount is the per-member current account: a running balance of owed
// (debt) and overpaid (credit) amounts, separate from subscription payments.
// Both balances are non-negative exact decimals.
type LedgerAccount struct {
	AccountID     string          `json:"accountID"` // Primary Key (UUID)
	MemberID      string          `json:"memberID"`  // FK -> members.member_id
	DebtBalance   decimal.Decimal `json:"debtBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	State         AccountState    `json:"state"`
	AuditFields
}

// Movement is a single typed change applied to a ledger account's balances.
// Immutable once created: the ledger never rewrites history, only appends.
type Movement struct {
	MovementID  string              `json:"movementID"` // Primary Key (UUID)
	AccountID   string              `json:"accountID"`  // FK -> ledger_accounts.account_id
	Kind        MovementKind        `json:"kind"`
	Direction   AdjustmentDirection `json:"direction,omitempty"` // Set only for ADJUSTMENT
	Amount      decimal.Decimal     `json:"amount"`              // Strictly positive
	Description string              `json:"description"`
	PaymentID   *string             `json:"paymentID,omitempty"` // Set when the movement settles a payment
	AuditFields
}

// ApplyMovement mutates the account balances per the movement kind and
// recomputes the lifecycle state. The numerical contract:
//   - DEBT:       debt += amount
//   - CREDIT:     credit += amount
//   - ADJUSTMENT: debt += amount or credit += amount per Direction
//   - PAYMENT:    debt-first allocation; leftover consumes existing credit,
//     anything still remaining is banked as new credit (overpayment
//     is kept, never discarded)
//
// Movements are rejected on a CLOSED account and for non-positive amounts.
func (a *LedgerAccount) ApplyMovement(m Movement) error {
	if a.State == StateClosed {
		return fmt.Errorf("%w: account %s is closed", apperrors.ErrInvalidState, a.AccountID)
	}
	if !m.Amount.IsPositive() {
		return fmt.Errorf("%w: movement amount must be positive, got %s", apperrors.ErrInvalidAmount, m.Amount.String())
	}

	switch m.Kind {
	case MovementDebt:
		a.DebtBalance = a.DebtBalance.Add(m.Amount)
	case MovementCredit:
		a.CreditBalance = a.CreditBalance.Add(m.Amount)
	case MovementAdjustment:
		switch m.Direction {
		case AdjustDebtIncrease:
			a.DebtBalance = a.DebtBalance.Add(m.Amount)
		case AdjustCreditIncrease:
			a.CreditBalance = a.CreditBalance.Add(m.Amount)
		default:
			return fmt.Errorf("%w: adjustment requires an explicit direction", apperrors.ErrValidation)
		}
	case MovementPayment:
		a.allocatePayment(m.Amount)
	default:
		return fmt.Errorf("%w: unknown movement kind %q", apperrors.ErrValidation, m.Kind)
	}

	a.recomputeState()
	return nil
}

// allocatePayment applies a payment amount debt-first:
//  1. clear as much debt as the payment covers
//  2. any remainder consumes pre-existing credit
//  3. whatever is still left becomes new credit
func (a *LedgerAccount) allocatePayment(amount decimal.Decimal) {
	applyToDebt := decimal.Min(amount, a.DebtBalance)
	a.DebtBalance = a.DebtBalance.Sub(applyToDebt)
	remaining := amount.Sub(applyToDebt)

	if remaining.IsPositive() {
		applyToCredit := decimal.Min(remaining, a.CreditBalance)
		a.CreditBalance = a.CreditBalance.Sub(applyToCredit)
		remaining = remaining.Sub(applyToCredit)
	}

	if remaining.IsPositive() {
		a.CreditBalance = a.CreditBalance.Add(remaining)
	}
}

// Close transitions the account to CLOSED. Precondition: not already closed
// and the net balance (debt - credit) is exactly zero.
func (a *LedgerAccount) Close() error {
	if a.State == StateClosed {
		return fmt.Errorf("%w: account %s is already closed", apperrors.ErrInvalidState, a.AccountID)
	}
	if !a.DebtBalance.Equal(a.CreditBalance) {
		return fmt.Errorf("%w: debt %s, credit %s", apperrors.ErrNotSettleable, a.DebtBalance.String(), a.CreditBalance.String())
	}
	a.State = StateClosed
	return nil
}

// Reopen exits the CLOSED state; the new state is recomputed from balances.
func (a *LedgerAccount) Reopen() error {
	if a.State != StateClosed {
		return fmt.Errorf("%w: account %s is not closed", apperrors.ErrInvalidState, a.AccountID)
	}
	a.State = StateActive
	a.recomputeState()
	return nil
}

func (a *LedgerAccount) recomputeState() {
	if a.State == StateClosed {
		return
	}
	if a.DebtBalance.IsZero() && a.CreditBalance.IsZero() {
		a.State = StateSettled
	} else {
		a.State = StateActive
	}
}
