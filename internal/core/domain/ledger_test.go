package domain_test

import (
	"testing"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func account(debt, credit string, state domain.AccountState) *domain.LedgerAccount {
	return &domain.LedgerAccount{
		AccountID:     "acct-1",
		MemberID:      "member-1",
		DebtBalance:   dec(debt),
		CreditBalance: dec(credit),
		State:         state,
	}
}

func payment(amount string) domain.Movement {
	return domain.Movement{MovementID: "mov-1", AccountID: "acct-1", Kind: domain.MovementPayment, Amount: dec(amount)}
}

func TestApplyMovement_Debt(t *testing.T) {
	acct := account("0", "0", domain.StateSettled)

	err := acct.ApplyMovement(domain.Movement{Kind: domain.MovementDebt, Amount: dec("75.50")})

	require.NoError(t, err)
	assert.True(t, acct.DebtBalance.Equal(dec("75.50")))
	assert.True(t, acct.CreditBalance.IsZero())
	assert.Equal(t, domain.StateActive, acct.State)
}

func TestApplyMovement_Credit(t *testing.T) {
	acct := account("10", "0", domain.StateActive)

	err := acct.ApplyMovement(domain.Movement{Kind: domain.MovementCredit, Amount: dec("5")})

	require.NoError(t, err)
	assert.True(t, acct.DebtBalance.Equal(dec("10")))
	assert.True(t, acct.CreditBalance.Equal(dec("5")))
	assert.Equal(t, domain.StateActive, acct.State)
}

func TestApplyMovement_PaymentOverpaysDebt(t *testing.T) {
	// debt=100, credit=0, payment=150: debt cleared, remainder banked as credit.
	acct := account("100", "0", domain.StateActive)

	err := acct.ApplyMovement(payment("150"))

	require.NoError(t, err)
	assert.True(t, acct.DebtBalance.IsZero())
	assert.True(t, acct.CreditBalance.Equal(dec("50")))
	assert.Equal(t, domain.StateActive, acct.State)
}

func TestApplyMovement_PaymentConsumesExistingCredit(t *testing.T) {
	// debt=0, credit=30, payment=10: payment is absorbed by existing credit.
	acct := account("0", "30", domain.StateActive)

	err := acct.ApplyMovement(payment("10"))

	require.NoError(t, err)
	assert.True(t, acct.DebtBalance.IsZero())
	assert.True(t, acct.CreditBalance.Equal(dec("20")))
	assert.Equal(t, domain.StateActive, acct.State)
}

func TestApplyMovement_PartialPaymentLeavesDebt(t *testing.T) {
	// debt=50, credit=0, payment=20.
	acct := account("50", "0", domain.StateActive)

	err := acct.ApplyMovement(payment("20"))

	require.NoError(t, err)
	assert.True(t, acct.DebtBalance.Equal(dec("30")))
	assert.True(t, acct.CreditBalance.IsZero())
	assert.Equal(t, domain.StateActive, acct.State)
}

func TestApplyMovement_ExactPaymentSettles(t *testing.T) {
	acct := account("40", "0", domain.StateActive)

	err := acct.ApplyMovement(payment("40"))

	require.NoError(t, err)
	assert.True(t, acct.DebtBalance.IsZero())
	assert.True(t, acct.CreditBalance.IsZero())
	assert.Equal(t, domain.StateSettled, acct.State)
}

func TestApplyMovement_SequentialPaymentsDeterministic(t *testing.T) {
	// Two payments of 100 against debt=150 end at debt=0, credit=50
	// whichever order they arrive in.
	acct := account("150", "0", domain.StateActive)
	require.NoError(t, acct.ApplyMovement(payment("100")))
	require.NoError(t, acct.ApplyMovement(payment("100")))

	assert.True(t, acct.DebtBalance.IsZero())
	assert.True(t, acct.CreditBalance.Equal(dec("50")))
}

func TestApplyMovement_Adjustment(t *testing.T) {
	acct := account("0", "0", domain.StateSettled)

	err := acct.ApplyMovement(domain.Movement{
		Kind:      domain.MovementAdjustment,
		Direction: domain.AdjustDebtIncrease,
		Amount:    dec("12.25"),
	})
	require.NoError(t, err)
	assert.True(t, acct.DebtBalance.Equal(dec("12.25")))

	err = acct.ApplyMovement(domain.Movement{
		Kind:      domain.MovementAdjustment,
		Direction: domain.AdjustCreditIncrease,
		Amount:    dec("3"),
	})
	require.NoError(t, err)
	assert.True(t, acct.CreditBalance.Equal(dec("3")))
}

func TestApplyMovement_AdjustmentWithoutDirectionRejected(t *testing.T) {
	acct := account("0", "0", domain.StateSettled)

	err := acct.ApplyMovement(domain.Movement{Kind: domain.MovementAdjustment, Amount: dec("10")})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestApplyMovement_NonPositiveAmountRejected(t *testing.T) {
	acct := account("0", "0", domain.StateSettled)

	for _, amount := range []string{"0", "-5"} {
		err := acct.ApplyMovement(domain.Movement{Kind: domain.MovementDebt, Amount: dec(amount)})
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	}
	assert.True(t, acct.DebtBalance.IsZero())
}

func TestApplyMovement_ClosedAccountRejected(t *testing.T) {
	acct := account("0", "0", domain.StateClosed)

	err := acct.ApplyMovement(payment("10"))

	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	assert.Equal(t, domain.StateClosed, acct.State)
}

func TestClose_RequiresNetZeroBalance(t *testing.T) {
	acct := account("30", "0", domain.StateActive)

	err := acct.Close()

	assert.ErrorIs(t, err, apperrors.ErrNotSettleable)
	assert.Equal(t, domain.StateActive, acct.State)
}

func TestClose_NetZeroWithEqualBalances(t *testing.T) {
	// debt == credit qualifies even when both are non-zero.
	acct := account("20", "20", domain.StateActive)

	require.NoError(t, acct.Close())
	assert.Equal(t, domain.StateClosed, acct.State)
}

func TestClose_AlreadyClosedRejected(t *testing.T) {
	acct := account("0", "0", domain.StateClosed)

	assert.ErrorIs(t, acct.Close(), apperrors.ErrInvalidState)
}

func TestReopen_RecomputesState(t *testing.T) {
	settled := account("0", "0", domain.StateSettled)
	require.NoError(t, settled.Close())
	require.NoError(t, settled.Reopen())
	assert.Equal(t, domain.StateSettled, settled.State)

	active := account("15", "15", domain.StateActive)
	require.NoError(t, active.Close())
	require.NoError(t, active.Reopen())
	assert.Equal(t, domain.StateActive, active.State)
}

func TestReopen_OpenAccountRejected(t *testing.T) {
	acct := account("0", "0", domain.StateSettled)

	assert.ErrorIs(t, acct.Reopen(), apperrors.ErrInvalidState)
}
