package dto

import (
	"time"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest defines the data needed to open a current account.
type OpenAccountRequest struct {
	MemberID string `json:"memberID" binding:"required"`
}

// ApplyMovementRequest defines the data needed to apply a ledger movement.
// Direction is required for ADJUSTMENT movements and must be absent otherwise.
type ApplyMovementRequest struct {
	Kind        domain.MovementKind        `json:"kind" binding:"required,oneof=DEBT CREDIT PAYMENT ADJUSTMENT"`
	Direction   domain.AdjustmentDirection `json:"direction" binding:"omitempty,oneof=DEBT_INCREASE CREDIT_INCREASE"`
	Amount      decimal.Decimal            `json:"amount" binding:"required"`
	Description string                     `json:"description" binding:"required"`
}

// AccountResponse defines the data returned for a ledger account.
type AccountResponse struct {
	AccountID     string              `json:"accountID"`
	MemberID      string              `json:"memberID"`
	DebtBalance   decimal.Decimal     `json:"debtBalance"`
	CreditBalance decimal.Decimal     `json:"creditBalance"`
	State         domain.AccountState `json:"state"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.LedgerAccount to AccountResponse DTO
func ToAccountResponse(a *domain.LedgerAccount) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		MemberID:      a.MemberID,
		DebtBalance:   a.DebtBalance,
		CreditBalance: a.CreditBalance,
		State:         a.State,
		CreatedAt:     a.CreatedAt,
		LastUpdatedAt: a.LastUpdatedAt,
	}
}

// MovementResponse defines the data returned for a ledger movement.
type MovementResponse struct {
	MovementID  string                     `json:"movementID"`
	AccountID   string                     `json:"accountID"`
	Kind        domain.MovementKind        `json:"kind"`
	Direction   domain.AdjustmentDirection `json:"direction,omitempty"`
	Amount      decimal.Decimal            `json:"amount"`
	Description string                     `json:"description"`
	PaymentID   *string                    `json:"paymentID,omitempty"`
	CreatedAt   time.Time                  `json:"createdAt"`
	CreatedBy   string                     `json:"createdBy"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse DTO
func ToMovementResponse(m *domain.Movement) MovementResponse {
	return MovementResponse{
		MovementID:  m.MovementID,
		AccountID:   m.AccountID,
		Kind:        m.Kind,
		Direction:   m.Direction,
		Amount:      m.Amount,
		Description: m.Description,
		PaymentID:   m.PaymentID,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// ToMovementResponses converts a slice of movements to response DTOs
func ToMovementResponses(movements []domain.Movement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i, m := range movements {
		res[i] = ToMovementResponse(&m)
	}
	return res
}

// ApplyMovementResponse returns the account balances after a movement.
type ApplyMovementResponse struct {
	Account  AccountResponse  `json:"account"`
	Movement MovementResponse `json:"movement"`
}

// ListMovementsParams defines query parameters for listing movements.
type ListMovementsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListMovementsResponse wraps a page of movements with the pagination token.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}
