package services

import (
	"context"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/gymtrack/gymtrack-api/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger accounts
type LedgerReaderSvc interface {
	// GetAccount retrieves a ledger account by ID.
	GetAccount(ctx context.Context, accountID string) (*domain.LedgerAccount, error)

	// GetAccountByMemberID retrieves the member's ledger account.
	GetAccountByMemberID(ctx context.Context, memberID string) (*domain.LedgerAccount, error)

	// ListMovements retrieves a paginated movement history for an account.
	ListMovements(ctx context.Context, accountID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)
}

// LedgerWriterSvc defines the mutating ledger operations
type LedgerWriterSvc interface {
	// OpenAccount creates a new current account for the member. At most one
	// open account per member; a second open attempt fails with ErrDuplicate.
	OpenAccount(ctx context.Context, req dto.OpenAccountRequest, userID string) (*domain.LedgerAccount, error)

	// ApplyMovement applies a typed movement to the account and returns the
	// updated balances together with the appended movement. Lost updates are
	// retried a bounded number of times before ErrConcurrentModification is
	// surfaced to the caller.
	ApplyMovement(ctx context.Context, accountID string, req dto.ApplyMovementRequest, userID string) (*domain.LedgerAccount, *domain.Movement, error)

	// CloseAccount transitions the account to CLOSED when its net balance is zero.
	CloseAccount(ctx context.Context, accountID string, userID string) (*domain.LedgerAccount, error)

	// ReopenAccount exits the CLOSED state, recomputing ACTIVE/SETTLED from balances.
	ReopenAccount(ctx context.Context, accountID string, userID string) (*domain.LedgerAccount, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
