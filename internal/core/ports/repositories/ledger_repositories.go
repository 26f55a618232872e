package repositories

import (
	"context"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
)

// MovementApplier mutates a row-locked ledger account and returns the movement
// to append, or nil when no ledger effect should be recorded. The repository
// calls it with the freshly read account while holding an exclusive lock on
// the row; the balance/state write and the movement insert then commit as one
// unit, so partial application is never observable.
type MovementApplier func(account *domain.LedgerAccount) (*domain.Movement, error)

// LedgerReader defines read operations for ledger accounts and movements
type LedgerReader interface {
	// FindAccountByID retrieves a specific ledger account.
	FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error)

	// FindAccountByMemberID retrieves the member's ledger account.
	FindAccountByMemberID(ctx context.Context, memberID string) (*domain.LedgerAccount, error)

	// ListMovementsByAccountID retrieves a paginated movement history using
	// token-based pagination, newest first.
	ListMovementsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Movement, *string, error)
}

// LedgerWriter defines write operations for ledger accounts
type LedgerWriter interface {
	// SaveAccount persists a new ledger account.
	SaveAccount(ctx context.Context, account domain.LedgerAccount) error

	// MutateAccount applies fn to the account under an exclusive row lock and
	// persists the result atomically. Returns the updated account and the
	// appended movement (nil when fn recorded none). Lost updates surface as
	// ErrConcurrentModification and are safe to retry.
	MutateAccount(ctx context.Context, accountID string, userID string, fn MovementApplier) (*domain.LedgerAccount, *domain.Movement, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
