package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	portsrepo "github.com/gymtrack/gymtrack-api/internal/core/ports/repositories"
	"github.com/gymtrack/gymtrack-api/internal/models"
	"github.com/gymtrack/gymtrack-api/internal/utils/mapping"
	"github.com/gymtrack/gymtrack-api/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger accounts and movements.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const accountColumns = `account_id, member_id, debt_balance, credit_balance, state, created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerAccount(row pgx.Row) (models.LedgerAccount, error) {
	var a models.LedgerAccount
	err := row.Scan(
		&a.AccountID,
		&a.MemberID,
		&a.DebtBalance,
		&a.CreditBalance,
		&a.State,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

// isConcurrencyError reports whether the database rejected the statement over
// a lock or serialization conflict that a retry can resolve.
func isConcurrencyError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", // serialization_failure
		"40P01", // deadlock_detected
		"55P03": // lock_not_available
		return true
	}
	return false
}

// SaveAccount persists a new ledger account.
func (r *PgxLedgerRepository) SaveAccount(ctx context.Context, account domain.LedgerAccount) error {
	modelAcc := mapping.ToModelLedgerAccount(account)
	query := `
		INSERT INTO ledger_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.MemberID,
		modelAcc.DebtBalance,
		modelAcc.CreditBalance,
		modelAcc.State,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation: one open account per member
				return fmt.Errorf("%w: member %s already has an account", apperrors.ErrDuplicate, modelAcc.MemberID)
			}
		}
		return fmt.Errorf("failed to save ledger account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a ledger account by its ID.
func (r *PgxLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM ledger_accounts WHERE account_id = $1;`

	modelAcc, err := scanLedgerAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger account by ID %s: %w", accountID, err)
	}

	domainAcc := mapping.ToDomainLedgerAccount(modelAcc)
	return &domainAcc, nil
}

// FindAccountByMemberID retrieves the member's ledger account.
func (r *PgxLedgerRepository) FindAccountByMemberID(ctx context.Context, memberID string) (*domain.LedgerAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM ledger_accounts
		WHERE member_id = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`
	modelAcc, err := scanLedgerAccount(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger account for member %s: %w", memberID, err)
	}

	domainAcc := mapping.ToDomainLedgerAccount(modelAcc)
	return &domainAcc, nil
}

// ListMovementsByAccountID retrieves a paginated movement history using
// token-based pagination, newest first.
func (r *PgxLedgerRepository) ListMovementsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine if there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT movement_id, account_id, kind, direction, amount, description, payment_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_movements
		WHERE account_id = $1
	`
	orderByClause := `ORDER BY created_at DESC, movement_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursorToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (created_at, movement_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query movements for account "+accountID, err)
	}
	defer rows.Close()

	movements := make([]models.Movement, 0, fetchLimit)
	for rows.Next() {
		var m models.Movement
		err := rows.Scan(
			&m.MovementID,
			&m.AccountID,
			&m.Kind,
			&m.Direction,
			&m.Amount,
			&m.Description,
			&m.PaymentID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan movement row for account "+accountID, err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating movement rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(movements) > limit {
		last := movements[limit-1]
		token := pagination.EncodeCursorToken(last.CreatedAt, last.MovementID)
		nextTokenVal = &token
		movements = movements[:limit]
	}

	return mapping.ToDomainMovementSlice(movements), nextTokenVal, nil
}

// MutateAccount applies fn to the account under an exclusive row lock and
// persists the result atomically. The balance/state update and the movement
// insert commit in one transaction, so a reader can never observe a movement
// whose balance effect is missing, or vice versa.
func (r *PgxLedgerRepository) MutateAccount(ctx context.Context, accountID string, userID string, fn portsrepo.MovementApplier) (*domain.LedgerAccount, *domain.Movement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	account, err := findAccountForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, nil, err
	}

	movement, err := fn(account)
	if err != nil {
		return nil, nil, err
	}

	if err := updateAccountInTx(ctx, tx, account, userID); err != nil {
		return nil, nil, err
	}

	if movement != nil {
		if err := insertMovementInTx(ctx, tx, *movement); err != nil {
			return nil, nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		if isConcurrencyError(err) {
			return nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrConcurrentModification, accountID)
		}
		return nil, nil, err
	}

	return account, movement, nil
}

// findAccountForUpdate reads the account inside tx holding an exclusive row
// lock until the transaction ends.
func findAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.LedgerAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM ledger_accounts WHERE account_id = $1 FOR UPDATE;`

	modelAcc, err := scanLedgerAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		if isConcurrencyError(err) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrConcurrentModification, accountID)
		}
		return nil, fmt.Errorf("failed to lock ledger account %s: %w", accountID, err)
	}

	domainAcc := mapping.ToDomainLedgerAccount(modelAcc)
	return &domainAcc, nil
}

func updateAccountInTx(ctx context.Context, tx pgx.Tx, account *domain.LedgerAccount, userID string) error {
	query := `
		UPDATE ledger_accounts
		SET debt_balance = $2, credit_balance = $3, state = $4, last_updated_at = NOW(), last_updated_by = $5
		WHERE account_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		account.AccountID,
		account.DebtBalance,
		account.CreditBalance,
		string(account.State),
		userID,
	)
	if err != nil {
		if isConcurrencyError(err) {
			return fmt.Errorf("%w: account %s", apperrors.ErrConcurrentModification, account.AccountID)
		}
		return fmt.Errorf("failed to update ledger account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func insertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error {
	modelMov := mapping.ToModelMovement(movement)
	query := `
		INSERT INTO ledger_movements (movement_id, account_id, kind, direction, amount, description, payment_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		modelMov.MovementID,
		modelMov.AccountID,
		modelMov.Kind,
		modelMov.Direction,
		modelMov.Amount,
		modelMov.Description,
		modelMov.PaymentID,
		modelMov.CreatedAt,
		modelMov.CreatedBy,
		modelMov.LastUpdatedAt,
		modelMov.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movement %s: %w", modelMov.MovementID, err)
	}
	return nil
}
