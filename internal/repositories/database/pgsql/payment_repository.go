package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	portsrepo "github.com/gymtrack/gymtrack-api/internal/core/ports/repositories"
	"github.com/gymtrack/gymtrack-api/internal/models"
	"github.com/gymtrack/gymtrack-api/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment records.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, subscription_id, direct_amount, ledger_settlement_amount, settlement_movement_id, settlement_skipped, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.PaymentID,
		&p.SubscriptionID,
		&p.DirectAmount,
		&p.LedgerSettlementAmount,
		&p.SettlementMovementID,
		&p.SettlementSkipped,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func insertPayment(ctx context.Context, q execer, payment models.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := q.Exec(ctx, query,
		payment.PaymentID,
		payment.SubscriptionID,
		payment.DirectAmount,
		payment.LedgerSettlementAmount,
		payment.SettlementMovementID,
		payment.SettlementSkipped,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

// SavePayment persists a payment with no ledger settlement portion.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	return insertPayment(ctx, r.Pool, mapping.ToModelPayment(payment))
}

// SavePaymentWithSettlement persists the payment and applies fn to the
// referenced ledger account inside one transaction: the payment row, the
// balance update and the movement insert land together or not at all.
func (r *PgxPaymentRepository) SavePaymentWithSettlement(ctx context.Context, payment domain.Payment, accountID string, fn portsrepo.MovementApplier) (*domain.Payment, *domain.Movement, error) {
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

	if movement != nil {
		payment.SettlementMovementID = &movement.MovementID
	} else {
		// A settlement was requested but no movement came back: the target
		// account is closed. The flag has to land on this copy of the payment,
		// it is the one that gets inserted and returned.
		payment.SettlementSkipped = true
	}

	// The payment row goes in first so the movement's payment_id reference
	// resolves; the payment's movement reference is checked at commit.
	if err := insertPayment(ctx, tx, mapping.ToModelPayment(payment)); err != nil {
		return nil, nil, err
	}

	if movement != nil {
		if err := updateAccountInTx(ctx, tx, account, payment.CreatedBy); err != nil {
			return nil, nil, err
		}
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

	return &payment, movement, nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	modelPayment, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}

	domainPayment := mapping.ToDomainPayment(modelPayment)
	return &domainPayment, nil
}

// ListPaymentsBySubscriptionID retrieves all payments recorded against a subscription.
func (r *PgxPaymentRepository) ListPaymentsBySubscriptionID(ctx context.Context, subscriptionID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE subscription_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for subscription %s: %w", subscriptionID, err)
	}
	defer rows.Close()

	modelPayments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Payment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments: %w", err)
	}

	return mapping.ToDomainPaymentSlice(modelPayments), nil
}
