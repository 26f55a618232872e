package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	portsrepo "github.com/gymtrack/gymtrack-api/internal/core/ports/repositories"
	portssvc "github.com/gymtrack/gymtrack-api/internal/core/ports/services"
	"github.com/gymtrack/gymtrack-api/internal/dto"
	"github.com/gymtrack/gymtrack-api/internal/middleware"
)

// mutateRetries bounds how many times a lost update is retried before
// ErrConcurrentModification reaches the caller. Retries re-read the account
// under the row lock, so each attempt folds in the competing writes.
const mutateRetries = 3

// ledgerService provides current-account operations.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	memberRepo portsrepo.MemberReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, memberRepo portsrepo.MemberReader) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, memberRepo: memberRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetAccount retrieves a ledger account by ID.
func (s *ledgerService) GetAccount(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByMemberID retrieves the member's ledger account.
func (s *ledgerService) GetAccountByMemberID(ctx context.Context, memberID string) (*domain.LedgerAccount, error) {
	account, err := s.ledgerRepo.FindAccountByMemberID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by member", slog.String("error", err.Error()), slog.String("member_id", memberID))
		}
		return nil, err
	}
	return account, nil
}

// ListMovements retrieves a paginated movement history for an account.
func (s *ledgerService) ListMovements(ctx context.Context, accountID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	if _, err := s.ledgerRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	movements, nextToken, err := s.ledgerRepo.ListMovementsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list movements", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	return &dto.ListMovementsResponse{
		Movements: dto.ToMovementResponses(movements),
		NextToken: nextToken,
	}, nil
}

// OpenAccount creates a new current account for the member with zero balances.
func (s *ledgerService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest, userID string) (*domain.LedgerAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.memberRepo.FindMemberByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.LedgerAccount{
		AccountID:     uuid.NewString(),
		MemberID:      req.MemberID,
		DebtBalance:   decimal.Zero,
		CreditBalance: decimal.Zero,
		State:         domain.StateSettled,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.ledgerRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Second open account attempt for member", slog.String("member_id", req.MemberID))
			return nil, fmt.Errorf("%w: member %s already has an open account", apperrors.ErrDuplicate, req.MemberID)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Ledger account opened", slog.String("account_id", account.AccountID), slog.String("member_id", req.MemberID))
	return &account, nil
}

// ApplyMovement applies a typed movement under the account's row lock,
// retrying a bounded number of times when a competing writer wins the lock
// race first.
func (s *ledgerService) ApplyMovement(ctx context.Context, accountID string, req dto.ApplyMovementRequest, userID string) (*domain.LedgerAccount, *domain.Movement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: movement amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount.String())
	}
	if req.Kind == domain.MovementAdjustment && req.Direction == "" {
		return nil, nil, fmt.Errorf("%w: adjustment requires an explicit direction", apperrors.ErrValidation)
	}
	if req.Kind != domain.MovementAdjustment && req.Direction != "" {
		return nil, nil, fmt.Errorf("%w: direction is only valid for adjustments", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	applier := func(account *domain.LedgerAccount) (*domain.Movement, error) {
		movement := domain.Movement{
			MovementID:  uuid.NewString(),
			AccountID:   account.AccountID,
			Kind:        req.Kind,
			Direction:   req.Direction,
			Amount:      req.Amount,
			Description: req.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := account.ApplyMovement(movement); err != nil {
			return nil, err
		}
		return &movement, nil
	}

	account, movement, err := s.mutateWithRetry(ctx, accountID, userID, applier)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Movement applied",
		slog.String("account_id", accountID),
		slog.String("kind", string(req.Kind)),
		slog.String("amount", req.Amount.String()),
		slog.String("state", string(account.State)))
	return account, movement, nil
}

// CloseAccount transitions the account to CLOSED when its net balance is zero.
func (s *ledgerService) CloseAccount(ctx context.Context, accountID string, userID string) (*domain.LedgerAccount, error) {
	account, _, err := s.mutateWithRetry(ctx, accountID, userID, func(account *domain.LedgerAccount) (*domain.Movement, error) {
		return nil, account.Close()
	})
	if err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Ledger account closed", slog.String("account_id", accountID))
	return account, nil
}

// ReopenAccount exits the CLOSED state, recomputing ACTIVE/SETTLED from balances.
func (s *ledgerService) ReopenAccount(ctx context.Context, accountID string, userID string) (*domain.LedgerAccount, error) {
	account, _, err := s.mutateWithRetry(ctx, accountID, userID, func(account *domain.LedgerAccount) (*domain.Movement, error) {
		return nil, account.Reopen()
	})
	if err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Ledger account reopened", slog.String("account_id", accountID), slog.String("state", string(account.State)))
	return account, nil
}

// mutateWithRetry runs the applier through the repository's locked mutation,
// retrying on ErrConcurrentModification only. Domain rejections (invalid
// state, bad amount) are final on the first attempt.
func (s *ledgerService) mutateWithRetry(ctx context.Context, accountID string, userID string, fn portsrepo.MovementApplier) (*domain.LedgerAccount, *domain.Movement, error) {
	var lastErr error
	for attempt := 1; attempt <= mutateRetries; attempt++ {
		account, movement, err := s.ledgerRepo.MutateAccount(ctx, accountID, userID, fn)
		if err == nil {
			return account, movement, nil
		}
		if !errors.Is(err, apperrors.ErrConcurrentModification) {
			return nil, nil, err
		}
		lastErr = err
		middleware.GetLoggerFromCtx(ctx).Warn("Concurrent account mutation, retrying",
			slog.String("account_id", accountID),
			slog.Int("attempt", attempt))
	}
	return nil, nil, lastErr
}
