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

// paymentService records combined payments: a direct subscription amount plus
// an optional current-account settlement.
type paymentService struct {
	paymentRepo      portsrepo.PaymentRepositoryFacade
	subscriptionRepo portsrepo.SubscriptionReader
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	subscriptionRepo portsrepo.SubscriptionReader,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment validates and persists a payment. When a settlement amount
// targets a ledger account, the payment record and the PAYMENT movement
// persist in one transaction. A CLOSED target account does not fail the
// payment: the settlement portion is skipped and flagged on the result.
func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	settlement := decimal.Zero
	if req.LedgerSettlementAmount != nil {
		settlement = *req.LedgerSettlementAmount
	}

	if req.DirectAmount.IsNegative() || settlement.IsNegative() {
		return nil, fmt.Errorf("%w: payment amounts cannot be negative", apperrors.ErrInvalidAmount)
	}
	if req.DirectAmount.IsZero() && settlement.IsZero() {
		return nil, fmt.Errorf("%w: payment must carry a positive amount", apperrors.ErrInvalidAmount)
	}
	if settlement.IsPositive() && req.LedgerAccountID == nil {
		return nil, fmt.Errorf("%w: ledger settlement requires a target account", apperrors.ErrValidation)
	}

	if _, err := s.subscriptionRepo.FindSubscriptionByID(ctx, req.SubscriptionID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:              uuid.NewString(),
		SubscriptionID:         req.SubscriptionID,
		DirectAmount:           req.DirectAmount,
		LedgerSettlementAmount: settlement,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if settlement.IsZero() {
		if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
			logger.Error("Failed to save payment", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save payment: %w", err)
		}
		logger.Info("Payment recorded", slog.String("payment_id", payment.PaymentID), slog.String("direct_amount", payment.DirectAmount.String()))
		return &payment, nil
	}

	accountID := *req.LedgerAccountID
	applier := func(account *domain.LedgerAccount) (*domain.Movement, error) {
		if account.State == domain.StateClosed {
			// The member still paid for the subscription; losing that record
			// over a stale account reference would be worse than skipping the
			// settlement. Returning no movement makes the repository persist
			// the payment with SettlementSkipped=true.
			return nil, nil
		}
		movement := domain.Movement{
			MovementID:  uuid.NewString(),
			AccountID:   account.AccountID,
			Kind:        domain.MovementPayment,
			Amount:      settlement,
			Description: fmt.Sprintf("settlement for payment %s", payment.PaymentID),
			PaymentID:   &payment.PaymentID,
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

	saved, movement, err := s.saveWithRetry(ctx, payment, accountID, applier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ledger account %s", apperrors.ErrNotFound, accountID)
		}
		logger.Error("Failed to save payment with settlement", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save payment with settlement: %w", err)
	}

	if saved.SettlementSkipped {
		logger.Warn("Settlement skipped, target account is closed",
			slog.String("payment_id", saved.PaymentID),
			slog.String("account_id", accountID),
			slog.String("settlement_amount", settlement.String()))
	} else if movement != nil {
		logger.Info("Payment recorded with settlement",
			slog.String("payment_id", saved.PaymentID),
			slog.String("movement_id", movement.MovementID),
			slog.String("settlement_amount", settlement.String()))
	}
	return saved, nil
}

// saveWithRetry runs the settlement transaction, retrying on
// ErrConcurrentModification with the same bound the ledger mutations use.
// Each attempt re-reads the account under the row lock.
func (s *paymentService) saveWithRetry(ctx context.Context, payment domain.Payment, accountID string, fn portsrepo.MovementApplier) (*domain.Payment, *domain.Movement, error) {
	var lastErr error
	for attempt := 1; attempt <= mutateRetries; attempt++ {
		saved, movement, err := s.paymentRepo.SavePaymentWithSettlement(ctx, payment, accountID, fn)
		if err == nil {
			return saved, movement, nil
		}
		if !errors.Is(err, apperrors.ErrConcurrentModification) {
			return nil, nil, err
		}
		lastErr = err
		middleware.GetLoggerFromCtx(ctx).Warn("Concurrent settlement mutation, retrying",
			slog.String("account_id", accountID),
			slog.Int("attempt", attempt))
	}
	return nil, nil, lastErr
}

// GetPaymentByID retrieves a specific payment.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}
