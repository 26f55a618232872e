package services

import (
	"context"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/gymtrack/gymtrack-api/internal/dto"
)

// PaymentSvcFacade records combined payments: a direct subscription amount
// plus an optional current-account settlement.
type PaymentSvcFacade interface {
	// RecordPayment validates and persists the payment. When a settlement
	// amount targets an open ledger account, the payment record and the
	// PAYMENT movement persist atomically; a CLOSED account skips the
	// settlement portion while the direct payment still succeeds, flagged on
	// the returned payment.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error)

	// GetPaymentByID retrieves a specific payment.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
}
