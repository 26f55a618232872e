package repositories

import (
	"context"

	"github.com/gymtrack/gymtrack-api/internal/core/domain"
)

// PaymentRepositoryFacade defines operations for payment records.
type PaymentRepositoryFacade interface {
	// SavePayment persists a payment with no ledger settlement portion.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// SavePaymentWithSettlement persists the payment and applies fn to the
	// referenced ledger account under an exclusive row lock, all in a single
	// transaction: either the payment and the movement (when fn records one)
	// both persist, or neither does. The returned payment carries the linked
	// movement ID when a movement was appended; when fn records none (the
	// account is closed), the persisted and returned payment carries
	// SettlementSkipped=true.
	SavePaymentWithSettlement(ctx context.Context, payment domain.Payment, accountID string, fn MovementApplier) (*domain.Payment, *domain.Movement, error)

	// FindPaymentByID retrieves a specific payment.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsBySubscriptionID retrieves all payments recorded against a subscription.
	ListPaymentsBySubscriptionID(ctx context.Context, subscriptionID string) ([]domain.Payment, error)
}
