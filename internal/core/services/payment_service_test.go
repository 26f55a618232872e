package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	portsrepo "github.com/gymtrack/gymtrack-api/internal/core/ports/repositories"
	portssvc "github.com/gymtrack/gymtrack-api/internal/core/ports/services"
	"github.com/gymtrack/gymtrack-api/internal/core/services"
	"github.com/gymtrack/gymtrack-api/internal/dto"
)

// --- Mock SubscriptionReader ---
type MockSubscriptionReader struct {
	mock.Mock
}

func (m *MockSubscriptionReader) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.SubscriptionWindow, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionWindow), args.Error(1)
}

func (m *MockSubscriptionReader) FindLatestActiveSubscription(ctx context.Context, memberID string, asOf time.Time) (*domain.SubscriptionWindow, error) {
	args := m.Called(ctx, memberID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionWindow), args.Error(1)
}

func (m *MockSubscriptionReader) ListSubscriptionsByMemberID(ctx context.Context, memberID string) ([]domain.SubscriptionWindow, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubscriptionWindow), args.Error(1)
}

// --- Mock PaymentRepository ---
//
// SavePaymentWithSettlement runs the applier against the account provided by
// the expectation, mirroring the real repository's locked transaction.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) SavePaymentWithSettlement(ctx context.Context, payment domain.Payment, accountID string, fn portsrepo.MovementApplier) (*domain.Payment, *domain.Movement, error) {
	args := m.Called(ctx, accountID)
	if args.Error(1) != nil {
		return nil, nil, args.Error(1)
	}
	account := args.Get(0).(*domain.LedgerAccount)
	movement, err := fn(account)
	if err != nil {
		return nil, nil, err
	}
	if movement != nil {
		payment.SettlementMovementID = &movement.MovementID
	} else {
		payment.SettlementSkipped = true
	}
	return &payment, movement, nil
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsBySubscriptionID(ctx context.Context, subscriptionID string) ([]domain.Payment, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// --- Test Suite ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockPayments *MockPaymentRepository
	mockSubs     *MockSubscriptionReader
	service      portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPayments = new(MockPaymentRepository)
	suite.mockSubs = new(MockSubscriptionReader)
	suite.service = services.NewPaymentService(suite.mockPayments, suite.mockSubs)
}

func (suite *PaymentServiceTestSuite) expectSubscription(ctx context.Context, subscriptionID string) {
	suite.mockSubs.On("FindSubscriptionByID", ctx, subscriptionID).
		Return(&domain.SubscriptionWindow{SubscriptionID: subscriptionID, Active: true}, nil).Once()
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_DirectOnly() {
	ctx := context.Background()
	subscriptionID := uuid.NewString()
	suite.expectSubscription(ctx, subscriptionID)

	suite.mockPayments.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.SubscriptionID == subscriptionID &&
			p.DirectAmount.Equal(decimal.RequireFromString("5000")) &&
			p.LedgerSettlementAmount.IsZero()
	})).Return(nil).Once()

	req := dto.RecordPaymentRequest{
		SubscriptionID: subscriptionID,
		DirectAmount:   decimal.RequireFromString("5000"),
	}
	payment, err := suite.service.RecordPayment(ctx, req, "staff-1")

	suite.Require().NoError(err)
	suite.False(payment.SettlementSkipped)
	suite.Nil(payment.SettlementMovementID)
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_WithSettlement_AppliesDebtFirst() {
	ctx := context.Background()
	subscriptionID := uuid.NewString()
	suite.expectSubscription(ctx, subscriptionID)

	account := testAccount("100", "0", domain.StateActive)
	settlement := decimal.RequireFromString("150")

	suite.mockPayments.On("SavePaymentWithSettlement", ctx, account.AccountID).Return(account, nil).Once()

	req := dto.RecordPaymentRequest{
		SubscriptionID:         subscriptionID,
		DirectAmount:           decimal.RequireFromString("5000"),
		LedgerSettlementAmount: &settlement,
		LedgerAccountID:        &account.AccountID,
	}
	payment, err := suite.service.RecordPayment(ctx, req, "staff-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(payment.SettlementMovementID)
	suite.False(payment.SettlementSkipped)

	// The applier ran against the account: debt cleared, overpayment banked.
	suite.True(account.DebtBalance.IsZero())
	suite.True(account.CreditBalance.Equal(decimal.RequireFromString("50")))
	suite.Equal(domain.StateActive, account.State)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ClosedAccountSkipsSettlement() {
	ctx := context.Background()
	subscriptionID := uuid.NewString()
	suite.expectSubscription(ctx, subscriptionID)

	account := testAccount("0", "0", domain.StateClosed)
	settlement := decimal.RequireFromString("100")

	suite.mockPayments.On("SavePaymentWithSettlement", ctx, account.AccountID).Return(account, nil).Once()

	req := dto.RecordPaymentRequest{
		SubscriptionID:         subscriptionID,
		DirectAmount:           decimal.RequireFromString("5000"),
		LedgerSettlementAmount: &settlement,
		LedgerAccountID:        &account.AccountID,
	}
	payment, err := suite.service.RecordPayment(ctx, req, "staff-1")

	suite.Require().NoError(err)
	suite.True(payment.SettlementSkipped)
	suite.Nil(payment.SettlementMovementID)

	// The account is untouched.
	suite.Equal(domain.StateClosed, account.State)
	suite.True(account.DebtBalance.IsZero())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_SettlementRetriesOnConcurrentModification() {
	ctx := context.Background()
	subscriptionID := uuid.NewString()
	suite.expectSubscription(ctx, subscriptionID)

	account := testAccount("100", "0", domain.StateActive)
	settlement := decimal.RequireFromString("100")

	suite.mockPayments.On("SavePaymentWithSettlement", ctx, account.AccountID).
		Return(nil, apperrors.ErrConcurrentModification).Twice()
	suite.mockPayments.On("SavePaymentWithSettlement", ctx, account.AccountID).
		Return(account, nil).Once()

	req := dto.RecordPaymentRequest{
		SubscriptionID:         subscriptionID,
		DirectAmount:           decimal.RequireFromString("5000"),
		LedgerSettlementAmount: &settlement,
		LedgerAccountID:        &account.AccountID,
	}
	payment, err := suite.service.RecordPayment(ctx, req, "staff-1")

	suite.Require().NoError(err)
	suite.NotNil(payment.SettlementMovementID)
	suite.True(account.DebtBalance.IsZero())
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_SettlementGivesUpAfterRetries() {
	ctx := context.Background()
	subscriptionID := uuid.NewString()
	suite.expectSubscription(ctx, subscriptionID)

	accountID := uuid.NewString()
	settlement := decimal.RequireFromString("100")

	suite.mockPayments.On("SavePaymentWithSettlement", ctx, accountID).
		Return(nil, apperrors.ErrConcurrentModification).Times(3)

	req := dto.RecordPaymentRequest{
		SubscriptionID:         subscriptionID,
		DirectAmount:           decimal.RequireFromString("5000"),
		LedgerSettlementAmount: &settlement,
		LedgerAccountID:        &accountID,
	}
	_, err := suite.service.RecordPayment(ctx, req, "staff-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrentModification)
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ZeroValueRejected() {
	ctx := context.Background()

	req := dto.RecordPaymentRequest{
		SubscriptionID: uuid.NewString(),
		DirectAmount:   decimal.Zero,
	}
	payment, err := suite.service.RecordPayment(ctx, req, "staff-1")

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockSubs.AssertNotCalled(suite.T(), "FindSubscriptionByID")
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NegativeAmountRejected() {
	ctx := context.Background()

	req := dto.RecordPaymentRequest{
		SubscriptionID: uuid.NewString(),
		DirectAmount:   decimal.RequireFromString("-10"),
	}
	_, err := suite.service.RecordPayment(ctx, req, "staff-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_SettlementWithoutAccountRejected() {
	ctx := context.Background()
	settlement := decimal.RequireFromString("100")

	req := dto.RecordPaymentRequest{
		SubscriptionID:         uuid.NewString(),
		DirectAmount:           decimal.RequireFromString("5000"),
		LedgerSettlementAmount: &settlement,
	}
	_, err := suite.service.RecordPayment(ctx, req, "staff-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_UnknownSubscription() {
	ctx := context.Background()
	subscriptionID := uuid.NewString()

	suite.mockSubs.On("FindSubscriptionByID", ctx, subscriptionID).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.RecordPaymentRequest{
		SubscriptionID: subscriptionID,
		DirectAmount:   decimal.RequireFromString("5000"),
	}
	_, err := suite.service.RecordPayment(ctx, req, "staff-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_UnknownLedgerAccount() {
	ctx := context.Background()
	subscriptionID := uuid.NewString()
	suite.expectSubscription(ctx, subscriptionID)

	accountID := uuid.NewString()
	settlement := decimal.RequireFromString("100")

	suite.mockPayments.On("SavePaymentWithSettlement", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.RecordPaymentRequest{
		SubscriptionID:         subscriptionID,
		DirectAmount:           decimal.RequireFromString("5000"),
		LedgerSettlementAmount: &settlement,
		LedgerAccountID:        &accountID,
	}
	_, err := suite.service.RecordPayment(ctx, req, "staff-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
