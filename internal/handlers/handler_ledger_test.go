package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	portssvc "github.com/gymtrack/gymtrack-api/internal/core/ports/services"
	"github.com/gymtrack/gymtrack-api/internal/dto"
	"github.com/gymtrack/gymtrack-api/internal/handlers"
	"github.com/gymtrack/gymtrack-api/internal/middleware"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetAccount(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerService) GetAccountByMemberID(ctx context.Context, memberID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerService) ListMovements(ctx context.Context, accountID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListMovementsResponse), args.Error(1)
}

func (m *MockLedgerService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest, userID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerService) ApplyMovement(ctx context.Context, accountID string, req dto.ApplyMovementRequest, userID string) (*domain.LedgerAccount, *domain.Movement, error) {
	args := m.Called(ctx, accountID, req, userID)
	var account *domain.LedgerAccount
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.LedgerAccount)
	}
	var movement *domain.Movement
	if args.Get(1) != nil {
		movement = args.Get(1).(*domain.Movement)
	}
	return account, movement, args.Error(2)
}

func (m *MockLedgerService) CloseAccount(ctx context.Context, accountID string, userID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerService) ReopenAccount(ctx context.Context, accountID string, userID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *LedgerHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "gymtrack-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedgerService = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterLedgerRoutes(v1, suite.mockLedgerService)
}

// serve signs a token for userID and runs the request through the router.
func (suite *LedgerHandlerTestSuite) serve(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestApplyMovement_Success() {
	accountID := uuid.NewString()
	userID := uuid.NewString()

	reqBody := dto.ApplyMovementRequest{
		Kind:        domain.MovementDebt,
		Amount:      decimal.NewFromInt(1500),
		Description: "Monthly locker fee",
	}
	updatedAccount := &domain.LedgerAccount{
		AccountID:     accountID,
		MemberID:      uuid.NewString(),
		DebtBalance:   decimal.NewFromInt(1500),
		CreditBalance: decimal.Zero,
		State:         domain.StateActive,
	}
	appendedMovement := &domain.Movement{
		MovementID:  uuid.NewString(),
		AccountID:   accountID,
		Kind:        domain.MovementDebt,
		Amount:      decimal.NewFromInt(1500),
		Description: "Monthly locker fee",
	}

	suite.mockLedgerService.On("ApplyMovement",
		mock.AnythingOfType("*context.valueCtx"),
		accountID,
		mock.MatchedBy(func(r dto.ApplyMovementRequest) bool {
			return r.Kind == domain.MovementDebt && r.Amount.Equal(decimal.NewFromInt(1500))
		}),
		userID,
	).Return(updatedAccount, appendedMovement, nil).Once()

	url := fmt.Sprintf("/api/v1/ledger/accounts/%s/movements", accountID)
	w := suite.serve(http.MethodPost, url, userID, reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ApplyMovementResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(accountID, resp.Account.AccountID)
	suite.True(resp.Account.DebtBalance.Equal(decimal.NewFromInt(1500)))
	suite.Equal(appendedMovement.MovementID, resp.Movement.MovementID)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestApplyMovement_AccountNotFound() {
	accountID := uuid.NewString()
	userID := uuid.NewString()

	reqBody := dto.ApplyMovementRequest{
		Kind:        domain.MovementCredit,
		Amount:      decimal.NewFromInt(100),
		Description: "Goodwill credit",
	}

	suite.mockLedgerService.On("ApplyMovement",
		mock.AnythingOfType("*context.valueCtx"),
		accountID,
		mock.Anything,
		userID,
	).Return(nil, nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/ledger/accounts/%s/movements", accountID)
	w := suite.serve(http.MethodPost, url, userID, reqBody)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestApplyMovement_ConcurrentModificationConflict() {
	accountID := uuid.NewString()
	userID := uuid.NewString()

	reqBody := dto.ApplyMovementRequest{
		Kind:        domain.MovementPayment,
		Amount:      decimal.NewFromInt(500),
		Description: "Cash payment at desk",
	}

	suite.mockLedgerService.On("ApplyMovement",
		mock.AnythingOfType("*context.valueCtx"),
		accountID,
		mock.Anything,
		userID,
	).Return(nil, nil, apperrors.ErrConcurrentModification).Once()

	url := fmt.Sprintf("/api/v1/ledger/accounts/%s/movements", accountID)
	w := suite.serve(http.MethodPost, url, userID, reqBody)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestApplyMovement_ClosedAccountUnprocessable() {
	accountID := uuid.NewString()
	userID := uuid.NewString()

	reqBody := dto.ApplyMovementRequest{
		Kind:        domain.MovementDebt,
		Amount:      decimal.NewFromInt(200),
		Description: "Late fee",
	}

	suite.mockLedgerService.On("ApplyMovement",
		mock.AnythingOfType("*context.valueCtx"),
		accountID,
		mock.Anything,
		userID,
	).Return(nil, nil, fmt.Errorf("%w: account %s is closed", apperrors.ErrInvalidState, accountID)).Once()

	url := fmt.Sprintf("/api/v1/ledger/accounts/%s/movements", accountID)
	w := suite.serve(http.MethodPost, url, userID, reqBody)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestApplyMovement_MissingBodyFieldsRejected() {
	accountID := uuid.NewString()
	userID := uuid.NewString()

	// No kind, no description.
	url := fmt.Sprintf("/api/v1/ledger/accounts/%s/movements", accountID)
	w := suite.serve(http.MethodPost, url, userID, map[string]any{"amount": "100"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ApplyMovement")
}

func (suite *LedgerHandlerTestSuite) TestApplyMovement_Unauthorized() {
	accountID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/ledger/accounts/%s/movements", accountID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ApplyMovement")
}

func (suite *LedgerHandlerTestSuite) TestOpenAccount_Success() {
	memberID := uuid.NewString()
	userID := uuid.NewString()

	created := &domain.LedgerAccount{
		AccountID:     uuid.NewString(),
		MemberID:      memberID,
		DebtBalance:   decimal.Zero,
		CreditBalance: decimal.Zero,
		State:         domain.StateSettled,
	}

	suite.mockLedgerService.On("OpenAccount",
		mock.AnythingOfType("*context.valueCtx"),
		dto.OpenAccountRequest{MemberID: memberID},
		userID,
	).Return(created, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/ledger/accounts", userID, dto.OpenAccountRequest{MemberID: memberID})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal(domain.StateSettled, resp.State)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestOpenAccount_DuplicateConflict() {
	memberID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockLedgerService.On("OpenAccount",
		mock.AnythingOfType("*context.valueCtx"),
		dto.OpenAccountRequest{MemberID: memberID},
		userID,
	).Return(nil, fmt.Errorf("member %s already has an open account: %w", memberID, apperrors.ErrDuplicate)).Once()

	w := suite.serve(http.MethodPost, "/api/v1/ledger/accounts", userID, dto.OpenAccountRequest{MemberID: memberID})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListMovements_Success() {
	accountID := uuid.NewString()
	userID := uuid.NewString()

	next := "b2xkZXItcGFnZQ"
	expected := &dto.ListMovementsResponse{
		Movements: []dto.MovementResponse{
			{
				MovementID:  uuid.NewString(),
				AccountID:   accountID,
				Kind:        domain.MovementDebt,
				Amount:      decimal.NewFromInt(800),
				Description: "Monthly fee",
				CreatedAt:   time.Now(),
			},
			{
				MovementID:  uuid.NewString(),
				AccountID:   accountID,
				Kind:        domain.MovementPayment,
				Amount:      decimal.NewFromInt(800),
				Description: "Cash payment",
				CreatedAt:   time.Now().Add(-time.Hour),
			},
		},
		NextToken: &next,
	}

	suite.mockLedgerService.On("ListMovements",
		mock.AnythingOfType("*context.valueCtx"),
		accountID,
		mock.MatchedBy(func(p dto.ListMovementsParams) bool {
			return p.Limit == 10 && p.NextToken == nil
		}),
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/ledger/accounts/%s/movements?limit=10", accountID)
	w := suite.serve(http.MethodGet, url, userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListMovementsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Movements, 2)
	suite.Equal(expected.Movements[0].MovementID, resp.Movements[0].MovementID)
	suite.NotNil(resp.NextToken)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListMovements_BadToken() {
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockLedgerService.On("ListMovements",
		mock.AnythingOfType("*context.valueCtx"),
		accountID,
		mock.Anything,
	).Return(nil, apperrors.NewAppError(400, "invalid nextToken", nil)).Once()

	url := fmt.Sprintf("/api/v1/ledger/accounts/%s/movements?nextToken=garbage", accountID)
	w := suite.serve(http.MethodGet, url, userID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCloseAccount_UnsettledUnprocessable() {
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockLedgerService.On("CloseAccount",
		mock.AnythingOfType("*context.valueCtx"),
		accountID,
		userID,
	).Return(nil, fmt.Errorf("%w: account %s has outstanding balances", apperrors.ErrNotSettleable, accountID)).Once()

	url := fmt.Sprintf("/api/v1/ledger/accounts/%s/close", accountID)
	w := suite.serve(http.MethodPost, url, userID, nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
