package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/bizledger/bizledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID, accountID string, requestingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, tenantID string, requestingUserID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	args := m.Called(ctx, tenantID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountsResponse), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, tenantID, accountID string, requestingUserID string) error {
	args := m.Called(ctx, tenantID, accountID, requestingUserID)
	return args.Error(0)
}

func (m *MockAccountService) EnsureContactAccount(ctx context.Context, tenantID, contactID string, actorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, contactID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) EnsureEmployeeAccount(ctx context.Context, tenantID, employeeID string, actorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, employeeID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) EnsureSystemAccount(ctx context.Context, tenantID string, accountType domain.AccountType, actorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) EnsureContactAccountInTx(ctx context.Context, tx pgx.Tx, tenantID, contactID string, actorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, tenantID, contactID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) EnsureEmployeeAccountInTx(ctx context.Context, tx pgx.Tx, tenantID, employeeID string, actorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, tenantID, employeeID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) EnsureSystemAccountInTx(ctx context.Context, tx pgx.Tx, tenantID string, accountType domain.AccountType, actorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, tenantID, accountType, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetTransactionByID(ctx context.Context, tenantID, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, transactionID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListTransactionsByAccount(ctx context.Context, tenantID, accountID string, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, tenantID, accountID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockLedgerService) ListTransactionsByDocument(ctx context.Context, tenantID string, documentType domain.DocumentType, documentID string, requestingUserID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, tenantID, documentType, documentID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) AddTransaction(ctx context.Context, tenantID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) CalculateAccountBalance(ctx context.Context, tenantID, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) PostTransactionInTx(ctx context.Context, tx pgx.Tx, tenantID string, input portssvc.PostingInput, actorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, tenantID, input, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) DeriveOrderPayment(ctx context.Context, tx pgx.Tx, tenantID string, order *domain.Order, actorUserID string) error {
	args := m.Called(ctx, tx, tenantID, order, actorUserID)
	return args.Error(0)
}

const handlerTestSecret = "handler-test-secret"

type AccountHandlerTestSuite struct {
	suite.Suite
	mockAccountSvc *MockAccountService
	mockLedgerSvc  *MockLedgerService
	router         *gin.Engine
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockLedgerSvc = new(MockLedgerService)

	suite.router = gin.New()
	tenantGroup := suite.router.Group("/api/v1/tenants/:tenant_id", middleware.AuthMiddleware(handlerTestSecret))
	registerAccountRoutes(tenantGroup, suite.mockAccountSvc, suite.mockLedgerSvc)
}

func (suite *AccountHandlerTestSuite) authorizedRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	token, err := utils.GenerateJWT("user-1", handlerTestSecret, time.Minute, "bizledger-test")
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Created() {
	account := &domain.Account{
		AccountID:    "acc-1",
		Code:         "600.01.001",
		Name:         "General",
		AccountType:  domain.AccountStandard,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.mockAccountSvc.On("CreateAccount", mock.Anything, "tenant-1", mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.Name == "General" && req.AccountType == domain.AccountStandard
	}), "user-1").Return(account, nil).Once()

	req := suite.authorizedRequest(http.MethodPost, "/api/v1/tenants/tenant-1/accounts", dto.CreateAccountRequest{
		Name:         "General",
		AccountType:  domain.AccountStandard,
		CurrencyCode: "USD",
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("acc-1", resp.AccountID)
	suite.Equal("600.01.001", resp.Code)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidBody() {
	req := suite.authorizedRequest(http.MethodPost, "/api/v1/tenants/tenant-1/accounts", map[string]string{
		"name": "Missing type and currency",
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingToken() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants/tenant-1/accounts", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, "tenant-1", "acc-404", "user-1").Return(nil, apperrors.ErrNotFound).Once()

	req := suite.authorizedRequest(http.MethodGet, "/api/v1/tenants/tenant-1/accounts/acc-404", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_ForbiddenForNonMembers() {
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, "tenant-1", "acc-1", "user-1").Return(nil, apperrors.ErrForbidden).Once()

	req := suite.authorizedRequest(http.MethodGet, "/api/v1/tenants/tenant-1/accounts/acc-1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_DefaultsPagination() {
	resp := &dto.ListAccountsResponse{Accounts: []dto.AccountResponse{{AccountID: "acc-1"}}}
	suite.mockAccountSvc.On("ListAccounts", mock.Anything, "tenant-1", "user-1", mock.MatchedBy(func(p dto.ListAccountsParams) bool {
		return p.Limit == 20 && p.Offset == 0 && p.AccountType == nil
	})).Return(resp, nil).Once()

	req := suite.authorizedRequest(http.MethodGet, "/api/v1/tenants/tenant-1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Accounts, 1)
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance_ReturnsCalculatedBalance() {
	account := &domain.Account{AccountID: "acc-1", AccountType: domain.AccountCustomer}
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, "tenant-1", "acc-1", "user-1").Return(account, nil).Once()
	suite.mockLedgerSvc.On("CalculateAccountBalance", mock.Anything, "tenant-1", "acc-1").Return(decimal.NewFromInt(125), nil).Once()

	req := suite.authorizedRequest(http.MethodGet, "/api/v1/tenants/tenant-1/accounts/acc-1/balance", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.AccountBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("acc-1", body.AccountID)
	suite.True(body.Balance.Equal(decimal.NewFromInt(125)))
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_Conflict() {
	suite.mockAccountSvc.On("DeactivateAccount", mock.Anything, "tenant-1", "acc-1", "user-1").Return(apperrors.ErrConflict).Once()

	req := suite.authorizedRequest(http.MethodDelete, "/api/v1/tenants/tenant-1/accounts/acc-1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_NoContent() {
	suite.mockAccountSvc.On("DeactivateAccount", mock.Anything, "tenant-1", "acc-1", "user-1").Return(nil).Once()

	req := suite.authorizedRequest(http.MethodDelete, "/api/v1/tenants/tenant-1/accounts/acc-1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
