package services_test

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTenantAuthorizer mocks the TenantAuthorizerSvc interface
type MockTenantAuthorizer struct {
	mock.Mock
}

func (m *MockTenantAuthorizer) AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.UserTenantRole) error {
	args := m.Called(ctx, userID, tenantID, requiredRole)
	return args.Error(0)
}

// MockAccountRepository mocks the AccountRepositoryWithTx interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByContactID(ctx context.Context, tenantID, contactID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByEmployeeID(ctx context.Context, tenantID, employeeID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindSystemAccountByType(ctx context.Context, tenantID string, accountType domain.AccountType) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, tenantID, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, tenantID, accountID, delta, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) NextAccountCodeInTx(ctx context.Context, tx pgx.Tx, tenantID, prefix string) (int64, error) {
	args := m.Called(ctx, tx, tenantID, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockTransactionRepository mocks the TransactionRepositoryWithTx interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, tenantID, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) FindTransactionsByDocument(ctx context.Context, tenantID string, documentType domain.DocumentType, documentID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, tenantID, documentType, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByDocumentInTx(ctx context.Context, tx pgx.Tx, tenantID string, documentType domain.DocumentType, documentID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, tx, tenantID, documentType, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumTransactionsByAccountID(ctx context.Context, tenantID, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockOrderRepository mocks the OrderRepositoryWithTx interface
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, tenantID, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByTenant(ctx context.Context, tenantID string, filter portsrepo.OrderListFilter, limit int, nextToken *string) ([]domain.Order, *string, error) {
	args := m.Called(ctx, tenantID, filter, limit, nextToken)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return orders, token, args.Error(2)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, tenantID, orderID string, status domain.OrderStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, orderID, status, userID, now)
	return args.Error(0)
}

func (m *MockOrderRepository) FindOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, tx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) SaveOrderInTx(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderInTx(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderPaymentInTx(ctx context.Context, tx pgx.Tx, tenantID, orderID string, paidAmount decimal.Decimal, paymentStatus domain.PaymentStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, tenantID, orderID, paidAmount, paymentStatus, userID, now)
	return args.Error(0)
}

func (m *MockOrderRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockOrderRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOrderRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockContactReader mocks the ContactReader interface
type MockContactReader struct {
	mock.Mock
}

func (m *MockContactReader) FindContactByID(ctx context.Context, tenantID, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, tenantID, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactReader) ListContacts(ctx context.Context, tenantID string, kind *domain.ContactKind, limit int, offset int) ([]domain.Contact, error) {
	args := m.Called(ctx, tenantID, kind, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

// MockEmployeeReader mocks the EmployeeReader interface
type MockEmployeeReader struct {
	mock.Mock
}

func (m *MockEmployeeReader) FindEmployeeByID(ctx context.Context, tenantID, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, tenantID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeReader) ListEmployees(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Employee, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

// MockCheckRepository mocks the CheckRepositoryWithTx interface
type MockCheckRepository struct {
	mock.Mock
}

func (m *MockCheckRepository) FindCheckByID(ctx context.Context, tenantID, checkID string) (*domain.Check, error) {
	args := m.Called(ctx, tenantID, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckRepository) ListChecks(ctx context.Context, tenantID string, status *domain.CheckStatus, limit int, offset int) ([]domain.Check, error) {
	args := m.Called(ctx, tenantID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Check), args.Error(1)
}

func (m *MockCheckRepository) SaveCheckInTx(ctx context.Context, tx pgx.Tx, check domain.Check) error {
	args := m.Called(ctx, tx, check)
	return args.Error(0)
}

func (m *MockCheckRepository) UpdateCheckStatusInTx(ctx context.Context, tx pgx.Tx, tenantID, checkID string, status domain.CheckStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, tenantID, checkID, status, userID, now)
	return args.Error(0)
}

func (m *MockCheckRepository) FindCheckByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, checkID string) (*domain.Check, error) {
	args := m.Called(ctx, tx, tenantID, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCheckRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCheckRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockInventoryRepository mocks the InventoryRepositoryWithTx interface
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindItemByID(ctx context.Context, tenantID, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindItemBySKU(ctx context.Context, tenantID, sku string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListItems(ctx context.Context, tenantID string, limit int, offset int) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) DeactivateItem(ctx context.Context, tenantID, itemID string, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, itemID, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) ListMovementsByItem(ctx context.Context, tenantID, itemID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error) {
	args := m.Called(ctx, tenantID, itemID, limit, nextToken)
	var movements []domain.StockMovement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.StockMovement)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return movements, token, args.Error(2)
}

func (m *MockInventoryRepository) FindMovementsByDocument(ctx context.Context, tenantID string, documentType domain.DocumentType, documentID string) ([]domain.StockMovement, error) {
	args := m.Called(ctx, tenantID, documentType, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockInventoryRepository) FindItemByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) GetLocationStockForUpdate(ctx context.Context, tx pgx.Tx, tenantID, locationID, itemID string) (*domain.LocationStock, error) {
	args := m.Called(ctx, tx, tenantID, locationID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocationStock), args.Error(1)
}

func (m *MockInventoryRepository) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	args := m.Called(ctx, tx, movement)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpsertLocationStockInTx(ctx context.Context, tx pgx.Tx, tenantID, locationID, itemID string, delta decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, tenantID, locationID, itemID, delta, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdateItemOnHandInTx(ctx context.Context, tx pgx.Tx, tenantID, itemID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, tenantID, itemID, delta, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdatePurchasePriceInTx(ctx context.Context, tx pgx.Tx, tenantID, itemID string, price decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, tenantID, itemID, price, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockInventoryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInventoryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockTenantRepository mocks the TenantRepositoryFacade interface
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListTenantsByUserID(ctx context.Context, userID string) ([]domain.Tenant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) AddUserToTenant(ctx context.Context, membership domain.UserTenant) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockTenantRepository) FindUserTenantRole(ctx context.Context, userID, tenantID string) (*domain.UserTenant, error) {
	args := m.Called(ctx, userID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserTenant), args.Error(1)
}

func (m *MockTenantRepository) ListUsersInTenant(ctx context.Context, tenantID string) ([]domain.UserTenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserTenant), args.Error(1)
}

func (m *MockTenantRepository) UpdateUserTenantRole(ctx context.Context, userID, tenantID string, role domain.UserTenantRole) error {
	args := m.Called(ctx, userID, tenantID, role)
	return args.Error(0)
}

// MockUserRepository mocks the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, string, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User, username string, passwordHash string) error {
	args := m.Called(ctx, user, username, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) FindRefreshToken(ctx context.Context, userID string) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// MockAccountService mocks the AccountSvcFacade interface
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

// MockLedgerService mocks the LedgerSvcFacade interface
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

// MockInventoryService mocks the InventorySvcFacade interface
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) GetItemByID(ctx context.Context, tenantID, itemID string, requestingUserID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, itemID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) ListItems(ctx context.Context, tenantID string, requestingUserID string, params dto.ListItemsParams) (*dto.ListItemsResponse, error) {
	args := m.Called(ctx, tenantID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListItemsResponse), args.Error(1)
}

func (m *MockInventoryService) CreateItem(ctx context.Context, tenantID string, req dto.CreateItemRequest, creatorUserID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) UpdateItem(ctx context.Context, tenantID, itemID string, req dto.UpdateItemRequest, requestingUserID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tenantID, itemID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) RecordMovement(ctx context.Context, tenantID string, req dto.RecordMovementRequest, creatorUserID string) (*domain.StockMovement, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

func (m *MockInventoryService) RecordMovementInTx(ctx context.Context, tx pgx.Tx, tenantID string, req dto.RecordMovementRequest, creatorUserID string) (*domain.StockMovement, error) {
	args := m.Called(ctx, tx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

func (m *MockInventoryService) ListMovementsByItem(ctx context.Context, tenantID, itemID string, requestingUserID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	args := m.Called(ctx, tenantID, itemID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListMovementsResponse), args.Error(1)
}

// MockWarehouseService mocks the WarehouseSvcFacade interface
type MockWarehouseService struct {
	mock.Mock
}

func (m *MockWarehouseService) ListPools(ctx context.Context, tenantID string, requestingUserID string) ([]domain.WarehousePool, error) {
	args := m.Called(ctx, tenantID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WarehousePool), args.Error(1)
}

func (m *MockWarehouseService) ListLocations(ctx context.Context, tenantID, poolID string, requestingUserID string) ([]domain.WarehouseLocation, error) {
	args := m.Called(ctx, tenantID, poolID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WarehouseLocation), args.Error(1)
}

func (m *MockWarehouseService) CreatePool(ctx context.Context, tenantID string, req dto.CreatePoolRequest, creatorUserID string) (*domain.WarehousePool, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WarehousePool), args.Error(1)
}

func (m *MockWarehouseService) CreateLocation(ctx context.Context, tenantID, poolID string, req dto.CreateLocationRequest, creatorUserID string) (*domain.WarehouseLocation, error) {
	args := m.Called(ctx, tenantID, poolID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WarehouseLocation), args.Error(1)
}

func (m *MockWarehouseService) ResolveDefaultLocation(ctx context.Context, tenantID string, actorUserID string) (*domain.WarehouseLocation, error) {
	args := m.Called(ctx, tenantID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WarehouseLocation), args.Error(1)
}
