package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its ledger code within a tenant.
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByContactID retrieves the dedicated account linked to a contact, if any.
	FindAccountByContactID(ctx context.Context, tenantID, contactID string) (*domain.Account, error)

	// FindAccountByEmployeeID retrieves the dedicated account linked to an employee, if any.
	FindAccountByEmployeeID(ctx context.Context, tenantID, employeeID string) (*domain.Account, error)

	// FindSystemAccountByType retrieves the tenant's system account of the given
	// type (safe, bank, pos, check portfolio, credit card), if provisioned.
	FindSystemAccountByType(ctx context.Context, tenantID string, accountType domain.AccountType) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a given tenant,
	// optionally filtered by account type.
	ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, tenantID, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations that participate in a database transaction
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects an account and locks its row for the duration of the transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, accountID string) (*domain.Account, error)

	// UpdateAccountBalanceInTx applies a signed balance delta to an account within a transaction.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, tenantID, accountID string, delta decimal.Decimal, userID string, now time.Time) error

	// SaveAccountInTx persists a new account within an existing transaction.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// NextAccountCodeInTx atomically increments and returns the per-prefix code
	// sequence for a tenant within a transaction.
	NextAccountCodeInTx(ctx context.Context, tx pgx.Tx, tenantID, prefix string) (int64, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
