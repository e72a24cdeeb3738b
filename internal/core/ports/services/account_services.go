package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/jackc/pgx/v5"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, tenantID, accountID string, requestingUserID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts in a tenant.
	ListAccounts(ctx context.Context, tenantID string, requestingUserID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new manually managed account.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, tenantID, accountID string, requestingUserID string) error
}

// AccountProvisionerSvc lazily creates accounts on first financial reference.
// All methods are idempotent: an existing account is returned as is.
type AccountProvisionerSvc interface {
	// EnsureContactAccount returns the contact's party account, creating it
	// with the next sequential code when absent.
	EnsureContactAccount(ctx context.Context, tenantID, contactID string, actorUserID string) (*domain.Account, error)

	// EnsureEmployeeAccount returns the employee's personnel account, creating it when absent.
	EnsureEmployeeAccount(ctx context.Context, tenantID, employeeID string, actorUserID string) (*domain.Account, error)

	// EnsureSystemAccount returns the tenant's account of the given system type
	// (safe, bank, pos, check portfolio, credit card), creating it when absent.
	EnsureSystemAccount(ctx context.Context, tenantID string, accountType domain.AccountType, actorUserID string) (*domain.Account, error)

	// EnsureContactAccountInTx is EnsureContactAccount running inside the
	// caller's database transaction.
	EnsureContactAccountInTx(ctx context.Context, tx pgx.Tx, tenantID, contactID string, actorUserID string) (*domain.Account, error)

	// EnsureEmployeeAccountInTx is EnsureEmployeeAccount running inside the
	// caller's database transaction.
	EnsureEmployeeAccountInTx(ctx context.Context, tx pgx.Tx, tenantID, employeeID string, actorUserID string) (*domain.Account, error)

	// EnsureSystemAccountInTx is EnsureSystemAccount running inside the
	// caller's database transaction.
	EnsureSystemAccountInTx(ctx context.Context, tx pgx.Tx, tenantID string, accountType domain.AccountType, actorUserID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountProvisionerSvc
}
