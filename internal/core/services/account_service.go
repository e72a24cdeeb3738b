package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface, including the
// lazy account provisioner.
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryWithTx
	contactRepo  portsrepo.ContactReader
	employeeRepo portsrepo.EmployeeReader
	tenantSvc    portssvc.TenantReaderSvc
}

// AccountServiceOption configures optional dependencies of the account service.
type AccountServiceOption func(*accountService)

// WithTenantAuthorizer sets the tenant authorizer used for permission checks.
func WithTenantAuthorizer(authorizer portssvc.TenantAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.TenantAuthorizer = authorizer
	}
}

// WithTenantReader sets the tenant reader used to resolve tenant defaults.
func WithTenantReader(reader portssvc.TenantReaderSvc) AccountServiceOption {
	return func(s *accountService) {
		s.tenantSvc = reader
	}
}

// NewAccountService creates a new account service with the provided dependencies
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	contactRepo portsrepo.ContactReader,
	employeeRepo portsrepo.EmployeeReader,
	opts ...AccountServiceOption,
) portssvc.AccountSvcFacade {
	s := &accountService{
		accountRepo:  accountRepo,
		contactRepo:  contactRepo,
		employeeRepo: employeeRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves a specific account by its ID
func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID string, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID),
				slog.String("tenant_id", tenantID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of accounts in a tenant
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, requestingUserID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var accountType *domain.AccountType
	if params.AccountType != nil {
		t := domain.AccountType(*params.AccountType)
		accountType = &t
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, accountType, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.String("tenant_id", tenantID))
		return nil, err
	}

	return &dto.ListAccountsResponse{
		Accounts: dto.ToListAccountResponse(accounts),
	}, nil
}

// CreateAccount persists a new manually managed account
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.AccountType.IsPartyAccount() {
		return nil, fmt.Errorf("%w: %s accounts are provisioned automatically from their party", apperrors.ErrValidation, req.AccountType)
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.accountRepo.Rollback(ctx, tx)

	account, err := s.provisionAccountInTx(ctx, tx, tenantID, req.AccountType, req.Name, req.CurrencyCode, req.Description, nil, nil, creatorUserID)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit account creation: %w", err)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("tenant_id", tenantID))
	return account, nil
}

// UpdateAccount updates an existing account's details
func (s *accountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return account, nil
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account as inactive. Accounts are never deleted.
func (s *accountService) DeactivateAccount(ctx context.Context, tenantID, accountID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated",
		slog.String("account_id", accountID),
		slog.String("tenant_id", tenantID))
	return nil
}

// EnsureContactAccount returns the contact's party account, creating it when absent.
func (s *accountService) EnsureContactAccount(ctx context.Context, tenantID, contactID string, actorUserID string) (*domain.Account, error) {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.accountRepo.Rollback(ctx, tx)

	account, err := s.EnsureContactAccountInTx(ctx, tx, tenantID, contactID, actorUserID)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit account provisioning: %w", err)
	}
	return account, nil
}

// EnsureContactAccountInTx provisions a contact's party account inside the caller's transaction.
func (s *accountService) EnsureContactAccountInTx(ctx context.Context, tx pgx.Tx, tenantID, contactID string, actorUserID string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindAccountByContactID(ctx, tenantID, contactID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	contact, err := s.contactRepo.FindContactByID(ctx, tenantID, contactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: contact %s not found", apperrors.ErrValidation, contactID)
		}
		return nil, err
	}

	accountType := contact.Kind.AccountType()
	currency, err := s.resolveTenantCurrency(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	account, err := s.provisionAccountInTx(ctx, tx, tenantID, accountType, contact.Name, currency, "", &contactID, nil, actorUserID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Provisioned contact account",
		slog.String("contact_id", contactID),
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return account, nil
}

// EnsureEmployeeAccount returns the employee's personnel account, creating it when absent.
func (s *accountService) EnsureEmployeeAccount(ctx context.Context, tenantID, employeeID string, actorUserID string) (*domain.Account, error) {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.accountRepo.Rollback(ctx, tx)

	account, err := s.EnsureEmployeeAccountInTx(ctx, tx, tenantID, employeeID, actorUserID)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit account provisioning: %w", err)
	}
	return account, nil
}

// EnsureEmployeeAccountInTx provisions an employee's personnel account inside the caller's transaction.
func (s *accountService) EnsureEmployeeAccountInTx(ctx context.Context, tx pgx.Tx, tenantID, employeeID string, actorUserID string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindAccountByEmployeeID(ctx, tenantID, employeeID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, tenantID, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: employee %s not found", apperrors.ErrValidation, employeeID)
		}
		return nil, err
	}

	currency, err := s.resolveTenantCurrency(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	account, err := s.provisionAccountInTx(ctx, tx, tenantID, domain.AccountPersonnel, employee.Name, currency, "", nil, &employeeID, actorUserID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Provisioned employee account",
		slog.String("employee_id", employeeID),
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return account, nil
}

// EnsureSystemAccount returns the tenant's system account of the given type, creating it when absent.
func (s *accountService) EnsureSystemAccount(ctx context.Context, tenantID string, accountType domain.AccountType, actorUserID string) (*domain.Account, error) {
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.accountRepo.Rollback(ctx, tx)

	account, err := s.EnsureSystemAccountInTx(ctx, tx, tenantID, accountType, actorUserID)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit account provisioning: %w", err)
	}
	return account, nil
}

// EnsureSystemAccountInTx provisions a system account inside the caller's transaction.
func (s *accountService) EnsureSystemAccountInTx(ctx context.Context, tx pgx.Tx, tenantID string, accountType domain.AccountType, actorUserID string) (*domain.Account, error) {
	if accountType.IsPartyAccount() {
		return nil, fmt.Errorf("%w: %s is a party account type", apperrors.ErrValidation, accountType)
	}

	existing, err := s.accountRepo.FindSystemAccountByType(ctx, tenantID, accountType)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	currency, err := s.resolveTenantCurrency(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	account, err := s.provisionAccountInTx(ctx, tx, tenantID, accountType, systemAccountName(accountType), currency, "", nil, nil, actorUserID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Provisioned system account",
		slog.String("account_type", string(accountType)),
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return account, nil
}

// provisionAccountInTx allocates the next sequential code for the type's
// prefix and inserts the account, all inside the caller's transaction.
func (s *accountService) provisionAccountInTx(ctx context.Context, tx pgx.Tx, tenantID string, accountType domain.AccountType, name, currency, description string, contactID, employeeID *string, actorUserID string) (*domain.Account, error) {
	prefix := accountType.CodePrefix()
	seq, err := s.accountRepo.NextAccountCodeInTx(ctx, tx, tenantID, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate account code for prefix %s: %w", prefix, err)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     tenantID,
		Code:         fmt.Sprintf("%s.01.%03d", prefix, seq),
		Name:         name,
		AccountType:  accountType,
		ContactID:    contactID,
		EmployeeID:   employeeID,
		CurrencyCode: currency,
		Description:  description,
		IsActive:     true,
		Balance:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return &account, nil
}

func (s *accountService) resolveTenantCurrency(ctx context.Context, tenantID string) (string, error) {
	if s.tenantSvc == nil {
		return "USD", nil
	}
	tenant, err := s.tenantSvc.FindTenantByID(ctx, tenantID)
	if err != nil {
		return "", err
	}
	if tenant.DefaultCurrencyCode != nil && *tenant.DefaultCurrencyCode != "" {
		return *tenant.DefaultCurrencyCode, nil
	}
	return "USD", nil
}

func systemAccountName(accountType domain.AccountType) string {
	switch accountType {
	case domain.AccountSafe:
		return "Safe"
	case domain.AccountBank:
		return "Bank"
	case domain.AccountPOS:
		return "POS"
	case domain.AccountCheckPortfolio:
		return "Check Portfolio"
	case domain.AccountCreditCard:
		return "Credit Card"
	default:
		return string(accountType)
	}
}
