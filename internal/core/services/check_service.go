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
	"github.com/shopspring/decimal"
)

var (
	ErrCheckNotPortfolio       = errors.New("only portfolio checks can be settled")
	ErrSettlementAccountNeeded = errors.New("collection requires a settlement account")
	ErrCheckContactRequired    = errors.New("paying out a check requires a contact on the check")
)

// checkService implements the check portfolio: registration into the
// portfolio account and settlement out of it. Every lifecycle move posts
// through the ledger in the same transaction.
type checkService struct {
	BaseService
	checkRepo  portsrepo.CheckRepositoryWithTx
	accountSvc portssvc.AccountSvcFacade
	ledgerSvc  portssvc.LedgerSvcFacade
}

// NewCheckService creates a new CheckService.
func NewCheckService(
	checkRepo portsrepo.CheckRepositoryWithTx,
	accountSvc portssvc.AccountSvcFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	authorizer portssvc.TenantAuthorizerSvc,
) portssvc.CheckSvcFacade {
	s := &checkService{
		checkRepo:  checkRepo,
		accountSvc: accountSvc,
		ledgerSvc:  ledgerSvc,
	}
	s.TenantAuthorizer = authorizer
	return s
}

var _ portssvc.CheckSvcFacade = (*checkService)(nil)

// GetCheckByID retrieves a specific check by its ID.
func (s *checkService) GetCheckByID(ctx context.Context, tenantID, checkID string, requestingUserID string) (*domain.Check, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	check, err := s.checkRepo.FindCheckByID(ctx, tenantID, checkID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find check by ID",
				slog.String("check_id", checkID))
		}
		return nil, err
	}
	return check, nil
}

// ListChecks retrieves a paginated list of checks in a tenant.
func (s *checkService) ListChecks(ctx context.Context, tenantID string, requestingUserID string, params dto.ListChecksParams) (*dto.ListChecksResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var status *domain.CheckStatus
	if params.Status != nil {
		st := domain.CheckStatus(*params.Status)
		status = &st
	}

	checks, err := s.checkRepo.ListChecks(ctx, tenantID, status, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list checks",
			slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve checks: %w", err)
	}
	return &dto.ListChecksResponse{Checks: dto.ToCheckResponses(checks)}, nil
}

// RegisterCheck takes a check into the portfolio. The portfolio account is
// debited; when the check came from a contact, the contact account is
// credited in the same transaction.
func (s *checkService) RegisterCheck(ctx context.Context, tenantID string, req dto.RegisterCheckRequest, creatorUserID string) (*domain.Check, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: check amount must be positive", apperrors.ErrValidation)
	}

	tx, err := s.checkRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.checkRepo.Rollback(ctx, tx)

	portfolio, err := s.accountSvc.EnsureSystemAccountInTx(ctx, tx, tenantID, domain.AccountCheckPortfolio, creatorUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	check := domain.Check{
		CheckID:            uuid.NewString(),
		TenantID:           tenantID,
		PortfolioAccountID: portfolio.AccountID,
		ContactID:          req.ContactID,
		OrderID:            req.OrderID,
		Number:             req.Number,
		BankName:           req.BankName,
		Amount:             req.Amount,
		DueDate:            req.DueDate,
		Status:             domain.CheckPortfolio,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.checkRepo.SaveCheckInTx(ctx, tx, check); err != nil {
		s.LogError(ctx, err, "Failed to save check",
			slog.String("number", req.Number))
		return nil, fmt.Errorf("failed to save check: %w", err)
	}

	docCheck := domain.DocumentCheck
	description := fmt.Sprintf("Check %s into portfolio", req.Number)

	if _, err := s.ledgerSvc.PostTransactionInTx(ctx, tx, tenantID, portssvc.PostingInput{
		AccountID:       portfolio.AccountID,
		TransactionType: domain.Debit,
		Amount:          req.Amount,
		CurrencyCode:    portfolio.CurrencyCode,
		TransactionDate: now,
		Description:     description,
		DocumentType:    &docCheck,
		DocumentID:      &check.CheckID,
	}, creatorUserID); err != nil {
		return nil, err
	}

	if req.ContactID != nil {
		contactAccount, err := s.accountSvc.EnsureContactAccountInTx(ctx, tx, tenantID, *req.ContactID, creatorUserID)
		if err != nil {
			return nil, err
		}
		if _, err := s.ledgerSvc.PostTransactionInTx(ctx, tx, tenantID, portssvc.PostingInput{
			AccountID:       contactAccount.AccountID,
			TransactionType: domain.Credit,
			Amount:          req.Amount,
			CurrencyCode:    portfolio.CurrencyCode,
			TransactionDate: now,
			Description:     description,
			DocumentType:    &docCheck,
			DocumentID:      &check.CheckID,
		}, creatorUserID); err != nil {
			return nil, err
		}
	}

	if err := s.checkRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit check registration: %w", err)
	}

	s.LogInfo(ctx, "Check registered into portfolio",
		slog.String("check_id", check.CheckID),
		slog.String("amount", req.Amount.String()))
	return &check, nil
}

// SettleCheck moves a portfolio check to its final state. COLLECTED credits
// the portfolio and debits the given settlement account; PAID credits the
// portfolio and debits the contact the check is endorsed to.
func (s *checkService) SettleCheck(ctx context.Context, tenantID, checkID string, req dto.SettleCheckRequest, requestingUserID string) (*domain.Check, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Status == domain.CheckCollected && req.SettlementAccountID == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSettlementAccountNeeded)
	}

	tx, err := s.checkRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.checkRepo.Rollback(ctx, tx)

	check, err := s.checkRepo.FindCheckByIDForUpdate(ctx, tx, tenantID, checkID)
	if err != nil {
		return nil, err
	}
	if !check.Status.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("%w: %s: %s -> %s", apperrors.ErrConflict, ErrCheckNotPortfolio, check.Status, req.Status)
	}

	var counterAccountID string
	switch req.Status {
	case domain.CheckCollected:
		counterAccountID = *req.SettlementAccountID
	case domain.CheckPaid:
		if check.ContactID == nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCheckContactRequired)
		}
		contactAccount, err := s.accountSvc.EnsureContactAccountInTx(ctx, tx, tenantID, *check.ContactID, requestingUserID)
		if err != nil {
			return nil, err
		}
		counterAccountID = contactAccount.AccountID
	}

	portfolio, err := s.accountSvc.EnsureSystemAccountInTx(ctx, tx, tenantID, domain.AccountCheckPortfolio, requestingUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	docCheck := domain.DocumentCheck
	description := fmt.Sprintf("Check %s %s", check.Number, req.Status)

	if _, err := s.ledgerSvc.PostTransactionInTx(ctx, tx, tenantID, portssvc.PostingInput{
		AccountID:       check.PortfolioAccountID,
		TransactionType: domain.Credit,
		Amount:          check.Amount,
		CurrencyCode:    portfolio.CurrencyCode,
		TransactionDate: now,
		Description:     description,
		DocumentType:    &docCheck,
		DocumentID:      &check.CheckID,
	}, requestingUserID); err != nil {
		return nil, err
	}
	if _, err := s.ledgerSvc.PostTransactionInTx(ctx, tx, tenantID, portssvc.PostingInput{
		AccountID:       counterAccountID,
		TransactionType: domain.Debit,
		Amount:          check.Amount,
		CurrencyCode:    portfolio.CurrencyCode,
		TransactionDate: now,
		Description:     description,
		DocumentType:    &docCheck,
		DocumentID:      &check.CheckID,
	}, requestingUserID); err != nil {
		return nil, err
	}

	if err := s.checkRepo.UpdateCheckStatusInTx(ctx, tx, tenantID, checkID, req.Status, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update check status",
			slog.String("check_id", checkID))
		return nil, fmt.Errorf("failed to update check status: %w", err)
	}

	if err := s.checkRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit check settlement: %w", err)
	}

	check.Status = req.Status
	check.LastUpdatedAt = now
	check.LastUpdatedBy = requestingUserID

	s.LogInfo(ctx, "Check settled",
		slog.String("check_id", checkID),
		slog.String("status", string(req.Status)))
	return check, nil
}
