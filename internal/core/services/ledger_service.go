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
	"github.com/bizledger/bizledger_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountInactive    = errors.New("account is inactive")
	ErrCurrencyMismatch   = errors.New("account currency does not match transaction currency")
	ErrDocumentIncomplete = errors.New("document type and document ID must be set together")
	ErrAmountNotPositive  = errors.New("transaction amount must be positive")
)

// ledgerService provides the append-only posting engine and the single
// order payment derivation implementation.
type ledgerService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	orderRepo   portsrepo.OrderRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	txnRepo portsrepo.TransactionRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	orderRepo portsrepo.OrderRepositoryFacade,
	authorizer portssvc.TenantAuthorizerSvc,
) portssvc.LedgerSvcFacade {
	s := &ledgerService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		orderRepo:   orderRepo,
	}
	s.TenantAuthorizer = authorizer
	return s
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetTransactionByID retrieves a specific ledger transaction.
func (s *ledgerService) GetTransactionByID(ctx context.Context, tenantID, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, tenantID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactionsByAccount retrieves transactions for a specific account using token pagination.
func (s *ledgerService) ListTransactionsByAccount(ctx context.Context, tenantID, accountID string, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	transactions, nextToken, err := s.txnRepo.ListTransactionsByAccountID(ctx, tenantID, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions by account",
			slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}

// ListTransactionsByDocument retrieves all transactions linked to a source document.
func (s *ledgerService) ListTransactionsByDocument(ctx context.Context, tenantID string, documentType domain.DocumentType, documentID string, requestingUserID string) ([]domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.txnRepo.FindTransactionsByDocument(ctx, tenantID, documentType, documentID)
}

// CalculateAccountBalance computes the balance of an account from its signed
// transaction sum. The persisted account balance is maintained to equal this.
func (s *ledgerService) CalculateAccountBalance(ctx context.Context, tenantID, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	debits, credits, err := s.txnRepo.SumTransactionsByAccountID(ctx, tenantID, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum account transactions: %w", err)
	}

	if account.AccountType.IsCreditNormal() {
		return credits.Sub(debits), nil
	}
	return debits.Sub(credits), nil
}

// AddTransaction appends one posting. For payment documents the linked
// order's payment fields are re-derived in the same database transaction.
func (s *ledgerService) AddTransaction(ctx context.Context, tenantID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if (req.DocumentType == nil) != (req.DocumentID == nil) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDocumentIncomplete)
	}

	input := portssvc.PostingInput{
		AccountID:       req.AccountID,
		TransactionType: domain.TransactionType(req.TransactionType),
		Amount:          req.Amount,
		CurrencyCode:    req.CurrencyCode,
		TransactionDate: req.TransactionDate,
		Description:     req.Description,
		DocumentID:      req.DocumentID,
	}
	if req.DocumentType != nil {
		dt := domain.DocumentType(*req.DocumentType)
		input.DocumentType = &dt
	}

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.txnRepo.Rollback(ctx, tx)

	txn, err := s.PostTransactionInTx(ctx, tx, tenantID, input, creatorUserID)
	if err != nil {
		return nil, err
	}

	// Payment postings feed the order payment derivation.
	if input.DocumentType != nil && *input.DocumentType == domain.DocumentPayment && input.DocumentID != nil {
		order, err := s.orderRepo.FindOrderByIDForUpdate(ctx, tx, tenantID, *input.DocumentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: order %s not found for payment", apperrors.ErrValidation, *input.DocumentID)
			}
			return nil, err
		}
		if err := s.DeriveOrderPayment(ctx, tx, tenantID, order, creatorUserID); err != nil {
			return nil, err
		}
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction added successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.String("tenant_id", tenantID))
	return txn, nil
}

// PostTransactionInTx locks the account row, appends the posting and applies
// the signed delta to the account balance. All balance-touching code paths go
// through here so the sign convention stays in one place.
func (s *ledgerService) PostTransactionInTx(ctx context.Context, tx pgx.Tx, tenantID string, input portssvc.PostingInput, actorUserID string) (*domain.Transaction, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, tenantID, input.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, input.AccountID)
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAccountInactive)
	}
	if account.CurrencyCode != input.CurrencyCode {
		return nil, fmt.Errorf("%w: %s has %s, posting has %s", ErrCurrencyMismatch, input.AccountID, account.CurrencyCode, input.CurrencyCode)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		TenantID:        tenantID,
		AccountID:       input.AccountID,
		TransactionType: input.TransactionType,
		Amount:          input.Amount,
		CurrencyCode:    input.CurrencyCode,
		TransactionDate: input.TransactionDate,
		Description:     input.Description,
		DocumentType:    input.DocumentType,
		DocumentID:      input.DocumentID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	signedAmount, err := accounting.CalculateSignedAmount(txn, account.AccountType)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate signed amount: %w", err)
	}
	txn.RunningBalance = account.Balance.Add(signedAmount)

	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	if err := s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, tenantID, input.AccountID, signedAmount, actorUserID, now); err != nil {
		return nil, fmt.Errorf("failed to update account balance: %w", err)
	}

	return &txn, nil
}

// DeriveOrderPayment recomputes paid_amount and payment_status for an order
// from its payment transactions and writes the cache columns. This is the
// only writer of those columns.
func (s *ledgerService) DeriveOrderPayment(ctx context.Context, tx pgx.Tx, tenantID string, order *domain.Order, actorUserID string) error {
	payments, err := s.txnRepo.FindTransactionsByDocumentInTx(ctx, tx, tenantID, domain.DocumentPayment, order.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load payment transactions for order %s: %w", order.OrderID, err)
	}

	paid := accounting.SumPaymentAmounts(payments, order.OrderType)
	status := domain.DerivePaymentStatus(paid, order.Total)

	now := time.Now().UTC()
	if err := s.orderRepo.UpdateOrderPaymentInTx(ctx, tx, tenantID, order.OrderID, paid, status, actorUserID, now); err != nil {
		return fmt.Errorf("failed to write derived payment fields for order %s: %w", order.OrderID, err)
	}

	order.PaidAmount = paid
	order.PaymentStatus = status

	s.LogDebug(ctx, "Order payment derived",
		slog.String("order_id", order.OrderID),
		slog.String("paid_amount", paid.String()),
		slog.String("payment_status", string(status)))
	return nil
}
