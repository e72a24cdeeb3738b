package services

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations for ledger data
type LedgerReaderSvc interface {
	// GetTransactionByID retrieves a specific ledger transaction.
	GetTransactionByID(ctx context.Context, tenantID, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves transactions for a specific account.
	ListTransactionsByAccount(ctx context.Context, tenantID, accountID string, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListTransactionsByDocument retrieves all transactions linked to a source document.
	ListTransactionsByDocument(ctx context.Context, tenantID string, documentType domain.DocumentType, documentID string, requestingUserID string) ([]domain.Transaction, error)
}

// LedgerWriterSvc defines write operations for ledger data
type LedgerWriterSvc interface {
	// AddTransaction appends a single posting, updating the account balance and,
	// for payment documents, re-deriving the linked order's payment fields. The
	// whole operation runs in one database transaction.
	AddTransaction(ctx context.Context, tenantID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)
}

// LedgerCalculatorSvc defines calculation operations over the ledger
type LedgerCalculatorSvc interface {
	// CalculateAccountBalance calculates the current balance of an account from
	// its signed transaction sum.
	CalculateAccountBalance(ctx context.Context, tenantID, accountID string) (decimal.Decimal, error)
}

// PostingInput describes one posting made inside an open database transaction.
type PostingInput struct {
	AccountID       string
	TransactionType domain.TransactionType
	Amount          decimal.Decimal
	CurrencyCode    string
	TransactionDate time.Time
	Description     string
	DocumentType    *domain.DocumentType
	DocumentID      *string
}

// LedgerPosterSvc posts ledger entries inside a caller-managed database
// transaction. This is the only code path that touches account balances, so
// the sign convention stays in one place.
type LedgerPosterSvc interface {
	// PostTransactionInTx locks the account row, appends the posting with its
	// running balance and applies the signed delta to the account balance.
	PostTransactionInTx(ctx context.Context, tx pgx.Tx, tenantID string, input PostingInput, actorUserID string) (*domain.Transaction, error)
}

// OrderPaymentDeriverSvc is the single implementation deriving an order's
// paid amount and payment status from its payment transactions. Every call
// site that needs derived payment fields goes through here.
type OrderPaymentDeriverSvc interface {
	// DeriveOrderPayment recomputes paid_amount and payment_status for an
	// order inside the caller's transaction and writes the cache columns.
	DeriveOrderPayment(ctx context.Context, tx pgx.Tx, tenantID string, order *domain.Order, actorUserID string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerCalculatorSvc
	LedgerPosterSvc
	OrderPaymentDeriverSvc
}
