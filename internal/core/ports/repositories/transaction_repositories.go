package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for ledger transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific ledger transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a paginated list of transactions for a specific
	// account using token-based pagination. It returns the transactions, a token for the
	// next page, and an error.
	ListTransactionsByAccountID(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindTransactionsByDocument retrieves all transactions linked to a source document.
	FindTransactionsByDocument(ctx context.Context, tenantID string, documentType domain.DocumentType, documentID string) ([]domain.Transaction, error)

	// FindTransactionsByDocumentInTx is FindTransactionsByDocument reading through
	// an open database transaction, so it sees that transaction's own writes.
	FindTransactionsByDocumentInTx(ctx context.Context, tx pgx.Tx, tenantID string, documentType domain.DocumentType, documentID string) ([]domain.Transaction, error)

	// SumTransactionsByAccountID returns the debit and credit totals of an account.
	SumTransactionsByAccountID(ctx context.Context, tenantID, accountID string) (debits, credits decimal.Decimal, err error)
}

// TransactionWriter defines write operations for ledger transaction data.
// The transactions table is append-only: there is no update or delete path.
type TransactionWriter interface {
	// SaveTransactionInTx persists a single ledger transaction within an existing
	// database transaction. The running balance must already be computed by the caller.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all ledger transaction repository interfaces
// This is a facade for clients that need access to all operations
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
