package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/bizledger/bizledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, tenant_id, account_id, transaction_type, amount, currency_code, transaction_date, description, document_type, document_id, created_at, created_by, last_updated_at, last_updated_by, running_balance`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TenantID,
		&m.AccountID,
		&m.TransactionType,
		&m.Amount,
		&m.CurrencyCode,
		&m.TransactionDate,
		&m.Description,
		&m.DocumentType,
		&m.DocumentID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.RunningBalance,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// FindTransactionByID retrieves a transaction by its ID within a tenant.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE tenant_id = $1 AND transaction_id = $2;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, tenantID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactionsByAccountID retrieves transactions for an account newest
// first, using keyset pagination on (transaction_date, created_at).
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1 AND account_id = $2
	`
	args := []any{tenantID, accountID}

	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (transaction_date, created_at) < ($3, $4)`
		args = append(args, txnDate, createdAt)
	}

	// Fetch one extra row to detect whether another page exists.
	query += fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var newNextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		newNextToken = &token
	}
	return txns, newNextToken, nil
}

// FindTransactionsByDocument retrieves all postings linked to a business document.
func (r *PgxTransactionRepository) FindTransactionsByDocument(ctx context.Context, tenantID string, documentType domain.DocumentType, documentID string) ([]domain.Transaction, error) {
	return r.findByDocument(ctx, r.Pool, tenantID, documentType, documentID)
}

// FindTransactionsByDocumentInTx is FindTransactionsByDocument within a
// transaction, so derivation sees postings added earlier in the same tx.
func (r *PgxTransactionRepository) FindTransactionsByDocumentInTx(ctx context.Context, tx pgx.Tx, tenantID string, documentType domain.DocumentType, documentID string) ([]domain.Transaction, error) {
	return r.findByDocument(ctx, tx, tenantID, documentType, documentID)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxTransactionRepository) findByDocument(ctx context.Context, db querier, tenantID string, documentType domain.DocumentType, documentID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1 AND document_type = $2 AND document_id = $3
		ORDER BY created_at;
	`
	rows, err := db.Query(ctx, query, tenantID, string(documentType), documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for document %s/%s: %w", documentType, documentID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// SumTransactionsByAccountID aggregates total debits and credits of an account.
func (r *PgxTransactionRepository) SumTransactionsByAccountID(ctx context.Context, tenantID, accountID string) (debits, credits decimal.Decimal, err error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'DEBIT'), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'CREDIT'), 0)
		FROM transactions
		WHERE tenant_id = $1 AND account_id = $2;
	`
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum transactions for account %s: %w", accountID, err)
	}
	return debits, credits, nil
}

// SaveTransactionInTx inserts a single posting within a transaction.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	return r.saveTransactionsInTx(ctx, tx, []domain.Transaction{txn})
}

// saveTransactionsInTx inserts postings in one batch within a transaction.
func (r *PgxTransactionRepository) saveTransactionsInTx(ctx context.Context, tx pgx.Tx, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	batch := &pgx.Batch{}
	for _, txn := range txns {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(query,
			m.TransactionID,
			m.TenantID,
			m.AccountID,
			m.TransactionType,
			m.Amount,
			m.CurrencyCode,
			m.TransactionDate,
			m.Description,
			m.DocumentType,
			m.DocumentID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
			m.RunningBalance,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert transaction %s: %w", txns[i].TransactionID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close transaction insert batch: %w", err)
	}
	return batchErr
}
