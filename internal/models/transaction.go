package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType at the storage layer.
type TransactionType string

// Transaction represents a row of the append-only transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	TenantID        string          `db:"tenant_id"`
	AccountID       string          `db:"account_id"`
	TransactionType TransactionType `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	DocumentType    *string         `db:"document_type"`
	DocumentID      *string         `db:"document_id"`
	AuditFields
	RunningBalance decimal.Decimal `db:"running_balance"`
}
