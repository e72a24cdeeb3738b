package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a posting is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Opposite returns the reversing transaction type.
func (t TransactionType) Opposite() TransactionType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// DocumentType tags a transaction as belonging to a business event.
type DocumentType string

const (
	DocumentOrder      DocumentType = "ORDER"
	DocumentPayment    DocumentType = "PAYMENT"
	DocumentCheck      DocumentType = "CHECK"
	DocumentSalary     DocumentType = "SALARY"
	DocumentAdjustment DocumentType = "ADJUSTMENT"
)

// Transaction is a single debit or credit posting against one account.
// Rows are append-only: no update or delete in normal flow.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`   // Primary Key (UUID)
	TenantID        string          `json:"tenantID"`        // FK -> tenants.tenant_id (Not Null)
	AccountID       string          `json:"accountID"`       // FK -> accounts.account_id (Not Null)
	TransactionType TransactionType `json:"transactionType"` // DEBIT or CREDIT
	Amount          decimal.Decimal `json:"amount"`          // Always positive
	CurrencyCode    string          `json:"currencyCode"`    // Must match account currency
	TransactionDate time.Time       `json:"transactionDate"` // Date the event occurred
	Description     string          `json:"description"`
	DocumentType    *DocumentType   `json:"documentType"` // Nullable business-event linkage
	DocumentID      *string         `json:"documentID"`   // Nullable, e.g. order ID
	AuditFields
	RunningBalance decimal.Decimal `json:"runningBalance"` // Account balance after this posting
}
