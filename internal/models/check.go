package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Check represents a row of the checks table.
type Check struct {
	CheckID            string          `db:"check_id"`
	TenantID           string          `db:"tenant_id"`
	PortfolioAccountID string          `db:"portfolio_account_id"`
	ContactID          *string         `db:"contact_id"`
	OrderID            *string         `db:"order_id"`
	Number             string          `db:"number"`
	BankName           string          `db:"bank_name"`
	Amount             decimal.Decimal `db:"amount"`
	DueDate            time.Time       `db:"due_date"`
	Status             string          `db:"status"`
	AuditFields
}
