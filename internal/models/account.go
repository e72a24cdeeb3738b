package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// Account represents a row of the accounts table.
type Account struct {
	AccountID    string      `db:"account_id"`
	TenantID     string      `db:"tenant_id"`
	Code         string      `db:"code"`
	Name         string      `db:"name"`
	AccountType  AccountType `db:"account_type"`
	ContactID    *string     `db:"contact_id"`
	EmployeeID   *string     `db:"employee_id"`
	CurrencyCode string      `db:"currency_code"`
	Description  string      `db:"description"`
	IsActive     bool        `db:"is_active"`
	AuditFields
	Balance decimal.Decimal `db:"balance"`
}
