package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a chart-of-accounts entry. Party accounts
// (CUSTOMER, SUPPLIER, PERSONNEL) are tied to exactly one contact or
// employee; the rest are system accounts owned by the tenant itself.
type AccountType string

const (
	AccountStandard       AccountType = "STANDARD"
	AccountBank           AccountType = "BANK"
	AccountSafe           AccountType = "SAFE"
	AccountPOS            AccountType = "POS"
	AccountCheckPortfolio AccountType = "CHECK_PORTFOLIO"
	AccountCreditCard     AccountType = "CREDIT_CARD"
	AccountSupplier       AccountType = "SUPPLIER"
	AccountCustomer       AccountType = "CUSTOMER"
	AccountPersonnel      AccountType = "PERSONNEL"
)

// CodePrefix returns the hierarchical code prefix used when generating
// sequential account codes for this type (e.g. "120" -> "120.01.003").
func (t AccountType) CodePrefix() string {
	switch t {
	case AccountSafe:
		return "100"
	case AccountCheckPortfolio:
		return "101"
	case AccountBank:
		return "102"
	case AccountCreditCard:
		return "103"
	case AccountPOS:
		return "108"
	case AccountCustomer:
		return "120"
	case AccountSupplier:
		return "320"
	case AccountPersonnel:
		return "335"
	default:
		return "600"
	}
}

// IsCreditNormal reports whether the account balance grows with credits.
// Supplier and credit-card accounts track what the business owes; everything
// else is debit-normal (what the business holds or is owed).
func (t AccountType) IsCreditNormal() bool {
	return t == AccountSupplier || t == AccountCreditCard
}

// IsPartyAccount reports whether the account must be bound to a contact or employee.
func (t AccountType) IsPartyAccount() bool {
	return t == AccountCustomer || t == AccountSupplier || t == AccountPersonnel
}

// Account represents a chart-of-accounts entry within a tenant.
// Party accounts are provisioned lazily on first reference and never deleted.
type Account struct {
	AccountID    string      `json:"accountID"`    // Primary Key (UUID)
	TenantID     string      `json:"tenantID"`     // FK -> tenants.tenant_id (NON-NULL)
	Code         string      `json:"code"`         // Hierarchical code, unique per tenant
	Name         string      `json:"name"`         // Display name
	AccountType  AccountType `json:"accountType"`  // See constants above
	ContactID    *string     `json:"contactID"`    // Set for customer/supplier party accounts
	EmployeeID   *string     `json:"employeeID"`   // Set for personnel party accounts
	CurrencyCode string      `json:"currencyCode"` // ISO currency code
	Description  string      `json:"description"`
	IsActive     bool        `json:"isActive"`
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Persisted balance, maintained under row lock
}
