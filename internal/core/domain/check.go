package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckStatus models the lifecycle of a check instrument.
// Checks enter the portfolio and leave it either paid out or collected.
type CheckStatus string

const (
	CheckPortfolio CheckStatus = "PORTFOLIO"
	CheckPaid      CheckStatus = "PAID"
	CheckCollected CheckStatus = "COLLECTED"
)

// CanTransitionTo reports whether the check lifecycle permits the move.
// Only portfolio checks can be settled; settled checks are final.
func (s CheckStatus) CanTransitionTo(target CheckStatus) bool {
	return s == CheckPortfolio && (target == CheckPaid || target == CheckCollected)
}

// Check is a financial instrument held against the tenant's check-portfolio account.
type Check struct {
	CheckID            string          `json:"checkID"`            // Primary Key (UUID)
	TenantID           string          `json:"tenantID"`           // FK -> tenants.tenant_id
	PortfolioAccountID string          `json:"portfolioAccountID"` // FK -> accounts (CHECK_PORTFOLIO)
	ContactID          *string         `json:"contactID"`          // Issuing/receiving party
	OrderID            *string         `json:"orderID"`            // Order the check settles, if any
	Number             string          `json:"number"`             // Printed check number
	BankName           string          `json:"bankName"`
	Amount             decimal.Decimal `json:"amount"`
	DueDate            time.Time       `json:"dueDate"`
	Status             CheckStatus     `json:"status"`
	AuditFields
}
