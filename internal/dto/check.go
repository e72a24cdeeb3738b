package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterCheckRequest defines the data needed to take a check into the portfolio.
type RegisterCheckRequest struct {
	ContactID *string         `json:"contactID"`
	OrderID   *string         `json:"orderID"`
	Number    string          `json:"number" binding:"required"`
	BankName  string          `json:"bankName"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	DueDate   time.Time       `json:"dueDate" binding:"required"`
}

// SettleCheckRequest defines a check lifecycle transition out of the portfolio.
// SettlementAccountID names the asset account credited or debited on settlement;
// it is required for COLLECTED and ignored for PAID.
type SettleCheckRequest struct {
	Status              domain.CheckStatus `json:"status" binding:"required,oneof=PAID COLLECTED"`
	SettlementAccountID *string            `json:"settlementAccountID"`
}

// CheckResponse defines the data returned for a check.
type CheckResponse struct {
	CheckID            string             `json:"checkID"`
	PortfolioAccountID string             `json:"portfolioAccountID"`
	ContactID          *string            `json:"contactID,omitempty"`
	OrderID            *string            `json:"orderID,omitempty"`
	Number             string             `json:"number"`
	BankName           string             `json:"bankName"`
	Amount             decimal.Decimal    `json:"amount"`
	DueDate            time.Time          `json:"dueDate"`
	Status             domain.CheckStatus `json:"status"`
	CreatedAt          time.Time          `json:"createdAt"`
	LastUpdatedAt      time.Time          `json:"lastUpdatedAt"`
}

// ToCheckResponse converts a domain.Check to CheckResponse DTO.
func ToCheckResponse(c *domain.Check) CheckResponse {
	return CheckResponse{
		CheckID:            c.CheckID,
		PortfolioAccountID: c.PortfolioAccountID,
		ContactID:          c.ContactID,
		OrderID:            c.OrderID,
		Number:             c.Number,
		BankName:           c.BankName,
		Amount:             c.Amount,
		DueDate:            c.DueDate,
		Status:             c.Status,
		CreatedAt:          c.CreatedAt,
		LastUpdatedAt:      c.LastUpdatedAt,
	}
}

// ToCheckResponses converts a slice of domain.Check to []CheckResponse.
func ToCheckResponses(checks []domain.Check) []CheckResponse {
	res := make([]CheckResponse, len(checks))
	for i, c := range checks {
		res[i] = ToCheckResponse(&c)
	}
	return res
}

// ListChecksParams defines query parameters for listing checks.
type ListChecksParams struct {
	Limit  int     `form:"limit,default=20"`
	Offset int     `form:"offset,default=0"`
	Status *string `form:"status" binding:"omitempty,oneof=PORTFOLIO PAID COLLECTED"`
}

// ListChecksResponse wraps the list of checks.
type ListChecksResponse struct {
	Checks []CheckResponse `json:"checks"`
}
