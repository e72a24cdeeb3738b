package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterOrderPaymentRequest defines the data needed to record a payment
// against an order. AccountID is the asset-side settlement account (safe,
// bank, pos or credit card).
type RegisterOrderPaymentRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	Description string          `json:"description"`
}

// MarkOrderAsPaidRequest settles the open remainder of an order in full
// against the given settlement account.
type MarkOrderAsPaidRequest struct {
	AccountID   string    `json:"accountID" binding:"required"`
	PaymentDate time.Time `json:"paymentDate" binding:"required"`
}

// OrderPaymentResponse returns the refreshed order together with the
// postings the payment produced.
type OrderPaymentResponse struct {
	Order        OrderResponse         `json:"order"`
	Transactions []TransactionResponse `json:"transactions"`
}
