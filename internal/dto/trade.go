package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TradePaymentMethod selects the settlement channel of a trade.
// Each method maps to one provisioned system account type.
type TradePaymentMethod string

const (
	TradePaymentNone       TradePaymentMethod = "NONE"
	TradePaymentCash       TradePaymentMethod = "CASH"
	TradePaymentBank       TradePaymentMethod = "BANK"
	TradePaymentPOS        TradePaymentMethod = "POS"
	TradePaymentCreditCard TradePaymentMethod = "CREDIT_CARD"
	TradePaymentCheck      TradePaymentMethod = "CHECK"
)

// SettlementAccountType returns the system account type backing the method.
// NONE has no settlement leg.
func (m TradePaymentMethod) SettlementAccountType() (domain.AccountType, bool) {
	switch m {
	case TradePaymentCash:
		return domain.AccountSafe, true
	case TradePaymentBank:
		return domain.AccountBank, true
	case TradePaymentPOS:
		return domain.AccountPOS, true
	case TradePaymentCreditCard:
		return domain.AccountCreditCard, true
	case TradePaymentCheck:
		return domain.AccountCheckPortfolio, true
	default:
		return "", false
	}
}

// TradeCheckDetails carries the check instrument registered when a trade is
// settled by check.
type TradeCheckDetails struct {
	Number   string    `json:"number" binding:"required"`
	BankName string    `json:"bankName"`
	DueDate  time.Time `json:"dueDate" binding:"required"`
}

// ProcessTradeRequest defines a complete trade: the order, its counterparty
// (exactly one of contact or employee), the optional immediate settlement and
// the stock side effects.
type ProcessTradeRequest struct {
	OrderType     domain.OrderType   `json:"orderType" binding:"required,oneof=SALE PURCHASE SERVICE"`
	ContactID     *string            `json:"contactID"`
	EmployeeID    *string            `json:"employeeID"`
	CurrencyCode  string             `json:"currencyCode" binding:"required,len=3"`
	Lines         []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
	PaymentMethod TradePaymentMethod `json:"paymentMethod" binding:"required,oneof=NONE CASH BANK POS CREDIT_CARD CHECK"`
	// PaidAmount defaults to the full order total when a payment method is given.
	PaidAmount *decimal.Decimal   `json:"paidAmount"`
	Check      *TradeCheckDetails `json:"check"`
	// LocationID falls back to the tenant default location when omitted.
	LocationID *string   `json:"locationID"`
	TradeDate  time.Time `json:"tradeDate" binding:"required"`
	Note       string    `json:"note"`
}

// ProcessTradeResponse returns everything one trade produced.
type ProcessTradeResponse struct {
	Order        OrderResponse           `json:"order"`
	Transactions []TransactionResponse   `json:"transactions"`
	Movements    []StockMovementResponse `json:"movements"`
	Check        *CheckResponse          `json:"check,omitempty"`
}
