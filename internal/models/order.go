package models

import (
	"github.com/shopspring/decimal"
)

// Order represents a row of the orders table. PaidAmount/PaymentStatus are
// cache columns written only by the payment derivation logic.
type Order struct {
	OrderID      string  `db:"order_id"`
	TenantID     string  `db:"tenant_id"`
	OrderType    string  `db:"order_type"`
	ContactID    *string `db:"contact_id"`
	EmployeeID   *string `db:"employee_id"`
	Status       string  `db:"status"`
	CurrencyCode string  `db:"currency_code"`
	AuditFields
	Total         decimal.Decimal `db:"total"`
	PaidAmount    decimal.Decimal `db:"paid_amount"`
	PaymentStatus string          `db:"payment_status"`
}

// OrderLine represents a row of the order_lines table.
type OrderLine struct {
	LineID      string          `db:"line_id"`
	OrderID     string          `db:"order_id"`
	ItemID      *string         `db:"item_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	LineTotal   decimal.Decimal `db:"line_total"`
}
