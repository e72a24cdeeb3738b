package domain

import (
	"github.com/shopspring/decimal"
)

// OrderType distinguishes sales, purchases and service orders.
type OrderType string

const (
	OrderSale     OrderType = "SALE"
	OrderPurchase OrderType = "PURCHASE"
	OrderService  OrderType = "SERVICE"
)

// PaymentTransactionType returns the transaction type that counts as a
// payment against an order of this type: sales are settled by crediting the
// customer account, purchases and services by debiting the supplier account.
func (t OrderType) PaymentTransactionType() TransactionType {
	if t == OrderSale {
		return Credit
	}
	return Debit
}

// ChargeTransactionType returns the transaction type used for the initial
// charge posting on the party account when the order is created.
func (t OrderType) ChargeTransactionType() TransactionType {
	return t.PaymentTransactionType().Opposite()
}

// OrderStatus models the fulfilment workflow.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// nextStatus maps each status to its single forward successor.
var nextStatus = map[OrderStatus]OrderStatus{
	OrderPending:   OrderPreparing,
	OrderPreparing: OrderReady,
	OrderReady:     OrderShipped,
	OrderShipped:   OrderDelivered,
}

// CanTransitionTo reports whether the workflow permits moving from s to target.
// Cancellation absorbs any state except a completed delivery.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderCancelled {
		return s != OrderDelivered && s != OrderCancelled
	}
	return nextStatus[s] == target
}

// PaymentStatus is derived from the payment transactions linked to the order.
// It is cached on the order row but only ever written by the derivation logic.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// DerivePaymentStatus computes the payment status from paid and total amounts.
// A settled order wins first, so a zero-total order with nothing outstanding
// derives to PAID.
func DerivePaymentStatus(paid, total decimal.Decimal) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total) && paid.GreaterThanOrEqual(decimal.Zero):
		return PaymentPaid
	case paid.LessThanOrEqual(decimal.Zero):
		return PaymentUnpaid
	default:
		return PaymentPartial
	}
}

// OrderLine is a single item line on an order.
type OrderLine struct {
	LineID      string          `json:"lineID"`      // Primary Key (UUID)
	OrderID     string          `json:"orderID"`     // FK -> orders.order_id
	ItemID      *string         `json:"itemID"`      // Nullable for free-text service lines
	Description string          `json:"description"` // Line text, defaults to item name
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// Order represents a sale, purchase or service order within a tenant.
// PaidAmount and PaymentStatus are derived from the ledger, never authoritative.
type Order struct {
	OrderID      string      `json:"orderID"`    // Primary Key (UUID)
	TenantID     string      `json:"tenantID"`   // FK -> tenants.tenant_id
	OrderType    OrderType   `json:"orderType"`  // SALE, PURCHASE or SERVICE
	ContactID    *string     `json:"contactID"`  // Party: exactly one of contact/employee
	EmployeeID   *string     `json:"employeeID"` // Set for personnel orders
	Status       OrderStatus `json:"status"`
	CurrencyCode string      `json:"currencyCode"`
	Lines        []OrderLine `json:"lines,omitempty"`
	AuditFields
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`    // Derived (cached)
	PaymentStatus PaymentStatus   `json:"paymentStatus"` // Derived (cached)
}
