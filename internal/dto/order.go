package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderLineRequest defines one line of an order being created or updated.
type OrderLineRequest struct {
	ItemID      *string         `json:"itemID"`
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateOrderRequest defines the data needed to create a new order.
// Exactly one of ContactID and EmployeeID identifies the counterparty.
type CreateOrderRequest struct {
	OrderType    domain.OrderType   `json:"orderType" binding:"required,oneof=SALE PURCHASE SERVICE"`
	ContactID    *string            `json:"contactID"`
	EmployeeID   *string            `json:"employeeID"`
	CurrencyCode string             `json:"currencyCode" binding:"required,len=3"`
	Lines        []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateOrderRequest defines the data allowed for updating a pending order.
type UpdateOrderRequest struct {
	Lines []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest defines a workflow status transition.
type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required,oneof=PENDING PREPARING READY SHIPPED DELIVERED CANCELLED"`
}

// OrderLineResponse defines the data returned for an order line.
type OrderLineResponse struct {
	LineID      string          `json:"lineID"`
	ItemID      *string         `json:"itemID,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// OrderResponse defines the data returned for an order, including derived
// payment fields.
type OrderResponse struct {
	OrderID       string               `json:"orderID"`
	OrderType     domain.OrderType     `json:"orderType"`
	ContactID     *string              `json:"contactID,omitempty"`
	EmployeeID    *string              `json:"employeeID,omitempty"`
	Status        domain.OrderStatus   `json:"status"`
	CurrencyCode  string               `json:"currencyCode"`
	Lines         []OrderLineResponse  `json:"lines"`
	Total         decimal.Decimal      `json:"total"`
	PaidAmount    decimal.Decimal      `json:"paidAmount"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO.
func ToOrderResponse(o *domain.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			LineID:      l.LineID,
			ItemID:      l.ItemID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}
	return OrderResponse{
		OrderID:       o.OrderID,
		OrderType:     o.OrderType,
		ContactID:     o.ContactID,
		EmployeeID:    o.EmployeeID,
		Status:        o.Status,
		CurrencyCode:  o.CurrencyCode,
		Lines:         lines,
		Total:         o.Total,
		PaidAmount:    o.PaidAmount,
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt,
		CreatedBy:     o.CreatedBy,
		LastUpdatedAt: o.LastUpdatedAt,
		LastUpdatedBy: o.LastUpdatedBy,
	}
}

// ToOrderResponses converts a slice of domain.Order to []OrderResponse.
func ToOrderResponses(orders []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(&o)
	}
	return responses
}

// ListOrdersParams defines query parameters for listing orders.
type ListOrdersParams struct {
	Limit         int     `form:"limit,default=20"`
	NextToken     *string `form:"nextToken"`
	OrderType     *string `form:"orderType" binding:"omitempty,oneof=SALE PURCHASE SERVICE"`
	Status        *string `form:"status" binding:"omitempty,oneof=PENDING PREPARING READY SHIPPED DELIVERED CANCELLED"`
	PaymentStatus *string `form:"paymentStatus" binding:"omitempty,oneof=UNPAID PARTIAL PAID"`
	ContactID     *string `form:"contactID"`
	EmployeeID    *string `form:"employeeID"`
}

// ListOrdersResponse wraps a page of orders with the next page token.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken *string         `json:"nextToken,omitempty"`
}
