package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// OrderReaderSvc defines read operations for order data
type OrderReaderSvc interface {
	// GetOrderByID retrieves an order with derived payment fields.
	GetOrderByID(ctx context.Context, tenantID, orderID string, requestingUserID string) (*domain.Order, error)

	// ListOrders retrieves a paginated list of orders in a tenant.
	ListOrders(ctx context.Context, tenantID string, requestingUserID string, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error)
}

// OrderWriterSvc defines write operations for order data
type OrderWriterSvc interface {
	// CreateOrder persists a new order with its lines in PENDING status.
	CreateOrder(ctx context.Context, tenantID string, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error)

	// UpdateOrder replaces the lines of a PENDING order.
	UpdateOrder(ctx context.Context, tenantID, orderID string, req dto.UpdateOrderRequest, requestingUserID string) (*domain.Order, error)

	// UpdateOrderStatus transitions the order workflow. Invalid transitions
	// return a validation error.
	UpdateOrderStatus(ctx context.Context, tenantID, orderID string, req dto.UpdateOrderStatusRequest, requestingUserID string) (*domain.Order, error)
}

// OrderPaymentSvc defines payment operations against an order
type OrderPaymentSvc interface {
	// RegisterOrderPayment posts a two-sided payment (party and settlement
	// accounts) and re-derives the order's payment fields in one transaction.
	RegisterOrderPayment(ctx context.Context, tenantID, orderID string, req dto.RegisterOrderPaymentRequest, requestingUserID string) (*dto.OrderPaymentResponse, error)

	// MarkOrderAsPaid settles the order's open remainder in full.
	MarkOrderAsPaid(ctx context.Context, tenantID, orderID string, req dto.MarkOrderAsPaidRequest, requestingUserID string) (*dto.OrderPaymentResponse, error)

	// DeductOrderFromSalary flips the order to PAID without posting anything,
	// leaving the party balance open to net against a future salary accrual.
	DeductOrderFromSalary(ctx context.Context, tenantID, orderID string, requestingUserID string) (*domain.Order, error)
}

// OrderSvcFacade combines all order-related service interfaces
// This is a facade for clients that need access to all operations
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
	OrderPaymentSvc
}
