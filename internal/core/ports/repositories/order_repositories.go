package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OrderListFilter narrows ListOrdersByTenant results.
type OrderListFilter struct {
	OrderType     *domain.OrderType
	Status        *domain.OrderStatus
	PaymentStatus *domain.PaymentStatus
	ContactID     *string
	EmployeeID    *string
}

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves a specific order including its lines.
	FindOrderByID(ctx context.Context, tenantID, orderID string) (*domain.Order, error)

	// ListOrdersByTenant retrieves a paginated list of orders for a given tenant using
	// token-based pagination. It returns the orders, a token for the next page, and an error.
	ListOrdersByTenant(ctx context.Context, tenantID string, filter OrderListFilter, limit int, nextToken *string) ([]domain.Order, *string, error)
}

// OrderWriter defines write operations for order data
type OrderWriter interface {
	// SaveOrder persists a new order and its lines atomically.
	SaveOrder(ctx context.Context, order domain.Order) error

	// UpdateOrder updates an order's mutable details and replaces its lines.
	UpdateOrder(ctx context.Context, order domain.Order) error

	// UpdateOrderStatus transitions the workflow status of an order.
	UpdateOrderStatus(ctx context.Context, tenantID, orderID string, status domain.OrderStatus, userID string, now time.Time) error
}

// OrderTransactionSupport defines operations that participate in a database transaction
type OrderTransactionSupport interface {
	// FindOrderByIDForUpdate retrieves an order and locks its row for the duration
	// of the transaction.
	FindOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, orderID string) (*domain.Order, error)

	// SaveOrderInTx persists a new order and its lines within a transaction.
	SaveOrderInTx(ctx context.Context, tx pgx.Tx, order domain.Order) error

	// UpdateOrderInTx updates an order's mutable details and replaces its lines
	// within a transaction.
	UpdateOrderInTx(ctx context.Context, tx pgx.Tx, order domain.Order) error

	// UpdateOrderPaymentInTx writes the derived paid amount and payment status of an
	// order within a transaction.
	UpdateOrderPaymentInTx(ctx context.Context, tx pgx.Tx, tenantID, orderID string, paidAmount decimal.Decimal, paymentStatus domain.PaymentStatus, userID string, now time.Time) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
// This is a facade for clients that need access to all operations
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
	OrderTransactionSupport
}

// OrderRepositoryWithTx extends OrderRepositoryFacade with transaction capabilities
type OrderRepositoryWithTx interface {
	OrderRepositoryFacade
	TransactionManager
}
