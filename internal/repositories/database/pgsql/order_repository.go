package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/bizledger/bizledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const orderColumns = `order_id, tenant_id, order_type, contact_id, employee_id, status, currency_code, created_at, created_by, last_updated_at, last_updated_by, total, paid_amount, payment_status`

const orderLineColumns = `line_id, order_id, item_id, description, quantity, unit_price, line_total`

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for orders and their lines.
func newPgxOrderRepository(pool *pgxpool.Pool) *PgxOrderRepository {
	return &PgxOrderRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryWithTx = (*PgxOrderRepository)(nil)

func scanOrder(row rowScanner) (*domain.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.TenantID,
		&m.OrderType,
		&m.ContactID,
		&m.EmployeeID,
		&m.Status,
		&m.CurrencyCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Total,
		&m.PaidAmount,
		&m.PaymentStatus,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainOrder(m)
	return &d, nil
}

// FindOrderByID retrieves an order and its lines within a tenant.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, tenantID, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE tenant_id = $1 AND order_id = $2;`

	order, err := scanOrder(r.Pool.QueryRow(ctx, query, tenantID, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}

	lines, err := r.loadOrderLines(ctx, r.Pool, orderID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

// ListOrdersByTenant retrieves a page of orders newest first, using keyset
// pagination on created_at. Lines are not loaded for list results.
func (r *PgxOrderRepository) ListOrdersByTenant(ctx context.Context, tenantID string, filter portsrepo.OrderListFilter, limit int, nextToken *string) ([]domain.Order, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE tenant_id = $1
	`
	args := []any{tenantID}

	addFilter := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(` AND %s = $%d`, column, len(args))
	}
	if filter.OrderType != nil {
		addFilter("order_type", string(*filter.OrderType))
	}
	if filter.Status != nil {
		addFilter("status", string(*filter.Status))
	}
	if filter.PaymentStatus != nil {
		addFilter("payment_status", string(*filter.PaymentStatus))
	}
	if filter.ContactID != nil {
		addFilter("contact_id", *filter.ContactID)
	}
	if filter.EmployeeID != nil {
		addFilter("employee_id", *filter.EmployeeID)
	}

	if nextToken != nil && *nextToken != "" {
		createdAt, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, createdAt)
		query += fmt.Sprintf(` AND created_at < $%d`, len(args))
	}

	// Fetch one extra row to detect whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query orders for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	var newNextToken *string
	if len(orders) > limit {
		orders = orders[:limit]
		token := pagination.EncodeDateBasedToken(orders[limit-1].CreatedAt)
		newNextToken = &token
	}
	return orders, newNextToken, nil
}

// SaveOrder persists a new order and its lines atomically.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.SaveOrderInTx(ctx, tx, order); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveOrderInTx persists a new order and its lines within a transaction.
func (r *PgxOrderRepository) SaveOrderInTx(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	m := mapping.ToModelOrder(order)
	_, err := tx.Exec(ctx, query,
		m.OrderID,
		m.TenantID,
		m.OrderType,
		m.ContactID,
		m.EmployeeID,
		m.Status,
		m.CurrencyCode,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Total,
		m.PaidAmount,
		m.PaymentStatus,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert order %s: %w", order.OrderID, err)
	}

	return r.insertOrderLines(ctx, tx, order.OrderID, order.Lines)
}

// UpdateOrder updates an order's mutable details and replaces its lines.
func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.UpdateOrderInTx(ctx, tx, order); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateOrderInTx updates an order's mutable details and replaces its lines
// within a transaction. Paid amount and payment status are left untouched,
// those columns belong to the payment derivation path.
func (r *PgxOrderRepository) UpdateOrderInTx(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	query := `
		UPDATE orders
		SET currency_code = $3, total = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND order_id = $2;
	`
	m := mapping.ToModelOrder(order)
	commandTag, err := tx.Exec(ctx, query,
		m.TenantID,
		m.OrderID,
		m.CurrencyCode,
		m.Total,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", order.OrderID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1;`, order.OrderID); err != nil {
		return fmt.Errorf("failed to replace lines of order %s: %w", order.OrderID, err)
	}
	return r.insertOrderLines(ctx, tx, order.OrderID, order.Lines)
}

// UpdateOrderStatus transitions the workflow status of an order.
func (r *PgxOrderRepository) UpdateOrderStatus(ctx context.Context, tenantID, orderID string, status domain.OrderStatus, userID string, now time.Time) error {
	query := `
		UPDATE orders
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND order_id = $2;
	`
	commandTag, err := r.Pool.Exec(ctx, query, tenantID, orderID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of order %s: %w", orderID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindOrderByIDForUpdate retrieves an order with its lines and locks the order
// row for the duration of the transaction.
func (r *PgxOrderRepository) FindOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE tenant_id = $1 AND order_id = $2 FOR UPDATE;`

	order, err := scanOrder(tx.QueryRow(ctx, query, tenantID, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock order %s: %w", orderID, err)
	}

	lines, err := r.loadOrderLines(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

// UpdateOrderPaymentInTx writes the derived paid amount and payment status of
// an order within a transaction.
func (r *PgxOrderRepository) UpdateOrderPaymentInTx(ctx context.Context, tx pgx.Tx, tenantID, orderID string, paidAmount decimal.Decimal, paymentStatus domain.PaymentStatus, userID string, now time.Time) error {
	query := `
		UPDATE orders
		SET paid_amount = $3, payment_status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND order_id = $2;
	`
	commandTag, err := tx.Exec(ctx, query, tenantID, orderID, paidAmount, string(paymentStatus), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update payment of order %s: %w", orderID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrderRepository) loadOrderLines(ctx context.Context, db querier, orderID string) ([]domain.OrderLine, error) {
	query := `SELECT ` + orderLineColumns + ` FROM order_lines WHERE order_id = $1 ORDER BY line_id;`

	rows, err := db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of order %s: %w", orderID, err)
	}
	defer rows.Close()

	lines := []domain.OrderLine{}
	for rows.Next() {
		var m models.OrderLine
		if err := rows.Scan(&m.LineID, &m.OrderID, &m.ItemID, &m.Description, &m.Quantity, &m.UnitPrice, &m.LineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan order line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainOrderLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order line rows: %w", err)
	}
	return lines, nil
}

func (r *PgxOrderRepository) insertOrderLines(ctx context.Context, tx pgx.Tx, orderID string, lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_lines (` + orderLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelOrderLine(line)
		batch.Queue(query, m.LineID, m.OrderID, m.ItemID, m.Description, m.Quantity, m.UnitPrice, m.LineTotal)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert line of order %s: %w", orderID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close order line insert batch: %w", err)
	}
	return batchErr
}
