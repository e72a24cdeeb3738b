package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotPending     = errors.New("order lines can only change while the order is pending")
	ErrOrderCancelled      = errors.New("order is cancelled")
	ErrInvalidTransition   = errors.New("invalid order status transition")
	ErrCounterpartyMissing = errors.New("exactly one of contactID and employeeID must be set")
	ErrNotPersonnelOrder   = errors.New("salary deduction requires a personnel order")
)

// orderService implements order CRUD, the fulfilment workflow and the
// payment operations against an order.
type orderService struct {
	BaseService
	orderRepo  portsrepo.OrderRepositoryWithTx
	accountSvc portssvc.AccountSvcFacade
	ledgerSvc  portssvc.LedgerSvcFacade
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo portsrepo.OrderRepositoryWithTx,
	accountSvc portssvc.AccountSvcFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	authorizer portssvc.TenantAuthorizerSvc,
) portssvc.OrderSvcFacade {
	s := &orderService{
		orderRepo:  orderRepo,
		accountSvc: accountSvc,
		ledgerSvc:  ledgerSvc,
	}
	s.TenantAuthorizer = authorizer
	return s
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// GetOrderByID retrieves an order with its lines and derived payment fields.
func (s *orderService) GetOrderByID(ctx context.Context, tenantID, orderID string, requestingUserID string) (*domain.Order, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindOrderByID(ctx, tenantID, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find order by ID",
				slog.String("order_id", orderID))
		}
		return nil, err
	}
	return order, nil
}

// ListOrders retrieves a paginated list of orders in a tenant.
func (s *orderService) ListOrders(ctx context.Context, tenantID string, requestingUserID string, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := portsrepo.OrderListFilter{
		ContactID:  params.ContactID,
		EmployeeID: params.EmployeeID,
	}
	if params.OrderType != nil {
		t := domain.OrderType(*params.OrderType)
		filter.OrderType = &t
	}
	if params.Status != nil {
		st := domain.OrderStatus(*params.Status)
		filter.Status = &st
	}
	if params.PaymentStatus != nil {
		ps := domain.PaymentStatus(*params.PaymentStatus)
		filter.PaymentStatus = &ps
	}

	orders, nextToken, err := s.orderRepo.ListOrdersByTenant(ctx, tenantID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list orders",
			slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return &dto.ListOrdersResponse{
		Orders:    dto.ToOrderResponses(orders),
		NextToken: nextToken,
	}, nil
}

// CreateOrder persists a new order with its lines in PENDING status.
func (s *orderService) CreateOrder(ctx context.Context, tenantID string, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	if (req.ContactID == nil) == (req.EmployeeID == nil) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCounterpartyMissing)
	}

	now := time.Now().UTC()
	orderID := uuid.NewString()

	lines, total, err := buildOrderLines(orderID, req.Lines)
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		OrderID:       orderID,
		TenantID:      tenantID,
		OrderType:     req.OrderType,
		ContactID:     req.ContactID,
		EmployeeID:    req.EmployeeID,
		Status:        domain.OrderPending,
		CurrencyCode:  req.CurrencyCode,
		Lines:         lines,
		Total:         total,
		PaidAmount:    decimal.Zero,
		PaymentStatus: domain.PaymentUnpaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "Failed to save order",
			slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.LogInfo(ctx, "Order created successfully",
		slog.String("order_id", orderID),
		slog.String("order_type", string(req.OrderType)),
		slog.String("tenant_id", tenantID))
	return &order, nil
}

// UpdateOrder replaces the lines of a PENDING order and re-derives its
// payment fields against the new total.
func (s *orderService) UpdateOrder(ctx context.Context, tenantID, orderID string, req dto.UpdateOrderRequest, requestingUserID string) (*domain.Order, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.orderRepo.Rollback(ctx, tx)

	order, err := s.orderRepo.FindOrderByIDForUpdate(ctx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderPending {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrOrderNotPending)
	}

	lines, total, err := buildOrderLines(orderID, req.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order.Lines = lines
	order.Total = total
	order.LastUpdatedAt = now
	order.LastUpdatedBy = requestingUserID

	if err := s.orderRepo.UpdateOrderInTx(ctx, tx, *order); err != nil {
		s.LogError(ctx, err, "Failed to update order",
			slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	// The total changed, so the cached payment fields must be re-derived.
	if err := s.ledgerSvc.DeriveOrderPayment(ctx, tx, tenantID, order, requestingUserID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit order update: %w", err)
	}

	s.LogInfo(ctx, "Order updated successfully",
		slog.String("order_id", orderID))
	return order, nil
}

// UpdateOrderStatus transitions the order workflow.
func (s *orderService) UpdateOrderStatus(ctx context.Context, tenantID, orderID string, req dto.UpdateOrderStatusRequest, requestingUserID string) (*domain.Order, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindOrderByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("%w: %s: %s -> %s", apperrors.ErrValidation, ErrInvalidTransition, order.Status, req.Status)
	}

	now := time.Now().UTC()
	if err := s.orderRepo.UpdateOrderStatus(ctx, tenantID, orderID, req.Status, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update order status",
			slog.String("order_id", orderID),
			slog.String("status", string(req.Status)))
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = req.Status
	order.LastUpdatedAt = now
	order.LastUpdatedBy = requestingUserID

	s.LogInfo(ctx, "Order status updated",
		slog.String("order_id", orderID),
		slog.String("status", string(req.Status)))
	return order, nil
}

// RegisterOrderPayment posts the two-sided payment and re-derives the order's
// payment fields, all inside one database transaction.
func (s *orderService) RegisterOrderPayment(ctx context.Context, tenantID, orderID string, req dto.RegisterOrderPaymentRequest, requestingUserID string) (*dto.OrderPaymentResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	tx, err := s.orderRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.orderRepo.Rollback(ctx, tx)

	order, err := s.orderRepo.FindOrderByIDForUpdate(ctx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrOrderCancelled)
	}

	txns, err := s.postOrderPaymentInTx(ctx, tx, tenantID, order, req.AccountID, req.Amount, req.PaymentDate, req.Description, requestingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerSvc.DeriveOrderPayment(ctx, tx, tenantID, order, requestingUserID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	s.LogInfo(ctx, "Order payment registered",
		slog.String("order_id", orderID),
		slog.String("amount", req.Amount.String()),
		slog.String("payment_status", string(order.PaymentStatus)))
	return &dto.OrderPaymentResponse{
		Order:        dto.ToOrderResponse(order),
		Transactions: dto.ToTransactionResponses(txns),
	}, nil
}

// MarkOrderAsPaid settles the order's open remainder in full.
func (s *orderService) MarkOrderAsPaid(ctx context.Context, tenantID, orderID string, req dto.MarkOrderAsPaidRequest, requestingUserID string) (*dto.OrderPaymentResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.orderRepo.Rollback(ctx, tx)

	order, err := s.orderRepo.FindOrderByIDForUpdate(ctx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrOrderCancelled)
	}

	remainder := order.Total.Sub(order.PaidAmount)
	if remainder.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: order %s is already settled", apperrors.ErrConflict, orderID)
	}

	txns, err := s.postOrderPaymentInTx(ctx, tx, tenantID, order, req.AccountID, remainder, req.PaymentDate, "Full settlement", requestingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerSvc.DeriveOrderPayment(ctx, tx, tenantID, order, requestingUserID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}

	s.LogInfo(ctx, "Order marked as paid",
		slog.String("order_id", orderID),
		slog.String("settled_amount", remainder.String()))
	return &dto.OrderPaymentResponse{
		Order:        dto.ToOrderResponse(order),
		Transactions: dto.ToTransactionResponses(txns),
	}, nil
}

// DeductOrderFromSalary flips the order to PAID without posting anything.
// The party balance stays open to net against a future salary accrual; a
// later payment posting re-derives and overrides this flag.
func (s *orderService) DeductOrderFromSalary(ctx context.Context, tenantID, orderID string, requestingUserID string) (*domain.Order, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.orderRepo.Rollback(ctx, tx)

	order, err := s.orderRepo.FindOrderByIDForUpdate(ctx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order.EmployeeID == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNotPersonnelOrder)
	}
	if order.Status == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrOrderCancelled)
	}

	now := time.Now().UTC()
	if err := s.orderRepo.UpdateOrderPaymentInTx(ctx, tx, tenantID, orderID, order.PaidAmount, domain.PaymentPaid, requestingUserID, now); err != nil {
		return nil, fmt.Errorf("failed to flag order as salary deduction: %w", err)
	}
	order.PaymentStatus = domain.PaymentPaid

	if err := s.orderRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit salary deduction: %w", err)
	}

	s.LogInfo(ctx, "Order flagged for salary deduction",
		slog.String("order_id", orderID),
		slog.String("employee_id", *order.EmployeeID))
	return order, nil
}

// postOrderPaymentInTx resolves the party account and posts both legs of a
// payment: the party leg with the order's payment transaction type and the
// settlement leg with the opposite type.
func (s *orderService) postOrderPaymentInTx(ctx context.Context, tx pgx.Tx, tenantID string, order *domain.Order, settlementAccountID string, amount decimal.Decimal, paymentDate time.Time, description string, actorUserID string) ([]domain.Transaction, error) {
	var partyAccount *domain.Account
	var err error
	switch {
	case order.ContactID != nil:
		partyAccount, err = s.accountSvc.EnsureContactAccountInTx(ctx, tx, tenantID, *order.ContactID, actorUserID)
	case order.EmployeeID != nil:
		partyAccount, err = s.accountSvc.EnsureEmployeeAccountInTx(ctx, tx, tenantID, *order.EmployeeID, actorUserID)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCounterpartyMissing)
	}
	if err != nil {
		return nil, err
	}

	docType := domain.DocumentPayment
	partyTxn, err := s.ledgerSvc.PostTransactionInTx(ctx, tx, tenantID, portssvc.PostingInput{
		AccountID:       partyAccount.AccountID,
		TransactionType: order.OrderType.PaymentTransactionType(),
		Amount:          amount,
		CurrencyCode:    order.CurrencyCode,
		TransactionDate: paymentDate,
		Description:     description,
		DocumentType:    &docType,
		DocumentID:      &order.OrderID,
	}, actorUserID)
	if err != nil {
		return nil, err
	}

	settlementTxn, err := s.ledgerSvc.PostTransactionInTx(ctx, tx, tenantID, portssvc.PostingInput{
		AccountID:       settlementAccountID,
		TransactionType: order.OrderType.PaymentTransactionType().Opposite(),
		Amount:          amount,
		CurrencyCode:    order.CurrencyCode,
		TransactionDate: paymentDate,
		Description:     description,
		DocumentType:    &docType,
		DocumentID:      &order.OrderID,
	}, actorUserID)
	if err != nil {
		return nil, err
	}

	return []domain.Transaction{*partyTxn, *settlementTxn}, nil
}

// buildOrderLines materializes request lines, computing line and order totals.
func buildOrderLines(orderID string, reqLines []dto.OrderLineRequest) ([]domain.OrderLine, decimal.Decimal, error) {
	lines := make([]domain.OrderLine, len(reqLines))
	total := decimal.Zero
	for i, l := range reqLines {
		if l.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: line quantity must be positive", apperrors.ErrValidation)
		}
		if l.UnitPrice.LessThan(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: line unit price cannot be negative", apperrors.ErrValidation)
		}
		lineTotal := l.Quantity.Mul(l.UnitPrice)
		lines[i] = domain.OrderLine{
			LineID:      uuid.NewString(),
			OrderID:     orderID,
			ItemID:      l.ItemID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   lineTotal,
		}
		total = total.Add(lineTotal)
	}
	return lines, total, nil
}
