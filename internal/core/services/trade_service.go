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
	ErrCheckDetailsMissing  = errors.New("check payment requires check details")
	ErrPaidAmountWithoutPay = errors.New("paid amount given without a payment method")
)

// tradeService orchestrates the complete trade flow in one database
// transaction: order insert, party account provisioning, ledger postings,
// optional check registration and stock movements.
type tradeService struct {
	BaseService
	orderRepo     portsrepo.OrderRepositoryWithTx
	inventoryRepo portsrepo.InventoryRepositoryFacade
	checkRepo     portsrepo.CheckWriter
	accountSvc    portssvc.AccountSvcFacade
	ledgerSvc     portssvc.LedgerSvcFacade
	inventorySvc  portssvc.InventorySvcFacade
	warehouseSvc  portssvc.WarehouseSvcFacade
}

// NewTradeService creates a new TradeService.
func NewTradeService(
	orderRepo portsrepo.OrderRepositoryWithTx,
	inventoryRepo portsrepo.InventoryRepositoryFacade,
	checkRepo portsrepo.CheckWriter,
	accountSvc portssvc.AccountSvcFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	inventorySvc portssvc.InventorySvcFacade,
	warehouseSvc portssvc.WarehouseSvcFacade,
	authorizer portssvc.TenantAuthorizerSvc,
) portssvc.TradeSvcFacade {
	s := &tradeService{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		checkRepo:     checkRepo,
		accountSvc:    accountSvc,
		ledgerSvc:     ledgerSvc,
		inventorySvc:  inventorySvc,
		warehouseSvc:  warehouseSvc,
	}
	s.TenantAuthorizer = authorizer
	return s
}

var _ portssvc.TradeSvcFacade = (*tradeService)(nil)

// ProcessTrade runs the full trade orchestration. The stock location is
// resolved before the main transaction opens; an auto-created default pool
// surviving a later rollback is harmless configuration.
func (s *tradeService) ProcessTrade(ctx context.Context, tenantID string, req dto.ProcessTradeRequest, requestingUserID string) (*dto.ProcessTradeResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	if err := validateTradeRequest(req); err != nil {
		return nil, err
	}

	locationID, err := s.resolveTradeLocation(ctx, tenantID, req, requestingUserID)
	if err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.orderRepo.Rollback(ctx, tx)

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
		Status:        domain.OrderDelivered,
		CurrencyCode:  req.CurrencyCode,
		Lines:         lines,
		Total:         total,
		PaidAmount:    decimal.Zero,
		PaymentStatus: domain.PaymentUnpaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.orderRepo.SaveOrderInTx(ctx, tx, order); err != nil {
		s.LogError(ctx, err, "Failed to save trade order",
			slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	partyAccount, err := s.resolvePartyAccountInTx(ctx, tx, tenantID, req, requestingUserID)
	if err != nil {
		return nil, err
	}

	txns := make([]domain.Transaction, 0, 3)

	// The charge leg books the full order value against the party.
	docOrder := domain.DocumentOrder
	chargeTxn, err := s.ledgerSvc.PostTransactionInTx(ctx, tx, tenantID, portssvc.PostingInput{
		AccountID:       partyAccount.AccountID,
		TransactionType: req.OrderType.ChargeTransactionType(),
		Amount:          total,
		CurrencyCode:    req.CurrencyCode,
		TransactionDate: req.TradeDate,
		Description:     tradeDescription(req.OrderType, req.Note),
		DocumentType:    &docOrder,
		DocumentID:      &orderID,
	}, requestingUserID)
	if err != nil {
		return nil, err
	}
	txns = append(txns, *chargeTxn)

	var checkResp *dto.CheckResponse
	if req.PaymentMethod != dto.TradePaymentNone {
		paid := total
		if req.PaidAmount != nil {
			paid = *req.PaidAmount
		}
		paymentTxns, check, err := s.settleTradeInTx(ctx, tx, tenantID, &order, partyAccount.AccountID, paid, req, requestingUserID)
		if err != nil {
			return nil, err
		}
		txns = append(txns, paymentTxns...)
		if check != nil {
			r := dto.ToCheckResponse(check)
			checkResp = &r
		}
	}

	movements, err := s.recordTradeMovementsInTx(ctx, tx, tenantID, order, locationID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerSvc.DeriveOrderPayment(ctx, tx, tenantID, &order, requestingUserID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit trade: %w", err)
	}

	s.LogInfo(ctx, "Trade processed",
		slog.String("order_id", orderID),
		slog.String("order_type", string(req.OrderType)),
		slog.String("payment_method", string(req.PaymentMethod)),
		slog.String("total", total.String()))
	return &dto.ProcessTradeResponse{
		Order:        dto.ToOrderResponse(&order),
		Transactions: dto.ToTransactionResponses(txns),
		Movements:    dto.ToStockMovementResponses(movements),
		Check:        checkResp,
	}, nil
}

// settleTradeInTx posts the payment pair for the trade and, for check
// settlements, registers the instrument against the portfolio account.
func (s *tradeService) settleTradeInTx(ctx context.Context, tx pgx.Tx, tenantID string, order *domain.Order, partyAccountID string, paid decimal.Decimal, req dto.ProcessTradeRequest, actorUserID string) ([]domain.Transaction, *domain.Check, error) {
	if paid.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: paid amount must be positive", apperrors.ErrValidation)
	}

	settlementType, ok := req.PaymentMethod.SettlementAccountType()
	if !ok {
		return nil, nil, fmt.Errorf("%w: unsupported payment method %s", apperrors.ErrValidation, req.PaymentMethod)
	}
	settlementAccount, err := s.accountSvc.EnsureSystemAccountInTx(ctx, tx, tenantID, settlementType, actorUserID)
	if err != nil {
		return nil, nil, err
	}

	docPayment := domain.DocumentPayment
	description := tradeDescription(order.OrderType, req.Note)

	partyTxn, err := s.ledgerSvc.PostTransactionInTx(ctx, tx, tenantID, portssvc.PostingInput{
		AccountID:       partyAccountID,
		TransactionType: order.OrderType.PaymentTransactionType(),
		Amount:          paid,
		CurrencyCode:    order.CurrencyCode,
		TransactionDate: req.TradeDate,
		Description:     description,
		DocumentType:    &docPayment,
		DocumentID:      &order.OrderID,
	}, actorUserID)
	if err != nil {
		return nil, nil, err
	}

	settlementTxn, err := s.ledgerSvc.PostTransactionInTx(ctx, tx, tenantID, portssvc.PostingInput{
		AccountID:       settlementAccount.AccountID,
		TransactionType: order.OrderType.PaymentTransactionType().Opposite(),
		Amount:          paid,
		CurrencyCode:    order.CurrencyCode,
		TransactionDate: req.TradeDate,
		Description:     description,
		DocumentType:    &docPayment,
		DocumentID:      &order.OrderID,
	}, actorUserID)
	if err != nil {
		return nil, nil, err
	}

	var check *domain.Check
	if req.PaymentMethod == dto.TradePaymentCheck {
		now := time.Now().UTC()
		check = &domain.Check{
			CheckID:            uuid.NewString(),
			TenantID:           tenantID,
			PortfolioAccountID: settlementAccount.AccountID,
			ContactID:          req.ContactID,
			OrderID:            &order.OrderID,
			Number:             req.Check.Number,
			BankName:           req.Check.BankName,
			Amount:             paid,
			DueDate:            req.Check.DueDate,
			Status:             domain.CheckPortfolio,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorUserID,
			},
		}
		if err := s.checkRepo.SaveCheckInTx(ctx, tx, *check); err != nil {
			s.LogError(ctx, err, "Failed to save trade check",
				slog.String("order_id", order.OrderID))
			return nil, nil, fmt.Errorf("failed to save check: %w", err)
		}
	}

	return []domain.Transaction{*partyTxn, *settlementTxn}, check, nil
}

// recordTradeMovementsInTx applies the stock side effects of the trade:
// OUT movements for sales, IN movements for purchases. Lines without an
// item, items that do not track stock and service orders produce none.
// Purchases also refresh the item's last purchase price.
func (s *tradeService) recordTradeMovementsInTx(ctx context.Context, tx pgx.Tx, tenantID string, order domain.Order, locationID *string, actorUserID string) ([]domain.StockMovement, error) {
	var direction domain.MovementDirection
	switch order.OrderType {
	case domain.OrderSale:
		direction = domain.MovementOut
	case domain.OrderPurchase:
		direction = domain.MovementIn
	default:
		return nil, nil
	}

	docOrder := domain.DocumentOrder
	var movements []domain.StockMovement
	for _, line := range order.Lines {
		if line.ItemID == nil {
			continue
		}
		item, err := s.inventoryRepo.FindItemByID(ctx, tenantID, *line.ItemID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: item %s not found", apperrors.ErrValidation, *line.ItemID)
			}
			return nil, err
		}
		if !item.TrackStock {
			continue
		}

		movement, err := s.inventorySvc.RecordMovementInTx(ctx, tx, tenantID, dto.RecordMovementRequest{
			ItemID:       item.ItemID,
			LocationID:   locationID,
			Direction:    string(direction),
			Quantity:     line.Quantity,
			DocumentType: (*string)(&docOrder),
			DocumentID:   &order.OrderID,
			Note:         line.Description,
		}, actorUserID)
		if err != nil {
			return nil, err
		}
		movements = append(movements, *movement)

		if direction == domain.MovementIn {
			now := time.Now().UTC()
			if err := s.inventoryRepo.UpdatePurchasePriceInTx(ctx, tx, tenantID, item.ItemID, line.UnitPrice, actorUserID, now); err != nil {
				return nil, fmt.Errorf("failed to update purchase price: %w", err)
			}
		}
	}
	return movements, nil
}

// resolveTradeLocation returns the explicit location or the tenant default.
// Service orders never touch stock, so no location is resolved for them.
func (s *tradeService) resolveTradeLocation(ctx context.Context, tenantID string, req dto.ProcessTradeRequest, actorUserID string) (*string, error) {
	if req.OrderType == domain.OrderService {
		return nil, nil
	}
	if req.LocationID != nil {
		return req.LocationID, nil
	}
	if !tradeTouchesStock(req.Lines) {
		return nil, nil
	}
	location, err := s.warehouseSvc.ResolveDefaultLocation(ctx, tenantID, actorUserID)
	if err != nil {
		return nil, err
	}
	return &location.LocationID, nil
}

// tradeTouchesStock reports whether any line references an inventory item.
func tradeTouchesStock(lines []dto.OrderLineRequest) bool {
	for _, l := range lines {
		if l.ItemID != nil {
			return true
		}
	}
	return false
}

func validateTradeRequest(req dto.ProcessTradeRequest) error {
	if (req.ContactID == nil) == (req.EmployeeID == nil) {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCounterpartyMissing)
	}
	if req.PaymentMethod == dto.TradePaymentCheck && req.Check == nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCheckDetailsMissing)
	}
	if req.PaymentMethod == dto.TradePaymentNone && req.PaidAmount != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPaidAmountWithoutPay)
	}
	return nil
}

// resolvePartyAccountInTx provisions-or-returns the counterparty's account:
// the contact's party account, or the employee's personnel account.
func (s *tradeService) resolvePartyAccountInTx(ctx context.Context, tx pgx.Tx, tenantID string, req dto.ProcessTradeRequest, actorUserID string) (*domain.Account, error) {
	if req.ContactID != nil {
		return s.accountSvc.EnsureContactAccountInTx(ctx, tx, tenantID, *req.ContactID, actorUserID)
	}
	return s.accountSvc.EnsureEmployeeAccountInTx(ctx, tx, tenantID, *req.EmployeeID, actorUserID)
}

func tradeDescription(orderType domain.OrderType, note string) string {
	if note != "" {
		return note
	}
	switch orderType {
	case domain.OrderSale:
		return "Sale"
	case domain.OrderPurchase:
		return "Purchase"
	default:
		return "Service"
	}
}
