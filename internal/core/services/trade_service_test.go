package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TradeServiceTestSuite struct {
	suite.Suite
	mockOrderRepo     *MockOrderRepository
	mockInventoryRepo *MockInventoryRepository
	mockCheckRepo     *MockCheckRepository
	mockAccountSvc    *MockAccountService
	mockLedgerSvc     *MockLedgerService
	mockInventorySvc  *MockInventoryService
	mockWarehouseSvc  *MockWarehouseService
	mockAuthorizer    *MockTenantAuthorizer
	service           portssvc.TradeSvcFacade
}

func (suite *TradeServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockCheckRepo = new(MockCheckRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.mockInventorySvc = new(MockInventoryService)
	suite.mockWarehouseSvc = new(MockWarehouseService)
	suite.mockAuthorizer = new(MockTenantAuthorizer)
	suite.service = services.NewTradeService(
		suite.mockOrderRepo,
		suite.mockInventoryRepo,
		suite.mockCheckRepo,
		suite.mockAccountSvc,
		suite.mockLedgerSvc,
		suite.mockInventorySvc,
		suite.mockWarehouseSvc,
		suite.mockAuthorizer,
	)
}

func (suite *TradeServiceTestSuite) allowMember(ctx context.Context) {
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "tenant-1", domain.RoleMember).Return(nil).Once()
}

func (suite *TradeServiceTestSuite) TestProcessTrade_RequiresExactlyOneCounterparty() {
	cases := []struct {
		name       string
		contactID  *string
		employeeID *string
	}{
		{name: "neither"},
		{name: "both", contactID: strPtr("contact-1"), employeeID: strPtr("emp-1")},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			ctx := context.Background()
			suite.allowMember(ctx)

			_, err := suite.service.ProcessTrade(ctx, "tenant-1", dto.ProcessTradeRequest{
				OrderType:     domain.OrderSale,
				ContactID:     tc.contactID,
				EmployeeID:    tc.employeeID,
				CurrencyCode:  "USD",
				PaymentMethod: dto.TradePaymentNone,
				TradeDate:     time.Now(),
				Lines: []dto.OrderLineRequest{
					{Description: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
				},
			}, "user-1")

			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.mockOrderRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
		})
	}
}

func (suite *TradeServiceTestSuite) TestProcessTrade_EmployeeCounterpartyUsesPersonnelAccount() {
	ctx := context.Background()
	suite.allowMember(ctx)

	personnelAccount := &domain.Account{AccountID: "acc-personnel", AccountType: domain.AccountPersonnel}

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("SaveOrderInTx", ctx, mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.ContactID == nil && o.EmployeeID != nil && *o.EmployeeID == "emp-1"
	})).Return(nil).Once()
	suite.mockAccountSvc.On("EnsureEmployeeAccountInTx", ctx, mock.Anything, "tenant-1", "emp-1", "user-1").Return(personnelAccount, nil).Once()
	suite.mockLedgerSvc.On("PostTransactionInTx", ctx, mock.Anything, "tenant-1", mock.MatchedBy(func(in portssvc.PostingInput) bool {
		return in.AccountID == "acc-personnel" && in.TransactionType == domain.Debit
	}), "user-1").Return(&domain.Transaction{TransactionID: "txn-charge"}, nil).Once()
	suite.mockLedgerSvc.On("DeriveOrderPayment", ctx, mock.Anything, "tenant-1", mock.AnythingOfType("*domain.Order"), "user-1").Return(nil).Once()
	suite.mockOrderRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	resp, err := suite.service.ProcessTrade(ctx, "tenant-1", dto.ProcessTradeRequest{
		OrderType:     domain.OrderSale,
		EmployeeID:    strPtr("emp-1"),
		CurrencyCode:  "USD",
		PaymentMethod: dto.TradePaymentNone,
		TradeDate:     time.Now(),
		Lines: []dto.OrderLineRequest{
			{Description: "Staff purchase", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(30)},
		},
	}, "user-1")

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "EnsureContactAccountInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestProcessTrade_CheckMethodNeedsCheckDetails() {
	ctx := context.Background()
	suite.allowMember(ctx)

	_, err := suite.service.ProcessTrade(ctx, "tenant-1", dto.ProcessTradeRequest{
		OrderType:     domain.OrderSale,
		ContactID:     strPtr("contact-1"),
		CurrencyCode:  "USD",
		PaymentMethod: dto.TradePaymentCheck,
		TradeDate:     time.Now(),
		Lines: []dto.OrderLineRequest{
			{Description: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		},
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TradeServiceTestSuite) TestProcessTrade_PaidAmountWithoutMethod() {
	ctx := context.Background()
	suite.allowMember(ctx)
	paid := decimal.NewFromInt(10)

	_, err := suite.service.ProcessTrade(ctx, "tenant-1", dto.ProcessTradeRequest{
		OrderType:     domain.OrderSale,
		ContactID:     strPtr("contact-1"),
		CurrencyCode:  "USD",
		PaymentMethod: dto.TradePaymentNone,
		PaidAmount:    &paid,
		TradeDate:     time.Now(),
		Lines: []dto.OrderLineRequest{
			{Description: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		},
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TradeServiceTestSuite) TestProcessTrade_UnpaidServiceOrder() {
	ctx := context.Background()
	suite.allowMember(ctx)

	partyAccount := &domain.Account{AccountID: "acc-party", AccountType: domain.AccountCustomer}

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("SaveOrderInTx", ctx, mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.OrderType == domain.OrderService && o.Status == domain.OrderDelivered &&
			o.Total.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()
	suite.mockAccountSvc.On("EnsureContactAccountInTx", ctx, mock.Anything, "tenant-1", "contact-1", "user-1").Return(partyAccount, nil).Once()

	// Service revenue is charged as a debit on the customer account.
	suite.mockLedgerSvc.On("PostTransactionInTx", ctx, mock.Anything, "tenant-1", mock.MatchedBy(func(in portssvc.PostingInput) bool {
		return in.AccountID == "acc-party" && in.TransactionType == domain.Credit &&
			in.DocumentType != nil && *in.DocumentType == domain.DocumentOrder
	}), "user-1").Return(&domain.Transaction{TransactionID: "txn-charge"}, nil).Once()
	suite.mockLedgerSvc.On("DeriveOrderPayment", ctx, mock.Anything, "tenant-1", mock.AnythingOfType("*domain.Order"), "user-1").Return(nil).Once()
	suite.mockOrderRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	resp, err := suite.service.ProcessTrade(ctx, "tenant-1", dto.ProcessTradeRequest{
		OrderType:     domain.OrderService,
		ContactID:     strPtr("contact-1"),
		CurrencyCode:  "USD",
		PaymentMethod: dto.TradePaymentNone,
		TradeDate:     time.Now(),
		Lines: []dto.OrderLineRequest{
			{Description: "Repair", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(200)},
		},
	}, "user-1")

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Empty(resp.Movements)
	suite.Nil(resp.Check)
	// Service orders never touch stock, so no default location is resolved.
	suite.mockWarehouseSvc.AssertNotCalled(suite.T(), "ResolveDefaultLocation", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestProcessTrade_CashSaleWithStock() {
	ctx := context.Background()
	suite.allowMember(ctx)

	itemID := "item-1"
	locationID := "loc-1"
	partyAccount := &domain.Account{AccountID: "acc-party", AccountType: domain.AccountCustomer}
	safeAccount := &domain.Account{AccountID: "acc-safe", AccountType: domain.AccountSafe, CurrencyCode: "USD"}
	item := &domain.InventoryItem{ItemID: itemID, TenantID: "tenant-1", SKU: "SKU-001", TrackStock: true, IsActive: true}

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("SaveOrderInTx", ctx, mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.OrderType == domain.OrderSale && o.Total.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()
	suite.mockAccountSvc.On("EnsureContactAccountInTx", ctx, mock.Anything, "tenant-1", "contact-1", "user-1").Return(partyAccount, nil).Once()

	// Charge leg, then the two payment legs.
	suite.mockLedgerSvc.On("PostTransactionInTx", ctx, mock.Anything, "tenant-1", mock.MatchedBy(func(in portssvc.PostingInput) bool {
		return in.AccountID == "acc-party" && in.TransactionType == domain.Debit &&
			in.DocumentType != nil && *in.DocumentType == domain.DocumentOrder
	}), "user-1").Return(&domain.Transaction{TransactionID: "txn-charge"}, nil).Once()
	suite.mockAccountSvc.On("EnsureSystemAccountInTx", ctx, mock.Anything, "tenant-1", domain.AccountSafe, "user-1").Return(safeAccount, nil).Once()
	suite.mockLedgerSvc.On("PostTransactionInTx", ctx, mock.Anything, "tenant-1", mock.MatchedBy(func(in portssvc.PostingInput) bool {
		return in.AccountID == "acc-party" && in.TransactionType == domain.Credit &&
			in.DocumentType != nil && *in.DocumentType == domain.DocumentPayment
	}), "user-1").Return(&domain.Transaction{TransactionID: "txn-pay-party"}, nil).Once()
	suite.mockLedgerSvc.On("PostTransactionInTx", ctx, mock.Anything, "tenant-1", mock.MatchedBy(func(in portssvc.PostingInput) bool {
		return in.AccountID == "acc-safe" && in.TransactionType == domain.Debit &&
			in.DocumentType != nil && *in.DocumentType == domain.DocumentPayment
	}), "user-1").Return(&domain.Transaction{TransactionID: "txn-pay-safe"}, nil).Once()

	suite.mockInventoryRepo.On("FindItemByID", ctx, "tenant-1", itemID).Return(item, nil).Once()
	suite.mockInventorySvc.On("RecordMovementInTx", ctx, mock.Anything, "tenant-1", mock.MatchedBy(func(req dto.RecordMovementRequest) bool {
		return req.ItemID == itemID && req.Direction == "OUT" && req.Quantity.Equal(decimal.NewFromInt(5))
	}), "user-1").Return(&domain.StockMovement{MovementID: "mv-1", ItemID: itemID, Direction: domain.MovementOut}, nil).Once()

	suite.mockLedgerSvc.On("DeriveOrderPayment", ctx, mock.Anything, "tenant-1", mock.AnythingOfType("*domain.Order"), "user-1").Return(nil).Once()
	suite.mockOrderRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	resp, err := suite.service.ProcessTrade(ctx, "tenant-1", dto.ProcessTradeRequest{
		OrderType:     domain.OrderSale,
		ContactID:     strPtr("contact-1"),
		CurrencyCode:  "USD",
		PaymentMethod: dto.TradePaymentCash,
		LocationID:    &locationID,
		TradeDate:     time.Now(),
		Lines: []dto.OrderLineRequest{
			{ItemID: &itemID, Description: "Widget", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(10)},
		},
	}, "user-1")

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 3)
	suite.Len(resp.Movements, 1)
	suite.Nil(resp.Check)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
	suite.mockInventorySvc.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestProcessTrade_PurchaseRefreshesPurchasePrice() {
	ctx := context.Background()
	suite.allowMember(ctx)

	itemID := "item-1"
	locationID := "loc-1"
	partyAccount := &domain.Account{AccountID: "acc-supplier", AccountType: domain.AccountSupplier}
	item := &domain.InventoryItem{ItemID: itemID, TenantID: "tenant-1", SKU: "SKU-001", TrackStock: true, IsActive: true}

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("SaveOrderInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Order")).Return(nil).Once()
	suite.mockAccountSvc.On("EnsureContactAccountInTx", ctx, mock.Anything, "tenant-1", "contact-1", "user-1").Return(partyAccount, nil).Once()

	// Purchases are charged as a credit on the supplier account.
	suite.mockLedgerSvc.On("PostTransactionInTx", ctx, mock.Anything, "tenant-1", mock.MatchedBy(func(in portssvc.PostingInput) bool {
		return in.AccountID == "acc-supplier" && in.TransactionType == domain.Credit
	}), "user-1").Return(&domain.Transaction{TransactionID: "txn-charge"}, nil).Once()

	suite.mockInventoryRepo.On("FindItemByID", ctx, "tenant-1", itemID).Return(item, nil).Once()
	suite.mockInventorySvc.On("RecordMovementInTx", ctx, mock.Anything, "tenant-1", mock.MatchedBy(func(req dto.RecordMovementRequest) bool {
		return req.Direction == "IN"
	}), "user-1").Return(&domain.StockMovement{MovementID: "mv-1", Direction: domain.MovementIn}, nil).Once()
	suite.mockInventoryRepo.On("UpdatePurchasePriceInTx", ctx, mock.Anything, "tenant-1", itemID,
		mock.MatchedBy(func(price decimal.Decimal) bool { return price.Equal(decimal.NewFromInt(8)) }),
		"user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.mockLedgerSvc.On("DeriveOrderPayment", ctx, mock.Anything, "tenant-1", mock.AnythingOfType("*domain.Order"), "user-1").Return(nil).Once()
	suite.mockOrderRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := suite.service.ProcessTrade(ctx, "tenant-1", dto.ProcessTradeRequest{
		OrderType:     domain.OrderPurchase,
		ContactID:     strPtr("contact-1"),
		CurrencyCode:  "USD",
		PaymentMethod: dto.TradePaymentNone,
		LocationID:    &locationID,
		TradeDate:     time.Now(),
		Lines: []dto.OrderLineRequest{
			{ItemID: &itemID, Description: "Widget", Quantity: decimal.NewFromInt(20), UnitPrice: decimal.NewFromInt(8)},
		},
	}, "user-1")

	suite.Require().NoError(err)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestProcessTrade_CheckPaymentRegistersInstrument() {
	ctx := context.Background()
	suite.allowMember(ctx)

	partyAccount := &domain.Account{AccountID: "acc-party", AccountType: domain.AccountCustomer}
	portfolioAccount := &domain.Account{AccountID: "acc-portfolio", AccountType: domain.AccountCheckPortfolio, CurrencyCode: "USD"}
	dueDate := time.Now().AddDate(0, 1, 0)

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("SaveOrderInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Order")).Return(nil).Once()
	suite.mockAccountSvc.On("EnsureContactAccountInTx", ctx, mock.Anything, "tenant-1", "contact-1", "user-1").Return(partyAccount, nil).Once()
	suite.mockLedgerSvc.On("PostTransactionInTx", ctx, mock.Anything, "tenant-1", mock.AnythingOfType("services.PostingInput"), "user-1").
		Return(&domain.Transaction{TransactionID: "txn-x"}, nil).Times(3)
	suite.mockAccountSvc.On("EnsureSystemAccountInTx", ctx, mock.Anything, "tenant-1", domain.AccountCheckPortfolio, "user-1").Return(portfolioAccount, nil).Once()
	suite.mockCheckRepo.On("SaveCheckInTx", ctx, mock.Anything, mock.MatchedBy(func(c domain.Check) bool {
		return c.Status == domain.CheckPortfolio && c.Number == "CHK-100" &&
			c.Amount.Equal(decimal.NewFromInt(100)) && c.PortfolioAccountID == "acc-portfolio"
	})).Return(nil).Once()
	suite.mockLedgerSvc.On("DeriveOrderPayment", ctx, mock.Anything, "tenant-1", mock.AnythingOfType("*domain.Order"), "user-1").Return(nil).Once()
	suite.mockOrderRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	resp, err := suite.service.ProcessTrade(ctx, "tenant-1", dto.ProcessTradeRequest{
		OrderType:     domain.OrderSale,
		ContactID:     strPtr("contact-1"),
		CurrencyCode:  "USD",
		PaymentMethod: dto.TradePaymentCheck,
		Check: &dto.TradeCheckDetails{
			Number:   "CHK-100",
			BankName: "First National",
			DueDate:  dueDate,
		},
		TradeDate: time.Now(),
		Lines: []dto.OrderLineRequest{
			{Description: "Widget", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(10)},
		},
	}, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.Check)
	suite.Equal("CHK-100", resp.Check.Number)
	suite.mockCheckRepo.AssertExpectations(suite.T())
}

func TestTradeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TradeServiceTestSuite))
}
