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

type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo  *MockOrderRepository
	mockAccountSvc *MockAccountService
	mockLedgerSvc  *MockLedgerService
	mockAuthorizer *MockTenantAuthorizer
	service        portssvc.OrderSvcFacade
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.mockAuthorizer = new(MockTenantAuthorizer)
	suite.service = services.NewOrderService(
		suite.mockOrderRepo,
		suite.mockAccountSvc,
		suite.mockLedgerSvc,
		suite.mockAuthorizer,
	)
}

func (suite *OrderServiceTestSuite) allowMember(ctx context.Context) {
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "tenant-1", domain.RoleMember).Return(nil).Once()
}

func strPtr(s string) *string { return &s }

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	ctx := context.Background()
	suite.allowMember(ctx)

	req := dto.CreateOrderRequest{
		OrderType:    domain.OrderSale,
		ContactID:    strPtr("contact-1"),
		CurrencyCode: "USD",
		Lines: []dto.OrderLineRequest{
			{Description: "Widget", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(10)},
			{Description: "Gadget", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("7.50")},
		},
	}

	suite.mockOrderRepo.On("SaveOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.Status == domain.OrderPending &&
			o.PaymentStatus == domain.PaymentUnpaid &&
			o.Total.Equal(decimal.NewFromInt(45)) &&
			len(o.Lines) == 2 &&
			o.Lines[0].LineTotal.Equal(decimal.NewFromInt(30))
	})).Return(nil).Once()

	order, err := suite.service.CreateOrder(ctx, "tenant-1", req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.OrderPending, order.Status)
	suite.True(order.Total.Equal(decimal.NewFromInt(45)))
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RequiresExactlyOneCounterparty() {
	ctx := context.Background()

	testCases := []struct {
		name       string
		contactID  *string
		employeeID *string
	}{
		{"neither", nil, nil},
		{"both", strPtr("contact-1"), strPtr("emp-1")},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.allowMember(ctx)
			req := dto.CreateOrderRequest{
				OrderType:    domain.OrderSale,
				ContactID:    tc.contactID,
				EmployeeID:   tc.employeeID,
				CurrencyCode: "USD",
				Lines: []dto.OrderLineRequest{
					{Description: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
				},
			}

			_, err := suite.service.CreateOrder(ctx, "tenant-1", req, "user-1")

			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RejectsNonPositiveQuantity() {
	ctx := context.Background()
	suite.allowMember(ctx)

	req := dto.CreateOrderRequest{
		OrderType:    domain.OrderSale,
		ContactID:    strPtr("contact-1"),
		CurrencyCode: "USD",
		Lines: []dto.OrderLineRequest{
			{Description: "Widget", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(10)},
		},
	}

	_, err := suite.service.CreateOrder(ctx, "tenant-1", req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_OnlyWhilePending() {
	ctx := context.Background()
	suite.allowMember(ctx)

	shipped := &domain.Order{OrderID: "order-1", TenantID: "tenant-1", Status: domain.OrderShipped}

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("FindOrderByIDForUpdate", ctx, mock.Anything, "tenant-1", "order-1").Return(shipped, nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := suite.service.UpdateOrder(ctx, "tenant-1", "order-1", dto.UpdateOrderRequest{
		Lines: []dto.OrderLineRequest{
			{Description: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrderInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_RederivesPaymentAgainstNewTotal() {
	ctx := context.Background()
	suite.allowMember(ctx)

	pending := &domain.Order{
		OrderID:   "order-1",
		TenantID:  "tenant-1",
		OrderType: domain.OrderSale,
		Status:    domain.OrderPending,
		Total:     decimal.NewFromInt(10),
	}

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("FindOrderByIDForUpdate", ctx, mock.Anything, "tenant-1", "order-1").Return(pending, nil).Once()
	suite.mockOrderRepo.On("UpdateOrderInTx", ctx, mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.Total.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()
	suite.mockLedgerSvc.On("DeriveOrderPayment", ctx, mock.Anything, "tenant-1", mock.AnythingOfType("*domain.Order"), "user-1").Return(nil).Once()
	suite.mockOrderRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	order, err := suite.service.UpdateOrder(ctx, "tenant-1", "order-1", dto.UpdateOrderRequest{
		Lines: []dto.OrderLineRequest{
			{Description: "Widget", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(10)},
		},
	}, "user-1")

	suite.Require().NoError(err)
	suite.True(order.Total.Equal(decimal.NewFromInt(50)))
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrderStatus_InvalidTransition() {
	ctx := context.Background()
	suite.allowMember(ctx)

	pending := &domain.Order{OrderID: "order-1", TenantID: "tenant-1", Status: domain.OrderPending}

	suite.mockOrderRepo.On("FindOrderByID", ctx, "tenant-1", "order-1").Return(pending, nil).Once()

	_, err := suite.service.UpdateOrderStatus(ctx, "tenant-1", "order-1", dto.UpdateOrderStatusRequest{
		Status: domain.OrderDelivered,
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrderStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrderStatus_Success() {
	ctx := context.Background()
	suite.allowMember(ctx)

	pending := &domain.Order{OrderID: "order-1", TenantID: "tenant-1", Status: domain.OrderPending}

	suite.mockOrderRepo.On("FindOrderByID", ctx, "tenant-1", "order-1").Return(pending, nil).Once()
	suite.mockOrderRepo.On("UpdateOrderStatus", ctx, "tenant-1", "order-1", domain.OrderPreparing, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	order, err := suite.service.UpdateOrderStatus(ctx, "tenant-1", "order-1", dto.UpdateOrderStatusRequest{
		Status: domain.OrderPreparing,
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.OrderPreparing, order.Status)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestRegisterOrderPayment_PostsBothLegs() {
	ctx := context.Background()
	suite.allowMember(ctx)

	order := &domain.Order{
		OrderID:      "order-1",
		TenantID:     "tenant-1",
		OrderType:    domain.OrderSale,
		ContactID:    strPtr("contact-1"),
		Status:       domain.OrderDelivered,
		CurrencyCode: "USD",
		Total:        decimal.NewFromInt(100),
	}
	partyAccount := &domain.Account{AccountID: "acc-party", AccountType: domain.AccountCustomer}

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("FindOrderByIDForUpdate", ctx, mock.Anything, "tenant-1", "order-1").Return(order, nil).Once()
	suite.mockAccountSvc.On("EnsureContactAccountInTx", ctx, mock.Anything, "tenant-1", "contact-1", "user-1").Return(partyAccount, nil).Once()

	// Party leg: sales settle by crediting the customer account.
	suite.mockLedgerSvc.On("PostTransactionInTx", ctx, mock.Anything, "tenant-1", mock.MatchedBy(func(in portssvc.PostingInput) bool {
		return in.AccountID == "acc-party" && in.TransactionType == domain.Credit &&
			in.DocumentType != nil && *in.DocumentType == domain.DocumentPayment
	}), "user-1").Return(&domain.Transaction{TransactionID: "txn-party"}, nil).Once()
	// Settlement leg: the cash side is debited.
	suite.mockLedgerSvc.On("PostTransactionInTx", ctx, mock.Anything, "tenant-1", mock.MatchedBy(func(in portssvc.PostingInput) bool {
		return in.AccountID == "acc-safe" && in.TransactionType == domain.Debit
	}), "user-1").Return(&domain.Transaction{TransactionID: "txn-settle"}, nil).Once()

	suite.mockLedgerSvc.On("DeriveOrderPayment", ctx, mock.Anything, "tenant-1", order, "user-1").Return(nil).Once()
	suite.mockOrderRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	resp, err := suite.service.RegisterOrderPayment(ctx, "tenant-1", "order-1", dto.RegisterOrderPaymentRequest{
		AccountID:   "acc-safe",
		Amount:      decimal.NewFromInt(40),
		PaymentDate: time.Now(),
		Description: "Partial payment",
	}, "user-1")

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 2)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestRegisterOrderPayment_CancelledOrder() {
	ctx := context.Background()
	suite.allowMember(ctx)

	cancelled := &domain.Order{OrderID: "order-1", TenantID: "tenant-1", Status: domain.OrderCancelled}

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("FindOrderByIDForUpdate", ctx, mock.Anything, "tenant-1", "order-1").Return(cancelled, nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := suite.service.RegisterOrderPayment(ctx, "tenant-1", "order-1", dto.RegisterOrderPaymentRequest{
		AccountID:   "acc-safe",
		Amount:      decimal.NewFromInt(10),
		PaymentDate: time.Now(),
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *OrderServiceTestSuite) TestMarkOrderAsPaid_SettlesRemainder() {
	ctx := context.Background()
	suite.allowMember(ctx)

	order := &domain.Order{
		OrderID:      "order-1",
		TenantID:     "tenant-1",
		OrderType:    domain.OrderSale,
		ContactID:    strPtr("contact-1"),
		Status:       domain.OrderDelivered,
		CurrencyCode: "USD",
		Total:        decimal.NewFromInt(100),
		PaidAmount:   decimal.NewFromInt(60),
	}
	partyAccount := &domain.Account{AccountID: "acc-party", AccountType: domain.AccountCustomer}

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("FindOrderByIDForUpdate", ctx, mock.Anything, "tenant-1", "order-1").Return(order, nil).Once()
	suite.mockAccountSvc.On("EnsureContactAccountInTx", ctx, mock.Anything, "tenant-1", "contact-1", "user-1").Return(partyAccount, nil).Once()
	suite.mockLedgerSvc.On("PostTransactionInTx", ctx, mock.Anything, "tenant-1", mock.MatchedBy(func(in portssvc.PostingInput) bool {
		return in.Amount.Equal(decimal.NewFromInt(40))
	}), "user-1").Return(&domain.Transaction{TransactionID: "txn-x"}, nil).Twice()
	suite.mockLedgerSvc.On("DeriveOrderPayment", ctx, mock.Anything, "tenant-1", order, "user-1").Return(nil).Once()
	suite.mockOrderRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	resp, err := suite.service.MarkOrderAsPaid(ctx, "tenant-1", "order-1", dto.MarkOrderAsPaidRequest{
		AccountID:   "acc-safe",
		PaymentDate: time.Now(),
	}, "user-1")

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 2)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestMarkOrderAsPaid_AlreadySettled() {
	ctx := context.Background()
	suite.allowMember(ctx)

	order := &domain.Order{
		OrderID:    "order-1",
		TenantID:   "tenant-1",
		Status:     domain.OrderDelivered,
		Total:      decimal.NewFromInt(100),
		PaidAmount: decimal.NewFromInt(100),
	}

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("FindOrderByIDForUpdate", ctx, mock.Anything, "tenant-1", "order-1").Return(order, nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := suite.service.MarkOrderAsPaid(ctx, "tenant-1", "order-1", dto.MarkOrderAsPaidRequest{
		AccountID:   "acc-safe",
		PaymentDate: time.Now(),
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *OrderServiceTestSuite) TestDeductOrderFromSalary_RequiresPersonnelOrder() {
	ctx := context.Background()
	suite.allowMember(ctx)

	contactOrder := &domain.Order{
		OrderID:   "order-1",
		TenantID:  "tenant-1",
		ContactID: strPtr("contact-1"),
		Status:    domain.OrderDelivered,
	}

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("FindOrderByIDForUpdate", ctx, mock.Anything, "tenant-1", "order-1").Return(contactOrder, nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := suite.service.DeductOrderFromSalary(ctx, "tenant-1", "order-1", "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestDeductOrderFromSalary_FlagsOrderPaidWithoutPosting() {
	ctx := context.Background()
	suite.allowMember(ctx)

	personnelOrder := &domain.Order{
		OrderID:    "order-1",
		TenantID:   "tenant-1",
		EmployeeID: strPtr("emp-1"),
		Status:     domain.OrderDelivered,
		Total:      decimal.NewFromInt(30),
		PaidAmount: decimal.Zero,
	}

	suite.mockOrderRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockOrderRepo.On("FindOrderByIDForUpdate", ctx, mock.Anything, "tenant-1", "order-1").Return(personnelOrder, nil).Once()
	suite.mockOrderRepo.On("UpdateOrderPaymentInTx", ctx, mock.Anything, "tenant-1", "order-1",
		mock.MatchedBy(func(paid decimal.Decimal) bool { return paid.IsZero() }),
		domain.PaymentPaid, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockOrderRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockOrderRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	order, err := suite.service.DeductOrderFromSalary(ctx, "tenant-1", "order-1", "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, order.PaymentStatus)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostTransactionInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
