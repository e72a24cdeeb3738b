package domain_test

import (
	"testing"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    domain.OrderStatus
		to      domain.OrderStatus
		allowed bool
	}{
		{"pending to preparing", domain.OrderPending, domain.OrderPreparing, true},
		{"preparing to ready", domain.OrderPreparing, domain.OrderReady, true},
		{"ready to shipped", domain.OrderReady, domain.OrderShipped, true},
		{"shipped to delivered", domain.OrderShipped, domain.OrderDelivered, true},
		{"no skipping ahead", domain.OrderPending, domain.OrderReady, false},
		{"no moving backwards", domain.OrderReady, domain.OrderPreparing, false},
		{"no self transition", domain.OrderPending, domain.OrderPending, false},
		{"pending can cancel", domain.OrderPending, domain.OrderCancelled, true},
		{"shipped can cancel", domain.OrderShipped, domain.OrderCancelled, true},
		{"delivered cannot cancel", domain.OrderDelivered, domain.OrderCancelled, false},
		{"cancelled cannot cancel again", domain.OrderCancelled, domain.OrderCancelled, false},
		{"cancelled is terminal", domain.OrderCancelled, domain.OrderPreparing, false},
		{"delivered is terminal", domain.OrderDelivered, domain.OrderPending, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestOrderType_PaymentTransactionType(t *testing.T) {
	assert.Equal(t, domain.Credit, domain.OrderSale.PaymentTransactionType())
	assert.Equal(t, domain.Debit, domain.OrderPurchase.PaymentTransactionType())
	assert.Equal(t, domain.Debit, domain.OrderService.PaymentTransactionType())
}

func TestOrderType_ChargeTransactionType(t *testing.T) {
	assert.Equal(t, domain.Debit, domain.OrderSale.ChargeTransactionType())
	assert.Equal(t, domain.Credit, domain.OrderPurchase.ChargeTransactionType())
	assert.Equal(t, domain.Credit, domain.OrderService.ChargeTransactionType())
}

func TestDerivePaymentStatus(t *testing.T) {
	total := decimal.NewFromInt(100)

	assert.Equal(t, domain.PaymentUnpaid, domain.DerivePaymentStatus(decimal.Zero, total))
	assert.Equal(t, domain.PaymentUnpaid, domain.DerivePaymentStatus(decimal.NewFromInt(-5), total))
	assert.Equal(t, domain.PaymentPartial, domain.DerivePaymentStatus(decimal.NewFromInt(50), total))
	assert.Equal(t, domain.PaymentPaid, domain.DerivePaymentStatus(total, total))
	// Overpayment still reads as paid.
	assert.Equal(t, domain.PaymentPaid, domain.DerivePaymentStatus(decimal.NewFromInt(120), total))
	// A zero-total order owes nothing, so it is paid from the start.
	assert.Equal(t, domain.PaymentPaid, domain.DerivePaymentStatus(decimal.Zero, decimal.Zero))
}

func TestTransactionType_Opposite(t *testing.T) {
	assert.Equal(t, domain.Credit, domain.Debit.Opposite())
	assert.Equal(t, domain.Debit, domain.Credit.Opposite())
}
