package accounting

import (
	"fmt"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a posting amount based on
// the account's normal balance side. This is the single place the sign
// convention lives; services and repositories must not reimplement it.
//
// Debit-normal accounts (customer, personnel, bank, safe, pos, check
// portfolio, standard): DEBIT -> +, CREDIT -> -.
// Credit-normal accounts (supplier, credit card): CREDIT -> +, DEBIT -> -.
//
// A positive customer balance therefore means the customer owes the business;
// a positive supplier balance means the business owes the supplier.
func CalculateSignedAmount(txn domain.Transaction, accountType domain.AccountType) (decimal.Decimal, error) {
	if txn.Amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("transaction amount must not be negative for transaction %s", txn.TransactionID)
	}
	signedAmount := txn.Amount
	isDebit := txn.TransactionType == domain.Debit

	switch accountType {
	case domain.AccountStandard, domain.AccountBank, domain.AccountSafe, domain.AccountPOS,
		domain.AccountCheckPortfolio, domain.AccountCustomer, domain.AccountPersonnel:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.AccountSupplier, domain.AccountCreditCard:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, txn.AccountID)
	}
	return signedAmount, nil
}

// SumPaymentAmounts totals the transactions that count as payments against an
// order: only rows tagged as PAYMENT documents whose type matches the order
// type's settlement side contribute. Used by every payment derivation call site.
func SumPaymentAmounts(transactions []domain.Transaction, orderType domain.OrderType) decimal.Decimal {
	target := orderType.PaymentTransactionType()
	total := decimal.Zero
	for _, txn := range transactions {
		if txn.DocumentType == nil || *txn.DocumentType != domain.DocumentPayment {
			continue
		}
		if txn.TransactionType != target {
			continue
		}
		total = total.Add(txn.Amount)
	}
	return total
}
