package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to append a ledger transaction.
type CreateTransactionRequest struct {
	AccountID       string          `json:"accountID" binding:"required"`
	TransactionType string          `json:"transactionType" binding:"required,oneof=DEBIT CREDIT"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,len=3"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
	Description     string          `json:"description"`
	DocumentType    *string         `json:"documentType" binding:"omitempty,oneof=ORDER PAYMENT CHECK SALARY ADJUSTMENT"`
	DocumentID      *string         `json:"documentID"`
}

// TransactionResponse defines the data returned for a ledger transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	DocumentType    *string         `json:"documentType,omitempty"`
	DocumentID      *string         `json:"documentID,omitempty"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	var docType *string
	if txn.DocumentType != nil {
		s := string(*txn.DocumentType)
		docType = &s
	}
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		TransactionType: string(txn.TransactionType),
		Amount:          txn.Amount,
		CurrencyCode:    txn.CurrencyCode,
		TransactionDate: txn.TransactionDate,
		Description:     txn.Description,
		DocumentType:    docType,
		DocumentID:      txn.DocumentID,
		RunningBalance:  txn.RunningBalance,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsParams defines query parameters for listing account transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions with the next page token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
