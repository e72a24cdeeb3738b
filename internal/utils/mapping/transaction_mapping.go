package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelTransaction converts a domain.Transaction for DB storage.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var docType *string
	if d.DocumentType != nil {
		s := string(*d.DocumentType)
		docType = &s
	}
	return models.Transaction{
		TransactionID:   d.TransactionID,
		TenantID:        d.TenantID,
		AccountID:       d.AccountID,
		TransactionType: models.TransactionType(d.TransactionType),
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		DocumentType:    docType,
		DocumentID:      d.DocumentID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		RunningBalance:  d.RunningBalance,
	}
}

// ToDomainTransaction converts a stored models.Transaction back to the domain.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	var docType *domain.DocumentType
	if m.DocumentType != nil {
		t := domain.DocumentType(*m.DocumentType)
		docType = &t
	}
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		TenantID:        m.TenantID,
		AccountID:       m.AccountID,
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		DocumentType:    docType,
		DocumentID:      m.DocumentID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		RunningBalance:  m.RunningBalance,
	}
}
