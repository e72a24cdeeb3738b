package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelCheck converts a domain.Check for DB storage.
func ToModelCheck(d domain.Check) models.Check {
	return models.Check{
		CheckID:            d.CheckID,
		TenantID:           d.TenantID,
		PortfolioAccountID: d.PortfolioAccountID,
		ContactID:          d.ContactID,
		OrderID:            d.OrderID,
		Number:             d.Number,
		BankName:           d.BankName,
		Amount:             d.Amount,
		DueDate:            d.DueDate,
		Status:             string(d.Status),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCheck converts a stored models.Check back to the domain.
func ToDomainCheck(m models.Check) domain.Check {
	return domain.Check{
		CheckID:            m.CheckID,
		TenantID:           m.TenantID,
		PortfolioAccountID: m.PortfolioAccountID,
		ContactID:          m.ContactID,
		OrderID:            m.OrderID,
		Number:             m.Number,
		BankName:           m.BankName,
		Amount:             m.Amount,
		DueDate:            m.DueDate,
		Status:             domain.CheckStatus(m.Status),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
