package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelAccount converts a domain.Account for DB storage.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		TenantID:     d.TenantID,
		Code:         d.Code,
		Name:         d.Name,
		AccountType:  models.AccountType(d.AccountType),
		ContactID:    d.ContactID,
		EmployeeID:   d.EmployeeID,
		CurrencyCode: d.CurrencyCode,
		Description:  d.Description,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		Balance:      d.Balance,
	}
}

// ToDomainAccount converts a stored models.Account back to the domain.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		TenantID:     m.TenantID,
		Code:         m.Code,
		Name:         m.Name,
		AccountType:  domain.AccountType(m.AccountType),
		ContactID:    m.ContactID,
		EmployeeID:   m.EmployeeID,
		CurrencyCode: m.CurrencyCode,
		Description:  m.Description,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		Balance:      m.Balance,
	}
}
