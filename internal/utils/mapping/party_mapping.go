package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelContact converts a domain.Contact for DB storage.
func ToModelContact(d domain.Contact) models.Contact {
	return models.Contact{
		ContactID:   d.ContactID,
		TenantID:    d.TenantID,
		Kind:        string(d.Kind),
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		TaxNumber:   d.TaxNumber,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContact converts a stored models.Contact back to the domain.
func ToDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID:   m.ContactID,
		TenantID:    m.TenantID,
		Kind:        domain.ContactKind(m.Kind),
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		TaxNumber:   m.TaxNumber,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEmployee converts a domain.Employee for DB storage.
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:    d.EmployeeID,
		TenantID:      d.TenantID,
		Name:          d.Name,
		Position:      d.Position,
		MonthlySalary: d.MonthlySalary,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a stored models.Employee back to the domain.
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:    m.EmployeeID,
		TenantID:      m.TenantID,
		Name:          m.Name,
		Position:      m.Position,
		MonthlySalary: m.MonthlySalary,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
