package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelOrder converts a domain.Order header for DB storage (lines handled separately).
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:       d.OrderID,
		TenantID:      d.TenantID,
		OrderType:     string(d.OrderType),
		ContactID:     d.ContactID,
		EmployeeID:    d.EmployeeID,
		Status:        string(d.Status),
		CurrencyCode:  d.CurrencyCode,
		AuditFields:   ToModelAuditFields(d.AuditFields),
		Total:         d.Total,
		PaidAmount:    d.PaidAmount,
		PaymentStatus: string(d.PaymentStatus),
	}
}

// ToDomainOrder converts a stored models.Order back to the domain (without lines).
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:       m.OrderID,
		TenantID:      m.TenantID,
		OrderType:     domain.OrderType(m.OrderType),
		ContactID:     m.ContactID,
		EmployeeID:    m.EmployeeID,
		Status:        domain.OrderStatus(m.Status),
		CurrencyCode:  m.CurrencyCode,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		Total:         m.Total,
		PaidAmount:    m.PaidAmount,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
	}
}

// ToModelOrderLine converts a domain.OrderLine for DB storage.
func ToModelOrderLine(d domain.OrderLine) models.OrderLine {
	return models.OrderLine{
		LineID:      d.LineID,
		OrderID:     d.OrderID,
		ItemID:      d.ItemID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		LineTotal:   d.LineTotal,
	}
}

// ToDomainOrderLine converts a stored models.OrderLine back to the domain.
func ToDomainOrderLine(m models.OrderLine) domain.OrderLine {
	return domain.OrderLine{
		LineID:      m.LineID,
		OrderID:     m.OrderID,
		ItemID:      m.ItemID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		LineTotal:   m.LineTotal,
	}
}
