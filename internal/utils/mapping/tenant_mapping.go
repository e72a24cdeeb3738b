package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelTenant converts a domain.Tenant for DB storage.
func ToModelTenant(d domain.Tenant) models.Tenant {
	return models.Tenant{
		TenantID:            d.TenantID,
		Name:                d.Name,
		Description:         d.Description,
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTenant converts a stored models.Tenant back to the domain.
func ToDomainTenant(m models.Tenant) domain.Tenant {
	return domain.Tenant{
		TenantID:            m.TenantID,
		Name:                m.Name,
		Description:         m.Description,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelUserTenant converts a domain.UserTenant membership row.
// The UserName field is a read-side join and is not persisted.
func ToModelUserTenant(d domain.UserTenant) models.UserTenant {
	return models.UserTenant{
		UserID:   d.UserID,
		TenantID: d.TenantID,
		Role:     string(d.Role),
		JoinedAt: d.JoinedAt,
	}
}

// ToDomainUserTenant converts a stored models.UserTenant back to the domain.
func ToDomainUserTenant(m models.UserTenant) domain.UserTenant {
	return domain.UserTenant{
		UserID:   m.UserID,
		TenantID: m.TenantID,
		Role:     domain.UserTenantRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
}
