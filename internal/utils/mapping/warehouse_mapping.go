package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelWarehousePool converts a domain.WarehousePool for DB storage.
func ToModelWarehousePool(d domain.WarehousePool) models.WarehousePool {
	return models.WarehousePool{
		PoolID:      d.PoolID,
		TenantID:    d.TenantID,
		Name:        d.Name,
		IsDefault:   d.IsDefault,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWarehousePool converts a stored models.WarehousePool back to the domain.
func ToDomainWarehousePool(m models.WarehousePool) domain.WarehousePool {
	return domain.WarehousePool{
		PoolID:      m.PoolID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		IsDefault:   m.IsDefault,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelWarehouseLocation converts a domain.WarehouseLocation for DB storage.
func ToModelWarehouseLocation(d domain.WarehouseLocation) models.WarehouseLocation {
	return models.WarehouseLocation{
		LocationID:  d.LocationID,
		PoolID:      d.PoolID,
		TenantID:    d.TenantID,
		Name:        d.Name,
		Code:        d.Code,
		IsDefault:   d.IsDefault,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWarehouseLocation converts a stored models.WarehouseLocation back to the domain.
func ToDomainWarehouseLocation(m models.WarehouseLocation) domain.WarehouseLocation {
	return domain.WarehouseLocation{
		LocationID:  m.LocationID,
		PoolID:      m.PoolID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Code:        m.Code,
		IsDefault:   m.IsDefault,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
