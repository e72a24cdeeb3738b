package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelInventoryItem converts a domain.InventoryItem for DB storage.
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ItemID:        d.ItemID,
		TenantID:      d.TenantID,
		SKU:           d.SKU,
		Name:          d.Name,
		Unit:          d.Unit,
		SalePrice:     d.SalePrice,
		PurchasePrice: d.PurchasePrice,
		TrackStock:    d.TrackStock,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
		OnHand:        d.OnHand,
	}
}

// ToDomainInventoryItem converts a stored models.InventoryItem back to the domain.
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:        m.ItemID,
		TenantID:      m.TenantID,
		SKU:           m.SKU,
		Name:          m.Name,
		Unit:          m.Unit,
		SalePrice:     m.SalePrice,
		PurchasePrice: m.PurchasePrice,
		TrackStock:    m.TrackStock,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		OnHand:        m.OnHand,
	}
}

// ToModelStockMovement converts a domain.StockMovement for DB storage.
func ToModelStockMovement(d domain.StockMovement) models.StockMovement {
	var docType *string
	if d.DocumentType != nil {
		s := string(*d.DocumentType)
		docType = &s
	}
	return models.StockMovement{
		MovementID:   d.MovementID,
		TenantID:     d.TenantID,
		ItemID:       d.ItemID,
		LocationID:   d.LocationID,
		Direction:    string(d.Direction),
		Quantity:     d.Quantity,
		DocumentType: docType,
		DocumentID:   d.DocumentID,
		Note:         d.Note,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockMovement converts a stored models.StockMovement back to the domain.
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	var docType *domain.DocumentType
	if m.DocumentType != nil {
		t := domain.DocumentType(*m.DocumentType)
		docType = &t
	}
	return domain.StockMovement{
		MovementID:   m.MovementID,
		TenantID:     m.TenantID,
		ItemID:       m.ItemID,
		LocationID:   m.LocationID,
		Direction:    domain.MovementDirection(m.Direction),
		Quantity:     m.Quantity,
		DocumentType: docType,
		DocumentID:   m.DocumentID,
		Note:         m.Note,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLocationStock converts a stored models.LocationStock back to the domain.
func ToDomainLocationStock(m models.LocationStock) domain.LocationStock {
	return domain.LocationStock{
		TenantID:       m.TenantID,
		LocationID:     m.LocationID,
		ItemID:         m.ItemID,
		QuantityOnHand: m.QuantityOnHand,
		UpdatedAt:      m.UpdatedAt,
	}
}
