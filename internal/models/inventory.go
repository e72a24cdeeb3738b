package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem represents a row of the inventory_items table.
type InventoryItem struct {
	ItemID        string          `db:"item_id"`
	TenantID      string          `db:"tenant_id"`
	SKU           string          `db:"sku"`
	Name          string          `db:"name"`
	Unit          string          `db:"unit"`
	SalePrice     decimal.Decimal `db:"sale_price"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	TrackStock    bool            `db:"track_stock"`
	IsActive      bool            `db:"is_active"`
	AuditFields
	OnHand decimal.Decimal `db:"on_hand"`
}

// StockMovement represents a row of the append-only stock_movements table.
type StockMovement struct {
	MovementID   string          `db:"movement_id"`
	TenantID     string          `db:"tenant_id"`
	ItemID       string          `db:"item_id"`
	LocationID   string          `db:"location_id"`
	Direction    string          `db:"direction"`
	Quantity     decimal.Decimal `db:"quantity"`
	DocumentType *string         `db:"document_type"`
	DocumentID   *string         `db:"document_id"`
	Note         string          `db:"note"`
	AuditFields
}

// LocationStock represents a row of the location_stock aggregate table.
type LocationStock struct {
	TenantID       string          `db:"tenant_id"`
	LocationID     string          `db:"location_id"`
	ItemID         string          `db:"item_id"`
	QuantityOnHand decimal.Decimal `db:"quantity_on_hand"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
