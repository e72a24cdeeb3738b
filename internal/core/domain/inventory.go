package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementDirection indicates stock entering or leaving a location.
type MovementDirection string

const (
	MovementIn  MovementDirection = "IN"
	MovementOut MovementDirection = "OUT"
)

// InventoryItem is a stock-keeping unit within a tenant.
// OnHand is a denormalized aggregate over all locations, maintained under
// row lock by the stock movement ledger.
type InventoryItem struct {
	ItemID        string          `json:"itemID"`   // Primary Key (UUID)
	TenantID      string          `json:"tenantID"` // FK -> tenants.tenant_id
	SKU           string          `json:"sku"`      // Unique per tenant
	Name          string          `json:"name"`
	Unit          string          `json:"unit"` // e.g. "pcs", "kg"
	SalePrice     decimal.Decimal `json:"salePrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"` // Last purchase price, upserted by trades
	TrackStock    bool            `json:"trackStock"`    // Service items skip movements
	IsActive      bool            `json:"isActive"`
	AuditFields
	OnHand decimal.Decimal `json:"onHand"` // Denormalized total across locations
}

// StockMovement is one row of the append-only movement log.
type StockMovement struct {
	MovementID   string            `json:"movementID"` // Primary Key (UUID)
	TenantID     string            `json:"tenantID"`   // FK -> tenants.tenant_id
	ItemID       string            `json:"itemID"`     // FK -> inventory_items.item_id
	LocationID   string            `json:"locationID"` // FK -> warehouse_locations.location_id
	Direction    MovementDirection `json:"direction"`
	Quantity     decimal.Decimal   `json:"quantity"` // Always positive
	DocumentType *DocumentType     `json:"documentType"`
	DocumentID   *string           `json:"documentID"`
	Note         string            `json:"note"`
	AuditFields
}

// LocationStock is the per-location on-hand aggregate for one item.
type LocationStock struct {
	TenantID       string          `json:"tenantID"`
	LocationID     string          `json:"locationID"`
	ItemID         string          `json:"itemID"`
	QuantityOnHand decimal.Decimal `json:"quantityOnHand"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
