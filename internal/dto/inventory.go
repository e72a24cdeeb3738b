package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateItemRequest defines the data needed to create a new inventory item.
type CreateItemRequest struct {
	SKU           string          `json:"sku" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Unit          string          `json:"unit" binding:"required"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	TrackStock    bool            `json:"trackStock"`
}

// UpdateItemRequest defines the data allowed for updating an inventory item.
type UpdateItemRequest struct {
	Name      *string          `json:"name"`
	Unit      *string          `json:"unit"`
	SalePrice *decimal.Decimal `json:"salePrice"`
	IsActive  *bool            `json:"isActive"`
}

// ItemResponse defines the data returned for an inventory item.
type ItemResponse struct {
	ItemID        string          `json:"itemID"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	TrackStock    bool            `json:"trackStock"`
	IsActive      bool            `json:"isActive"`
	OnHand        decimal.Decimal `json:"onHand"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToItemResponse converts a domain.InventoryItem to ItemResponse DTO.
func ToItemResponse(item *domain.InventoryItem) ItemResponse {
	return ItemResponse{
		ItemID:        item.ItemID,
		SKU:           item.SKU,
		Name:          item.Name,
		Unit:          item.Unit,
		SalePrice:     item.SalePrice,
		PurchasePrice: item.PurchasePrice,
		TrackStock:    item.TrackStock,
		IsActive:      item.IsActive,
		OnHand:        item.OnHand,
		CreatedAt:     item.CreatedAt,
		LastUpdatedAt: item.LastUpdatedAt,
	}
}

// ToItemResponses converts a slice of domain.InventoryItem to []ItemResponse.
func ToItemResponses(items []domain.InventoryItem) []ItemResponse {
	res := make([]ItemResponse, len(items))
	for i, item := range items {
		res[i] = ToItemResponse(&item)
	}
	return res
}

// ListItemsParams defines query parameters for listing inventory items.
type ListItemsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListItemsResponse wraps the list of inventory items.
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
}

// RecordMovementRequest defines the data needed to append a stock movement.
// LocationID falls back to the tenant's default location when omitted.
type RecordMovementRequest struct {
	ItemID       string          `json:"itemID" binding:"required"`
	LocationID   *string         `json:"locationID"`
	Direction    string          `json:"direction" binding:"required,oneof=IN OUT"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	DocumentType *string         `json:"documentType" binding:"omitempty,oneof=ORDER PAYMENT CHECK SALARY ADJUSTMENT"`
	DocumentID   *string         `json:"documentID"`
	Note         string          `json:"note"`
}

// StockMovementResponse defines the data returned for a stock movement.
type StockMovementResponse struct {
	MovementID   string          `json:"movementID"`
	ItemID       string          `json:"itemID"`
	LocationID   string          `json:"locationID"`
	Direction    string          `json:"direction"`
	Quantity     decimal.Decimal `json:"quantity"`
	DocumentType *string         `json:"documentType,omitempty"`
	DocumentID   *string         `json:"documentID,omitempty"`
	Note         string          `json:"note"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ToStockMovementResponse converts a domain.StockMovement to StockMovementResponse DTO.
func ToStockMovementResponse(m *domain.StockMovement) StockMovementResponse {
	var docType *string
	if m.DocumentType != nil {
		s := string(*m.DocumentType)
		docType = &s
	}
	return StockMovementResponse{
		MovementID:   m.MovementID,
		ItemID:       m.ItemID,
		LocationID:   m.LocationID,
		Direction:    string(m.Direction),
		Quantity:     m.Quantity,
		DocumentType: docType,
		DocumentID:   m.DocumentID,
		Note:         m.Note,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}

// ToStockMovementResponses converts a slice of domain.StockMovement to []StockMovementResponse.
func ToStockMovementResponses(movements []domain.StockMovement) []StockMovementResponse {
	res := make([]StockMovementResponse, len(movements))
	for i, m := range movements {
		res[i] = ToStockMovementResponse(&m)
	}
	return res
}

// ListMovementsParams defines query parameters for listing stock movements.
type ListMovementsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListMovementsResponse wraps a page of stock movements with the next page token.
type ListMovementsResponse struct {
	Movements []StockMovementResponse `json:"movements"`
	NextToken *string                 `json:"nextToken,omitempty"`
}
