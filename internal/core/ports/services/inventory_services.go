package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/jackc/pgx/v5"
)

// ItemReaderSvc defines read operations for inventory item data
type ItemReaderSvc interface {
	// GetItemByID retrieves a specific inventory item by its ID.
	GetItemByID(ctx context.Context, tenantID, itemID string, requestingUserID string) (*domain.InventoryItem, error)

	// ListItems retrieves a paginated list of inventory items in a tenant.
	ListItems(ctx context.Context, tenantID string, requestingUserID string, params dto.ListItemsParams) (*dto.ListItemsResponse, error)
}

// ItemWriterSvc defines write operations for inventory item data
type ItemWriterSvc interface {
	// CreateItem persists a new inventory item.
	CreateItem(ctx context.Context, tenantID string, req dto.CreateItemRequest, creatorUserID string) (*domain.InventoryItem, error)

	// UpdateItem updates an existing inventory item's details.
	UpdateItem(ctx context.Context, tenantID, itemID string, req dto.UpdateItemRequest, requestingUserID string) (*domain.InventoryItem, error)
}

// StockMovementSvc defines operations over the stock movement ledger
type StockMovementSvc interface {
	// RecordMovement appends a movement row and updates both denormalized
	// aggregates (item on-hand and per-location stock) in one transaction.
	// OUT movements exceeding the available quantity fail validation.
	RecordMovement(ctx context.Context, tenantID string, req dto.RecordMovementRequest, creatorUserID string) (*domain.StockMovement, error)

	// RecordMovementInTx is RecordMovement running inside the caller's database
	// transaction, for flows that combine stock and ledger writes.
	RecordMovementInTx(ctx context.Context, tx pgx.Tx, tenantID string, req dto.RecordMovementRequest, creatorUserID string) (*domain.StockMovement, error)

	// ListMovementsByItem retrieves the movement history of an item.
	ListMovementsByItem(ctx context.Context, tenantID, itemID string, requestingUserID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)
}

// InventorySvcFacade combines all inventory-related service interfaces
// This is a facade for clients that need access to all operations
type InventorySvcFacade interface {
	ItemReaderSvc
	ItemWriterSvc
	StockMovementSvc
}
