package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ItemReader defines read operations for inventory item data
type ItemReader interface {
	// FindItemByID retrieves a specific inventory item by its unique identifier.
	FindItemByID(ctx context.Context, tenantID, itemID string) (*domain.InventoryItem, error)

	// FindItemBySKU retrieves an inventory item by its SKU within a tenant.
	FindItemBySKU(ctx context.Context, tenantID, sku string) (*domain.InventoryItem, error)

	// ListItems retrieves a paginated list of inventory items for a given tenant.
	ListItems(ctx context.Context, tenantID string, limit int, offset int) ([]domain.InventoryItem, error)
}

// ItemWriter defines write operations for inventory item data
type ItemWriter interface {
	// SaveItem persists a new inventory item.
	SaveItem(ctx context.Context, item domain.InventoryItem) error

	// UpdateItem updates an existing inventory item's details.
	UpdateItem(ctx context.Context, item domain.InventoryItem) error

	// DeactivateItem marks an inventory item as inactive.
	DeactivateItem(ctx context.Context, tenantID, itemID string, userID string, now time.Time) error
}

// StockMovementReader defines read operations for stock movement data
type StockMovementReader interface {
	// ListMovementsByItem retrieves a paginated list of stock movements for an item
	// using token-based pagination.
	ListMovementsByItem(ctx context.Context, tenantID, itemID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error)

	// FindMovementsByDocument retrieves all stock movements linked to a source document.
	FindMovementsByDocument(ctx context.Context, tenantID string, documentType domain.DocumentType, documentID string) ([]domain.StockMovement, error)
}

// StockTransactionSupport defines stock operations that participate in a database transaction
type StockTransactionSupport interface {
	// FindItemByIDForUpdate retrieves an item and locks its row for the duration of the transaction.
	FindItemByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, itemID string) (*domain.InventoryItem, error)

	// GetLocationStockForUpdate retrieves the per-location stock row, locking it.
	// Returns zero stock when no row exists yet.
	GetLocationStockForUpdate(ctx context.Context, tx pgx.Tx, tenantID, locationID, itemID string) (*domain.LocationStock, error)

	// SaveMovementInTx persists a stock movement row within an existing transaction.
	SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error

	// UpsertLocationStockInTx applies a signed quantity delta to a per-location stock
	// row, inserting it when absent.
	UpsertLocationStockInTx(ctx context.Context, tx pgx.Tx, tenantID, locationID, itemID string, delta decimal.Decimal, now time.Time) error

	// UpdateItemOnHandInTx applies a signed quantity delta to an item's aggregate on-hand counter.
	UpdateItemOnHandInTx(ctx context.Context, tx pgx.Tx, tenantID, itemID string, delta decimal.Decimal, userID string, now time.Time) error

	// UpdatePurchasePriceInTx records the latest purchase price of an item.
	UpdatePurchasePriceInTx(ctx context.Context, tx pgx.Tx, tenantID, itemID string, price decimal.Decimal, userID string, now time.Time) error
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces
type InventoryRepositoryFacade interface {
	ItemReader
	ItemWriter
	StockMovementReader
	StockTransactionSupport
}

// InventoryRepositoryWithTx extends InventoryRepositoryFacade with transaction capabilities
type InventoryRepositoryWithTx interface {
	InventoryRepositoryFacade
	TransactionManager
}
