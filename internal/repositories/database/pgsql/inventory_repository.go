package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/bizledger/bizledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const itemColumns = `item_id, tenant_id, sku, name, unit, sale_price, purchase_price, track_stock, is_active, created_at, created_by, last_updated_at, last_updated_by, on_hand`

const movementColumns = `movement_id, tenant_id, item_id, location_id, direction, quantity, document_type, document_id, note, created_at, created_by, last_updated_at, last_updated_by`

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory items,
// stock movements and per-location stock.
func newPgxInventoryRepository(pool *pgxpool.Pool) *PgxInventoryRepository {
	return &PgxInventoryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryWithTx = (*PgxInventoryRepository)(nil)

func scanItem(row rowScanner) (*domain.InventoryItem, error) {
	var m models.InventoryItem
	err := row.Scan(
		&m.ItemID,
		&m.TenantID,
		&m.SKU,
		&m.Name,
		&m.Unit,
		&m.SalePrice,
		&m.PurchasePrice,
		&m.TrackStock,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.OnHand,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainInventoryItem(m)
	return &d, nil
}

func scanMovement(row rowScanner) (*domain.StockMovement, error) {
	var m models.StockMovement
	err := row.Scan(
		&m.MovementID,
		&m.TenantID,
		&m.ItemID,
		&m.LocationID,
		&m.Direction,
		&m.Quantity,
		&m.DocumentType,
		&m.DocumentID,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainStockMovement(m)
	return &d, nil
}

// FindItemByID retrieves an inventory item by its ID within a tenant.
func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, tenantID, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE tenant_id = $1 AND item_id = $2;`

	item, err := scanItem(r.Pool.QueryRow(ctx, query, tenantID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item %s: %w", itemID, err)
	}
	return item, nil
}

// FindItemBySKU retrieves an inventory item by its SKU within a tenant.
func (r *PgxInventoryRepository) FindItemBySKU(ctx context.Context, tenantID, sku string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE tenant_id = $1 AND sku = $2;`

	item, err := scanItem(r.Pool.QueryRow(ctx, query, tenantID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item by SKU %s: %w", sku, err)
	}
	return item, nil
}

// ListItems retrieves active inventory items of a tenant.
func (r *PgxInventoryRepository) ListItems(ctx context.Context, tenantID string, limit int, offset int) ([]domain.InventoryItem, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE tenant_id = $1 AND is_active
		ORDER BY sku
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}
	return items, nil
}

// SaveItem persists a new inventory item.
func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	m := mapping.ToModelInventoryItem(item)
	_, err := r.Pool.Exec(ctx, query,
		m.ItemID,
		m.TenantID,
		m.SKU,
		m.Name,
		m.Unit,
		m.SalePrice,
		m.PurchasePrice,
		m.TrackStock,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.OnHand,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: item with SKU %s already exists", apperrors.ErrDuplicate, m.SKU)
		}
		return fmt.Errorf("failed to save item %s: %w", m.ItemID, err)
	}
	return nil
}

// UpdateItem updates an inventory item's details. SKU and stock counters are
// not touched here.
func (r *PgxInventoryRepository) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $3, unit = $4, sale_price = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $1 AND item_id = $2;
	`
	m := mapping.ToModelInventoryItem(item)
	commandTag, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.ItemID,
		m.Name,
		m.Unit,
		m.SalePrice,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", m.ItemID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateItem marks an inventory item as inactive.
func (r *PgxInventoryRepository) DeactivateItem(ctx context.Context, tenantID, itemID string, userID string, now time.Time) error {
	query := `
		UPDATE inventory_items
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND item_id = $2 AND is_active;
	`
	commandTag, err := r.Pool.Exec(ctx, query, tenantID, itemID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate item %s: %w", itemID, err)
	}
	if commandTag.RowsAffected() == 0 {
		if _, findErr := r.FindItemByID(ctx, tenantID, itemID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: item %s is already inactive", apperrors.ErrConflict, itemID)
	}
	return nil
}

// ListMovementsByItem retrieves stock movements of an item newest first, using
// keyset pagination on created_at.
func (r *PgxInventoryRepository) ListMovementsByItem(ctx context.Context, tenantID, itemID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE tenant_id = $1 AND item_id = $2
	`
	args := []any{tenantID, itemID}

	if nextToken != nil && *nextToken != "" {
		createdAt, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, createdAt)
		query += fmt.Sprintf(` AND created_at < $%d`, len(args))
	}

	// Fetch one extra row to detect whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query movements for item %s: %w", itemID, err)
	}
	defer rows.Close()

	movements := []domain.StockMovement{}
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, *movement)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating movement rows: %w", err)
	}

	var newNextToken *string
	if len(movements) > limit {
		movements = movements[:limit]
		token := pagination.EncodeDateBasedToken(movements[limit-1].CreatedAt)
		newNextToken = &token
	}
	return movements, newNextToken, nil
}

// FindMovementsByDocument retrieves all stock movements linked to a source document.
func (r *PgxInventoryRepository) FindMovementsByDocument(ctx context.Context, tenantID string, documentType domain.DocumentType, documentID string) ([]domain.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE tenant_id = $1 AND document_type = $2 AND document_id = $3
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, string(documentType), documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for document %s/%s: %w", documentType, documentID, err)
	}
	defer rows.Close()

	movements := []domain.StockMovement{}
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, *movement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}
	return movements, nil
}

// FindItemByIDForUpdate retrieves an item and locks its row for the duration
// of the transaction.
func (r *PgxInventoryRepository) FindItemByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE tenant_id = $1 AND item_id = $2 FOR UPDATE;`

	item, err := scanItem(tx.QueryRow(ctx, query, tenantID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock item %s: %w", itemID, err)
	}
	return item, nil
}

// GetLocationStockForUpdate retrieves and locks the per-location stock row.
// A zero-quantity stock value is returned when the row does not exist yet, the
// following upsert creates it.
func (r *PgxInventoryRepository) GetLocationStockForUpdate(ctx context.Context, tx pgx.Tx, tenantID, locationID, itemID string) (*domain.LocationStock, error) {
	query := `
		SELECT tenant_id, location_id, item_id, quantity_on_hand, updated_at
		FROM location_stock
		WHERE tenant_id = $1 AND location_id = $2 AND item_id = $3
		FOR UPDATE;
	`
	var m models.LocationStock
	err := tx.QueryRow(ctx, query, tenantID, locationID, itemID).Scan(
		&m.TenantID,
		&m.LocationID,
		&m.ItemID,
		&m.QuantityOnHand,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.LocationStock{
				TenantID:       tenantID,
				LocationID:     locationID,
				ItemID:         itemID,
				QuantityOnHand: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("failed to lock stock of item %s at location %s: %w", itemID, locationID, err)
	}
	stock := mapping.ToDomainLocationStock(m)
	return &stock, nil
}

// SaveMovementInTx persists a stock movement row within a transaction.
func (r *PgxInventoryRepository) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	m := mapping.ToModelStockMovement(movement)
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.TenantID,
		m.ItemID,
		m.LocationID,
		m.Direction,
		m.Quantity,
		m.DocumentType,
		m.DocumentID,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save movement %s: %w", m.MovementID, err)
	}
	return nil
}

// UpsertLocationStockInTx applies a signed quantity delta to a per-location
// stock row, inserting it when absent.
func (r *PgxInventoryRepository) UpsertLocationStockInTx(ctx context.Context, tx pgx.Tx, tenantID, locationID, itemID string, delta decimal.Decimal, now time.Time) error {
	query := `
		INSERT INTO location_stock (tenant_id, location_id, item_id, quantity_on_hand, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, location_id, item_id)
		DO UPDATE SET quantity_on_hand = location_stock.quantity_on_hand + EXCLUDED.quantity_on_hand, updated_at = EXCLUDED.updated_at;
	`
	if _, err := tx.Exec(ctx, query, tenantID, locationID, itemID, delta, now); err != nil {
		return fmt.Errorf("failed to upsert stock of item %s at location %s: %w", itemID, locationID, err)
	}
	return nil
}

// UpdateItemOnHandInTx applies a signed quantity delta to an item's aggregate
// on-hand counter.
func (r *PgxInventoryRepository) UpdateItemOnHandInTx(ctx context.Context, tx pgx.Tx, tenantID, itemID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE inventory_items
		SET on_hand = on_hand + $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND item_id = $2;
	`
	commandTag, err := tx.Exec(ctx, query, tenantID, itemID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update on-hand of item %s: %w", itemID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePurchasePriceInTx records the latest purchase price of an item.
func (r *PgxInventoryRepository) UpdatePurchasePriceInTx(ctx context.Context, tx pgx.Tx, tenantID, itemID string, price decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE inventory_items
		SET purchase_price = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND item_id = $2;
	`
	commandTag, err := tx.Exec(ctx, query, tenantID, itemID, price, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update purchase price of item %s: %w", itemID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
