package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var (
	ErrStockNotTracked = errors.New("item does not track stock")
	ErrDuplicateSKU    = errors.New("an item with this SKU already exists")
)

// inventoryService implements item CRUD and the append-only stock movement
// ledger with its two denormalized aggregates.
type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepositoryWithTx
	warehouseSvc  portssvc.DefaultLocationResolverSvc
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(
	inventoryRepo portsrepo.InventoryRepositoryWithTx,
	warehouseSvc portssvc.DefaultLocationResolverSvc,
	authorizer portssvc.TenantAuthorizerSvc,
) portssvc.InventorySvcFacade {
	s := &inventoryService{
		inventoryRepo: inventoryRepo,
		warehouseSvc:  warehouseSvc,
	}
	s.TenantAuthorizer = authorizer
	return s
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// GetItemByID retrieves a specific inventory item by its ID.
func (s *inventoryService) GetItemByID(ctx context.Context, tenantID, itemID string, requestingUserID string) (*domain.InventoryItem, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	item, err := s.inventoryRepo.FindItemByID(ctx, tenantID, itemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find item by ID",
				slog.String("item_id", itemID))
		}
		return nil, err
	}
	return item, nil
}

// ListItems retrieves a paginated list of inventory items in a tenant.
func (s *inventoryService) ListItems(ctx context.Context, tenantID string, requestingUserID string, params dto.ListItemsParams) (*dto.ListItemsResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	items, err := s.inventoryRepo.ListItems(ctx, tenantID, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list items",
			slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve items: %w", err)
	}
	return &dto.ListItemsResponse{Items: dto.ToItemResponses(items)}, nil
}

// CreateItem persists a new inventory item. SKU is unique per tenant.
func (s *inventoryService) CreateItem(ctx context.Context, tenantID string, req dto.CreateItemRequest, creatorUserID string) (*domain.InventoryItem, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	if _, err := s.inventoryRepo.FindItemBySKU(ctx, tenantID, req.SKU); err == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrDuplicateSKU)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	item := domain.InventoryItem{
		ItemID:        uuid.NewString(),
		TenantID:      tenantID,
		SKU:           req.SKU,
		Name:          req.Name,
		Unit:          req.Unit,
		SalePrice:     req.SalePrice,
		PurchasePrice: req.PurchasePrice,
		TrackStock:    req.TrackStock,
		IsActive:      true,
		OnHand:        decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save item",
			slog.String("sku", req.SKU))
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.LogInfo(ctx, "Item created successfully",
		slog.String("item_id", item.ItemID),
		slog.String("sku", item.SKU))
	return &item, nil
}

// UpdateItem updates an existing inventory item's details. SKU, stock
// tracking and purchase price are not editable here.
func (s *inventoryService) UpdateItem(ctx context.Context, tenantID, itemID string, req dto.UpdateItemRequest, requestingUserID string) (*domain.InventoryItem, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	item, err := s.inventoryRepo.FindItemByID(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.SalePrice != nil {
		item.SalePrice = *req.SalePrice
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = requestingUserID

	if err := s.inventoryRepo.UpdateItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update item",
			slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

// RecordMovement appends a movement row and updates both denormalized
// aggregates in its own transaction.
func (s *inventoryService) RecordMovement(ctx context.Context, tenantID string, req dto.RecordMovementRequest, creatorUserID string) (*domain.StockMovement, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	tx, err := s.inventoryRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.inventoryRepo.Rollback(ctx, tx)

	movement, err := s.RecordMovementInTx(ctx, tx, tenantID, req, creatorUserID)
	if err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit movement: %w", err)
	}
	return movement, nil
}

// RecordMovementInTx appends the movement inside the caller's transaction.
// The item row is locked first so concurrent movements serialize; OUT
// movements exceeding the location's available quantity fail validation.
func (s *inventoryService) RecordMovementInTx(ctx context.Context, tx pgx.Tx, tenantID string, req dto.RecordMovementRequest, creatorUserID string) (*domain.StockMovement, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: movement quantity must be positive", apperrors.ErrValidation)
	}
	direction := domain.MovementDirection(req.Direction)
	if direction != domain.MovementIn && direction != domain.MovementOut {
		return nil, fmt.Errorf("%w: unknown movement direction %q", apperrors.ErrValidation, req.Direction)
	}

	item, err := s.inventoryRepo.FindItemByIDForUpdate(ctx, tx, tenantID, req.ItemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: item %s not found", apperrors.ErrValidation, req.ItemID)
		}
		return nil, err
	}
	if !item.TrackStock {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrStockNotTracked)
	}

	locationID, err := s.resolveLocation(ctx, tenantID, req.LocationID, creatorUserID)
	if err != nil {
		return nil, err
	}

	stock, err := s.inventoryRepo.GetLocationStockForUpdate(ctx, tx, tenantID, locationID, req.ItemID)
	if err != nil {
		return nil, err
	}

	delta := req.Quantity
	if direction == domain.MovementOut {
		if stock.QuantityOnHand.LessThan(req.Quantity) {
			return nil, fmt.Errorf("%w: have %s, want %s", apperrors.ErrInsufficientStock,
				stock.QuantityOnHand, req.Quantity)
		}
		delta = req.Quantity.Neg()
	}

	now := time.Now().UTC()
	movement := domain.StockMovement{
		MovementID: uuid.NewString(),
		TenantID:   tenantID,
		ItemID:     req.ItemID,
		LocationID: locationID,
		Direction:  direction,
		Quantity:   req.Quantity,
		DocumentID: req.DocumentID,
		Note:       req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.DocumentType != nil {
		docType := domain.DocumentType(*req.DocumentType)
		movement.DocumentType = &docType
	}

	if err := s.inventoryRepo.SaveMovementInTx(ctx, tx, movement); err != nil {
		s.LogError(ctx, err, "Failed to save stock movement",
			slog.String("item_id", req.ItemID))
		return nil, fmt.Errorf("failed to save movement: %w", err)
	}
	if err := s.inventoryRepo.UpsertLocationStockInTx(ctx, tx, tenantID, locationID, req.ItemID, delta, now); err != nil {
		return nil, fmt.Errorf("failed to update location stock: %w", err)
	}
	if err := s.inventoryRepo.UpdateItemOnHandInTx(ctx, tx, tenantID, req.ItemID, delta, creatorUserID, now); err != nil {
		return nil, fmt.Errorf("failed to update item on-hand: %w", err)
	}

	s.LogDebug(ctx, "Stock movement recorded",
		slog.String("movement_id", movement.MovementID),
		slog.String("item_id", req.ItemID),
		slog.String("direction", string(direction)),
		slog.String("quantity", req.Quantity.String()))
	return &movement, nil
}

// ListMovementsByItem retrieves the movement history of an item.
func (s *inventoryService) ListMovementsByItem(ctx context.Context, tenantID, itemID string, requestingUserID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	movements, nextToken, err := s.inventoryRepo.ListMovementsByItem(ctx, tenantID, itemID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stock movements",
			slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to retrieve movements: %w", err)
	}
	return &dto.ListMovementsResponse{
		Movements: dto.ToStockMovementResponses(movements),
		NextToken: nextToken,
	}, nil
}

// resolveLocation returns the explicit location or the tenant default.
func (s *inventoryService) resolveLocation(ctx context.Context, tenantID string, locationID *string, actorUserID string) (string, error) {
	if locationID != nil {
		return *locationID, nil
	}
	location, err := s.warehouseSvc.ResolveDefaultLocation(ctx, tenantID, actorUserID)
	if err != nil {
		return "", err
	}
	return location.LocationID, nil
}
