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
)

const (
	defaultPoolName     = "Main Warehouse"
	defaultLocationName = "Main Location"
	defaultLocationCode = "MAIN"
)

// warehouseService implements pool and location management plus the lazy
// default-location provisioning used by the stock movement ledger.
type warehouseService struct {
	BaseService
	warehouseRepo portsrepo.WarehouseRepositoryFacade
}

// NewWarehouseService creates a new WarehouseService.
func NewWarehouseService(
	warehouseRepo portsrepo.WarehouseRepositoryFacade,
	authorizer portssvc.TenantAuthorizerSvc,
) portssvc.WarehouseSvcFacade {
	s := &warehouseService{warehouseRepo: warehouseRepo}
	s.TenantAuthorizer = authorizer
	return s
}

var _ portssvc.WarehouseSvcFacade = (*warehouseService)(nil)

// ListPools retrieves all warehouse pools of a tenant.
func (s *warehouseService) ListPools(ctx context.Context, tenantID string, requestingUserID string) ([]domain.WarehousePool, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	pools, err := s.warehouseRepo.ListPools(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list warehouse pools",
			slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve pools: %w", err)
	}
	return pools, nil
}

// ListLocations retrieves all locations of a warehouse pool.
func (s *warehouseService) ListLocations(ctx context.Context, tenantID, poolID string, requestingUserID string) ([]domain.WarehouseLocation, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if _, err := s.warehouseRepo.FindPoolByID(ctx, tenantID, poolID); err != nil {
		return nil, err
	}

	locations, err := s.warehouseRepo.ListLocationsByPool(ctx, tenantID, poolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list warehouse locations",
			slog.String("pool_id", poolID))
		return nil, fmt.Errorf("failed to retrieve locations: %w", err)
	}
	return locations, nil
}

// CreatePool persists a new warehouse pool.
func (s *warehouseService) CreatePool(ctx context.Context, tenantID string, req dto.CreatePoolRequest, creatorUserID string) (*domain.WarehousePool, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	pool := domain.WarehousePool{
		PoolID:    uuid.NewString(),
		TenantID:  tenantID,
		Name:      req.Name,
		IsDefault: req.IsDefault,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.warehouseRepo.SavePool(ctx, pool); err != nil {
		s.LogError(ctx, err, "Failed to save warehouse pool",
			slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save pool: %w", err)
	}
	if req.IsDefault {
		if err := s.warehouseRepo.SetDefaultPool(ctx, tenantID, pool.PoolID); err != nil {
			return nil, fmt.Errorf("failed to set default pool: %w", err)
		}
	}

	s.LogInfo(ctx, "Warehouse pool created",
		slog.String("pool_id", pool.PoolID),
		slog.String("name", pool.Name))
	return &pool, nil
}

// CreateLocation persists a new warehouse location under a pool.
func (s *warehouseService) CreateLocation(ctx context.Context, tenantID, poolID string, req dto.CreateLocationRequest, creatorUserID string) (*domain.WarehouseLocation, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	if _, err := s.warehouseRepo.FindPoolByID(ctx, tenantID, poolID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: pool %s not found", apperrors.ErrValidation, poolID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	location := domain.WarehouseLocation{
		LocationID: uuid.NewString(),
		PoolID:     poolID,
		TenantID:   tenantID,
		Name:       req.Name,
		Code:       req.Code,
		IsDefault:  req.IsDefault,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.warehouseRepo.SaveLocation(ctx, location); err != nil {
		s.LogError(ctx, err, "Failed to save warehouse location",
			slog.String("pool_id", poolID),
			slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save location: %w", err)
	}
	if req.IsDefault {
		if err := s.warehouseRepo.SetDefaultLocation(ctx, tenantID, poolID, location.LocationID); err != nil {
			return nil, fmt.Errorf("failed to set default location: %w", err)
		}
	}

	s.LogInfo(ctx, "Warehouse location created",
		slog.String("location_id", location.LocationID),
		slog.String("pool_id", poolID))
	return &location, nil
}

// ResolveDefaultLocation returns the tenant's default location, creating a
// default pool and location the first time stock is touched.
func (s *warehouseService) ResolveDefaultLocation(ctx context.Context, tenantID string, actorUserID string) (*domain.WarehouseLocation, error) {
	location, err := s.warehouseRepo.FindDefaultLocation(ctx, tenantID)
	if err == nil {
		return location, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorUserID,
	}

	pool := domain.WarehousePool{
		PoolID:      uuid.NewString(),
		TenantID:    tenantID,
		Name:        defaultPoolName,
		IsDefault:   true,
		AuditFields: audit,
	}
	if err := s.warehouseRepo.SavePool(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to create default pool: %w", err)
	}

	defaultLocation := domain.WarehouseLocation{
		LocationID:  uuid.NewString(),
		PoolID:      pool.PoolID,
		TenantID:    tenantID,
		Name:        defaultLocationName,
		Code:        defaultLocationCode,
		IsDefault:   true,
		AuditFields: audit,
	}
	if err := s.warehouseRepo.SaveLocation(ctx, defaultLocation); err != nil {
		return nil, fmt.Errorf("failed to create default location: %w", err)
	}

	s.LogInfo(ctx, "Default warehouse provisioned",
		slog.String("tenant_id", tenantID),
		slog.String("pool_id", pool.PoolID),
		slog.String("location_id", defaultLocation.LocationID))
	return &defaultLocation, nil
}
