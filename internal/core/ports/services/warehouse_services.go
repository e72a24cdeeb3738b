package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// WarehouseReaderSvc defines read operations for warehouse data
type WarehouseReaderSvc interface {
	// ListPools retrieves all warehouse pools of a tenant.
	ListPools(ctx context.Context, tenantID string, requestingUserID string) ([]domain.WarehousePool, error)

	// ListLocations retrieves all locations of a warehouse pool.
	ListLocations(ctx context.Context, tenantID, poolID string, requestingUserID string) ([]domain.WarehouseLocation, error)
}

// WarehouseWriterSvc defines write operations for warehouse data
type WarehouseWriterSvc interface {
	// CreatePool persists a new warehouse pool.
	CreatePool(ctx context.Context, tenantID string, req dto.CreatePoolRequest, creatorUserID string) (*domain.WarehousePool, error)

	// CreateLocation persists a new warehouse location under a pool.
	CreateLocation(ctx context.Context, tenantID, poolID string, req dto.CreateLocationRequest, creatorUserID string) (*domain.WarehouseLocation, error)
}

// DefaultLocationResolverSvc resolves the fallback stock location of a tenant.
type DefaultLocationResolverSvc interface {
	// ResolveDefaultLocation returns the tenant's default location, creating a
	// default pool and location when the tenant has none yet.
	ResolveDefaultLocation(ctx context.Context, tenantID string, actorUserID string) (*domain.WarehouseLocation, error)
}

// WarehouseSvcFacade combines all warehouse-related service interfaces
type WarehouseSvcFacade interface {
	WarehouseReaderSvc
	WarehouseWriterSvc
	DefaultLocationResolverSvc
}
