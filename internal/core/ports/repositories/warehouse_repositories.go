package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// WarehouseReader defines read operations for warehouse pools and locations
type WarehouseReader interface {
	// FindPoolByID retrieves a specific warehouse pool by its unique identifier.
	FindPoolByID(ctx context.Context, tenantID, poolID string) (*domain.WarehousePool, error)

	// ListPools retrieves all warehouse pools for a given tenant.
	ListPools(ctx context.Context, tenantID string) ([]domain.WarehousePool, error)

	// FindLocationByID retrieves a specific warehouse location by its unique identifier.
	FindLocationByID(ctx context.Context, tenantID, locationID string) (*domain.WarehouseLocation, error)

	// FindDefaultLocation retrieves the default location of a tenant's default pool.
	FindDefaultLocation(ctx context.Context, tenantID string) (*domain.WarehouseLocation, error)

	// ListLocationsByPool retrieves all locations belonging to a warehouse pool.
	ListLocationsByPool(ctx context.Context, tenantID, poolID string) ([]domain.WarehouseLocation, error)
}

// WarehouseWriter defines write operations for warehouse pools and locations
type WarehouseWriter interface {
	// SavePool persists a new warehouse pool.
	SavePool(ctx context.Context, pool domain.WarehousePool) error

	// SaveLocation persists a new warehouse location.
	SaveLocation(ctx context.Context, location domain.WarehouseLocation) error

	// SetDefaultPool marks a pool as the tenant default, clearing any previous default.
	SetDefaultPool(ctx context.Context, tenantID, poolID string) error

	// SetDefaultLocation marks a location as its pool's default, clearing any previous default.
	SetDefaultLocation(ctx context.Context, tenantID, poolID, locationID string) error
}

// WarehouseRepositoryFacade combines all warehouse-related repository interfaces
type WarehouseRepositoryFacade interface {
	WarehouseReader
	WarehouseWriter
}
