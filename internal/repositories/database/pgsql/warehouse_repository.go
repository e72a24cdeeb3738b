package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const poolColumns = `pool_id, tenant_id, name, is_default, created_at, created_by, last_updated_at, last_updated_by`

const locationColumns = `location_id, pool_id, tenant_id, name, code, is_default, created_at, created_by, last_updated_at, last_updated_by`

type PgxWarehouseRepository struct {
	BaseRepository
}

func newPgxWarehouseRepository(pool *pgxpool.Pool) *PgxWarehouseRepository {
	return &PgxWarehouseRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.WarehouseRepositoryFacade = (*PgxWarehouseRepository)(nil)

func scanPool(row rowScanner) (*domain.WarehousePool, error) {
	var m models.WarehousePool
	err := row.Scan(
		&m.PoolID,
		&m.TenantID,
		&m.Name,
		&m.IsDefault,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainWarehousePool(m)
	return &d, nil
}

func scanLocation(row rowScanner) (*domain.WarehouseLocation, error) {
	var m models.WarehouseLocation
	err := row.Scan(
		&m.LocationID,
		&m.PoolID,
		&m.TenantID,
		&m.Name,
		&m.Code,
		&m.IsDefault,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainWarehouseLocation(m)
	return &d, nil
}

// FindPoolByID retrieves a warehouse pool by its ID within a tenant.
func (r *PgxWarehouseRepository) FindPoolByID(ctx context.Context, tenantID, poolID string) (*domain.WarehousePool, error) {
	query := `SELECT ` + poolColumns + ` FROM warehouse_pools WHERE tenant_id = $1 AND pool_id = $2;`

	pool, err := scanPool(r.Pool.QueryRow(ctx, query, tenantID, poolID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find warehouse pool %s: %w", poolID, err)
	}
	return pool, nil
}

// ListPools retrieves all warehouse pools of a tenant.
func (r *PgxWarehouseRepository) ListPools(ctx context.Context, tenantID string) ([]domain.WarehousePool, error) {
	query := `SELECT ` + poolColumns + ` FROM warehouse_pools WHERE tenant_id = $1 ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query warehouse pools for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	pools := []domain.WarehousePool{}
	for rows.Next() {
		pool, err := scanPool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan warehouse pool row: %w", err)
		}
		pools = append(pools, *pool)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating warehouse pool rows: %w", err)
	}
	return pools, nil
}

// FindLocationByID retrieves a warehouse location by its ID within a tenant.
func (r *PgxWarehouseRepository) FindLocationByID(ctx context.Context, tenantID, locationID string) (*domain.WarehouseLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM warehouse_locations WHERE tenant_id = $1 AND location_id = $2;`

	location, err := scanLocation(r.Pool.QueryRow(ctx, query, tenantID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find warehouse location %s: %w", locationID, err)
	}
	return location, nil
}

// FindDefaultLocation retrieves the default location of the tenant's default pool.
func (r *PgxWarehouseRepository) FindDefaultLocation(ctx context.Context, tenantID string) (*domain.WarehouseLocation, error) {
	query := `
		SELECT ` + prefixColumns("l", locationColumns) + `
		FROM warehouse_locations l
		JOIN warehouse_pools p ON p.pool_id = l.pool_id
		WHERE l.tenant_id = $1 AND p.is_default AND l.is_default
		LIMIT 1;
	`
	location, err := scanLocation(r.Pool.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find default location for tenant %s: %w", tenantID, err)
	}
	return location, nil
}

// ListLocationsByPool retrieves all locations belonging to a warehouse pool.
func (r *PgxWarehouseRepository) ListLocationsByPool(ctx context.Context, tenantID, poolID string) ([]domain.WarehouseLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM warehouse_locations WHERE tenant_id = $1 AND pool_id = $2 ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, tenantID, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations for pool %s: %w", poolID, err)
	}
	defer rows.Close()

	locations := []domain.WarehouseLocation{}
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan warehouse location row: %w", err)
		}
		locations = append(locations, *location)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating warehouse location rows: %w", err)
	}
	return locations, nil
}

// SavePool persists a new warehouse pool.
func (r *PgxWarehouseRepository) SavePool(ctx context.Context, pool domain.WarehousePool) error {
	query := `
		INSERT INTO warehouse_pools (` + poolColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	m := mapping.ToModelWarehousePool(pool)
	_, err := r.Pool.Exec(ctx, query,
		m.PoolID,
		m.TenantID,
		m.Name,
		m.IsDefault,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: warehouse pool %s already exists", apperrors.ErrDuplicate, m.PoolID)
		}
		return fmt.Errorf("failed to save warehouse pool %s: %w", m.PoolID, err)
	}
	return nil
}

// SaveLocation persists a new warehouse location.
func (r *PgxWarehouseRepository) SaveLocation(ctx context.Context, location domain.WarehouseLocation) error {
	query := `
		INSERT INTO warehouse_locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	m := mapping.ToModelWarehouseLocation(location)
	_, err := r.Pool.Exec(ctx, query,
		m.LocationID,
		m.PoolID,
		m.TenantID,
		m.Name,
		m.Code,
		m.IsDefault,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: warehouse location %s already exists", apperrors.ErrDuplicate, m.LocationID)
		}
		return fmt.Errorf("failed to save warehouse location %s: %w", m.LocationID, err)
	}
	return nil
}

// SetDefaultPool marks a pool as the tenant default, clearing any previous default.
func (r *PgxWarehouseRepository) SetDefaultPool(ctx context.Context, tenantID, poolID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `UPDATE warehouse_pools SET is_default = FALSE WHERE tenant_id = $1 AND is_default;`, tenantID); err != nil {
		return fmt.Errorf("failed to clear default pool for tenant %s: %w", tenantID, err)
	}

	commandTag, err := tx.Exec(ctx, `UPDATE warehouse_pools SET is_default = TRUE WHERE tenant_id = $1 AND pool_id = $2;`, tenantID, poolID)
	if err != nil {
		return fmt.Errorf("failed to set default pool %s: %w", poolID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}

// SetDefaultLocation marks a location as its pool's default, clearing any
// previous default within that pool.
func (r *PgxWarehouseRepository) SetDefaultLocation(ctx context.Context, tenantID, poolID, locationID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `UPDATE warehouse_locations SET is_default = FALSE WHERE tenant_id = $1 AND pool_id = $2 AND is_default;`, tenantID, poolID); err != nil {
		return fmt.Errorf("failed to clear default location for pool %s: %w", poolID, err)
	}

	commandTag, err := tx.Exec(ctx, `UPDATE warehouse_locations SET is_default = TRUE WHERE tenant_id = $1 AND pool_id = $2 AND location_id = $3;`, tenantID, poolID, locationID)
	if err != nil {
		return fmt.Errorf("failed to set default location %s: %w", locationID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}
