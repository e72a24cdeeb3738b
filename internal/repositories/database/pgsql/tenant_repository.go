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

const tenantColumns = `tenant_id, name, description, default_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxTenantRepository struct {
	BaseRepository
}

func newPgxTenantRepository(pool *pgxpool.Pool) *PgxTenantRepository {
	return &PgxTenantRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

func scanTenant(row rowScanner) (*domain.Tenant, error) {
	var m models.Tenant
	err := row.Scan(
		&m.TenantID,
		&m.Name,
		&m.Description,
		&m.DefaultCurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainTenant(m)
	return &d, nil
}

// FindTenantByID retrieves a tenant by its ID.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE tenant_id = $1;`

	tenant, err := scanTenant(r.Pool.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant %s: %w", tenantID, err)
	}
	return tenant, nil
}

// ListTenantsByUserID retrieves all active tenants a user belongs to.
func (r *PgxTenantRepository) ListTenantsByUserID(ctx context.Context, userID string) ([]domain.Tenant, error) {
	query := `
		SELECT ` + prefixColumns("t", tenantColumns) + `
		FROM tenants t
		JOIN user_tenants ut ON ut.tenant_id = t.tenant_id
		WHERE ut.user_id = $1 AND ut.role <> 'REMOVED' AND t.is_active
		ORDER BY t.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants for user %s: %w", userID, err)
	}
	defer rows.Close()

	tenants := []domain.Tenant{}
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant row: %w", err)
		}
		tenants = append(tenants, *tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}
	return tenants, nil
}

// SaveTenant persists a new tenant.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	m := mapping.ToModelTenant(tenant)
	_, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.Name,
		m.Description,
		m.DefaultCurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: tenant %s already exists", apperrors.ErrDuplicate, m.TenantID)
		}
		return fmt.Errorf("failed to save tenant %s: %w", m.TenantID, err)
	}
	return nil
}

// UpdateTenant updates a tenant's details.
func (r *PgxTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, description = $3, default_currency_code = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $1;
	`
	m := mapping.ToModelTenant(tenant)
	commandTag, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.Name,
		m.Description,
		m.DefaultCurrencyCode,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update tenant %s: %w", m.TenantID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddUserToTenant adds a user to a tenant with a specific role.
func (r *PgxTenantRepository) AddUserToTenant(ctx context.Context, membership domain.UserTenant) error {
	query := `
		INSERT INTO user_tenants (user_id, tenant_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	m := mapping.ToModelUserTenant(membership)
	_, err := r.Pool.Exec(ctx, query, m.UserID, m.TenantID, m.Role, m.JoinedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: user %s is already a member of tenant %s", apperrors.ErrDuplicate, m.UserID, m.TenantID)
		}
		return fmt.Errorf("failed to add user %s to tenant %s: %w", m.UserID, m.TenantID, err)
	}
	return nil
}

// FindUserTenantRole retrieves the role of a user in a tenant.
func (r *PgxTenantRepository) FindUserTenantRole(ctx context.Context, userID, tenantID string) (*domain.UserTenant, error) {
	query := `SELECT user_id, tenant_id, role, joined_at FROM user_tenants WHERE user_id = $1 AND tenant_id = $2;`

	var m models.UserTenant
	err := r.Pool.QueryRow(ctx, query, userID, tenantID).Scan(&m.UserID, &m.TenantID, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership of user %s in tenant %s: %w", userID, tenantID, err)
	}
	membership := mapping.ToDomainUserTenant(m)
	return &membership, nil
}

// ListUsersInTenant retrieves the memberships of a tenant, including user names.
func (r *PgxTenantRepository) ListUsersInTenant(ctx context.Context, tenantID string) ([]domain.UserTenant, error) {
	query := `
		SELECT ut.user_id, u.name, ut.tenant_id, ut.role, ut.joined_at
		FROM user_tenants ut
		JOIN users u ON u.user_id = ut.user_id
		WHERE ut.tenant_id = $1 AND ut.role <> 'REMOVED' AND u.deleted_at IS NULL
		ORDER BY ut.joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members of tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	memberships := []domain.UserTenant{}
	for rows.Next() {
		var m models.UserTenant
		var userName string
		if err := rows.Scan(&m.UserID, &userName, &m.TenantID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		membership := mapping.ToDomainUserTenant(m)
		membership.UserName = userName
		memberships = append(memberships, membership)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}
	return memberships, nil
}

// UpdateUserTenantRole changes the role of an existing membership.
func (r *PgxTenantRepository) UpdateUserTenantRole(ctx context.Context, userID, tenantID string, role domain.UserTenantRole) error {
	query := `UPDATE user_tenants SET role = $3 WHERE user_id = $1 AND tenant_id = $2;`

	commandTag, err := r.Pool.Exec(ctx, query, userID, tenantID, string(role))
	if err != nil {
		return fmt.Errorf("failed to update role of user %s in tenant %s: %w", userID, tenantID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
