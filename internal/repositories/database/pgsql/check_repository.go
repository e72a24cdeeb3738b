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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const checkColumns = `check_id, tenant_id, portfolio_account_id, contact_id, order_id, number, bank_name, amount, due_date, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxCheckRepository struct {
	BaseRepository
}

// newPgxCheckRepository creates a new repository for checks.
func newPgxCheckRepository(pool *pgxpool.Pool) *PgxCheckRepository {
	return &PgxCheckRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CheckRepositoryWithTx = (*PgxCheckRepository)(nil)

func scanCheck(row rowScanner) (*domain.Check, error) {
	var m models.Check
	err := row.Scan(
		&m.CheckID,
		&m.TenantID,
		&m.PortfolioAccountID,
		&m.ContactID,
		&m.OrderID,
		&m.Number,
		&m.BankName,
		&m.Amount,
		&m.DueDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainCheck(m)
	return &d, nil
}

// FindCheckByID retrieves a check by its ID within a tenant.
func (r *PgxCheckRepository) FindCheckByID(ctx context.Context, tenantID, checkID string) (*domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE tenant_id = $1 AND check_id = $2;`

	check, err := scanCheck(r.Pool.QueryRow(ctx, query, tenantID, checkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find check %s: %w", checkID, err)
	}
	return check, nil
}

// ListChecks retrieves checks of a tenant ordered by due date, optionally
// filtered by status.
func (r *PgxCheckRepository) ListChecks(ctx context.Context, tenantID string, status *domain.CheckStatus, limit int, offset int) ([]domain.Check, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + checkColumns + `
		FROM checks
		WHERE tenant_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY due_date, created_at
		LIMIT $3 OFFSET $4;
	`
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, tenantID, statusArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	checks := []domain.Check{}
	for rows.Next() {
		check, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check row: %w", err)
		}
		checks = append(checks, *check)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check rows: %w", err)
	}
	return checks, nil
}

// SaveCheckInTx persists a new check within a transaction.
func (r *PgxCheckRepository) SaveCheckInTx(ctx context.Context, tx pgx.Tx, check domain.Check) error {
	query := `
		INSERT INTO checks (` + checkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	m := mapping.ToModelCheck(check)
	_, err := tx.Exec(ctx, query,
		m.CheckID,
		m.TenantID,
		m.PortfolioAccountID,
		m.ContactID,
		m.OrderID,
		m.Number,
		m.BankName,
		m.Amount,
		m.DueDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: check %s already exists", apperrors.ErrDuplicate, m.CheckID)
		}
		return fmt.Errorf("failed to save check %s: %w", m.CheckID, err)
	}
	return nil
}

// UpdateCheckStatusInTx transitions a check's status within a transaction.
func (r *PgxCheckRepository) UpdateCheckStatusInTx(ctx context.Context, tx pgx.Tx, tenantID, checkID string, status domain.CheckStatus, userID string, now time.Time) error {
	query := `
		UPDATE checks
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND check_id = $2;
	`
	commandTag, err := tx.Exec(ctx, query, tenantID, checkID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of check %s: %w", checkID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCheckByIDForUpdate retrieves a check and locks its row for the duration
// of the transaction.
func (r *PgxCheckRepository) FindCheckByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, checkID string) (*domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE tenant_id = $1 AND check_id = $2 FOR UPDATE;`

	check, err := scanCheck(tx.QueryRow(ctx, query, tenantID, checkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock check %s: %w", checkID, err)
	}
	return check, nil
}
