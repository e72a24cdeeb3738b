package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CheckReader defines read operations for check data
type CheckReader interface {
	// FindCheckByID retrieves a specific check by its unique identifier.
	FindCheckByID(ctx context.Context, tenantID, checkID string) (*domain.Check, error)

	// ListChecks retrieves a paginated list of checks for a given tenant,
	// optionally filtered by status.
	ListChecks(ctx context.Context, tenantID string, status *domain.CheckStatus, limit int, offset int) ([]domain.Check, error)
}

// CheckWriter defines write operations for check data
type CheckWriter interface {
	// SaveCheckInTx persists a new check within an existing database transaction.
	SaveCheckInTx(ctx context.Context, tx pgx.Tx, check domain.Check) error

	// UpdateCheckStatusInTx transitions a check's status within an existing database transaction.
	UpdateCheckStatusInTx(ctx context.Context, tx pgx.Tx, tenantID, checkID string, status domain.CheckStatus, userID string, now time.Time) error

	// FindCheckByIDForUpdate retrieves a check and locks its row for the duration of the transaction.
	FindCheckByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, checkID string) (*domain.Check, error)
}

// CheckRepositoryFacade combines all check-related repository interfaces
type CheckRepositoryFacade interface {
	CheckReader
	CheckWriter
}

// CheckRepositoryWithTx extends CheckRepositoryFacade with transaction capabilities
type CheckRepositoryWithTx interface {
	CheckRepositoryFacade
	TransactionManager
}
