package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// CheckReaderSvc defines read operations for check data
type CheckReaderSvc interface {
	// GetCheckByID retrieves a specific check by its ID.
	GetCheckByID(ctx context.Context, tenantID, checkID string, requestingUserID string) (*domain.Check, error)

	// ListChecks retrieves a paginated list of checks in a tenant.
	ListChecks(ctx context.Context, tenantID string, requestingUserID string, params dto.ListChecksParams) (*dto.ListChecksResponse, error)
}

// CheckWriterSvc defines write operations for check data
type CheckWriterSvc interface {
	// RegisterCheck takes a check into the portfolio, posting the portfolio
	// ledger entry in the same transaction.
	RegisterCheck(ctx context.Context, tenantID string, req dto.RegisterCheckRequest, creatorUserID string) (*domain.Check, error)

	// SettleCheck transitions a portfolio check to PAID or COLLECTED, posting
	// the corresponding ledger entries. Settled checks are final.
	SettleCheck(ctx context.Context, tenantID, checkID string, req dto.SettleCheckRequest, requestingUserID string) (*domain.Check, error)
}

// CheckSvcFacade combines all check-related service interfaces
type CheckSvcFacade interface {
	CheckReaderSvc
	CheckWriterSvc
}
