package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/dto"
)

// TradeSvcFacade executes a complete trade in one database transaction:
// order insert, party account provisioning, ledger postings, optional check
// registration and stock movements. A failure at any step rolls back all of it.
type TradeSvcFacade interface {
	// ProcessTrade runs the full trade orchestration.
	ProcessTrade(ctx context.Context, tenantID string, req dto.ProcessTradeRequest, requestingUserID string) (*dto.ProcessTradeResponse, error)
}
