package services

import (
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/platform/config"
)

// NewServiceContainer wires all application services over the repository
// provider. The tenant service doubles as the authorizer for every
// tenant-scoped service.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	tenantSvc := NewTenantService(repos.TenantRepo)

	accountSvc := NewAccountService(
		repos.AccountRepo,
		repos.ContactRepo,
		repos.EmployeeRepo,
		WithTenantAuthorizer(tenantSvc),
		WithTenantReader(tenantSvc),
	)
	ledgerSvc := NewLedgerService(repos.TransactionRepo, repos.AccountRepo, repos.OrderRepo, tenantSvc)
	warehouseSvc := NewWarehouseService(repos.WarehouseRepo, tenantSvc)
	inventorySvc := NewInventoryService(repos.InventoryRepo, warehouseSvc, tenantSvc)
	orderSvc := NewOrderService(repos.OrderRepo, accountSvc, ledgerSvc, tenantSvc)
	tradeSvc := NewTradeService(
		repos.OrderRepo,
		repos.InventoryRepo,
		repos.CheckRepo,
		accountSvc,
		ledgerSvc,
		inventorySvc,
		warehouseSvc,
		tenantSvc,
	)
	checkSvc := NewCheckService(repos.CheckRepo, accountSvc, ledgerSvc, tenantSvc)
	contactSvc := NewContactService(repos.ContactRepo, tenantSvc)
	employeeSvc := NewEmployeeService(repos.EmployeeRepo, tenantSvc)
	userSvc := NewUserService(repos.UserRepo)
	tokenSvc := NewTokenService(cfg, repos.UserRepo)
	googleOAuthSvc := NewGoogleOAuthHandlerService(cfg)

	return &portssvc.ServiceContainer{
		Account:            accountSvc,
		Ledger:             ledgerSvc,
		Order:              orderSvc,
		Trade:              tradeSvc,
		Contact:            contactSvc,
		Employee:           employeeSvc,
		Check:              checkSvc,
		Inventory:          inventorySvc,
		Warehouse:          warehouseSvc,
		Tenant:             tenantSvc,
		User:               userSvc,
		Token:              tokenSvc,
		GoogleOAuthHandler: googleOAuthSvc,
	}
}
