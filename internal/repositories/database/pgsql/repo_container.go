package pgsql

import (
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool)
	contactRepo := newPgxContactRepository(dbPool)
	employeeRepo := newPgxEmployeeRepository(dbPool)
	checkRepo := newPgxCheckRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	warehouseRepo := newPgxWarehouseRepository(dbPool)
	tenantRepo := newPgxTenantRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		OrderRepo:       orderRepo,
		ContactRepo:     contactRepo,
		EmployeeRepo:    employeeRepo,
		CheckRepo:       checkRepo,
		InventoryRepo:   inventoryRepo,
		WarehouseRepo:   warehouseRepo,
		TenantRepo:      tenantRepo,
		UserRepo:        userRepo,
		TxManager:       &BaseRepository{Pool: dbPool},
	}
}
