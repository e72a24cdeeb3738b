package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryWithTx
	TransactionRepo TransactionRepositoryWithTx
	OrderRepo       OrderRepositoryWithTx
	ContactRepo     ContactRepositoryFacade
	EmployeeRepo    EmployeeRepositoryFacade
	CheckRepo       CheckRepositoryWithTx
	InventoryRepo   InventoryRepositoryWithTx
	WarehouseRepo   WarehouseRepositoryFacade
	TenantRepo      TenantRepositoryFacade
	UserRepo        UserRepositoryFacade
	TxManager       TransactionManager
}
