package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Ledger    LedgerSvcFacade
	Order     OrderSvcFacade
	Trade     TradeSvcFacade
	Contact   ContactSvcFacade
	Employee  EmployeeSvcFacade
	Check     CheckSvcFacade
	Inventory InventorySvcFacade
	Warehouse WarehouseSvcFacade
	Tenant    TenantSvcFacade
	User      UserSvcFacade
	Token     TokenSvcFacade

	// GoogleOAuthHandler serves the browser OAuth flow and ID token sign-in.
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
