package domain

// WarehousePool groups stock locations, typically one per physical site.
// Every tenant gets a default pool lazily the first time stock is touched.
type WarehousePool struct {
	PoolID    string `json:"poolID"`   // Primary Key (UUID)
	TenantID  string `json:"tenantID"` // FK -> tenants.tenant_id
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
	AuditFields
}

// WarehouseLocation is a storage location within a pool (aisle, shelf, dock).
type WarehouseLocation struct {
	LocationID string `json:"locationID"` // Primary Key (UUID)
	PoolID     string `json:"poolID"`     // FK -> warehouse_pools.pool_id
	TenantID   string `json:"tenantID"`   // Denormalized for tenant scoping
	Name       string `json:"name"`
	Code       string `json:"code"` // Short human code, unique per pool
	IsDefault  bool   `json:"isDefault"`
	AuditFields
}
