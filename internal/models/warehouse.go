package models

// WarehousePool represents a row of the warehouse_pools table.
type WarehousePool struct {
	PoolID    string `db:"pool_id"`
	TenantID  string `db:"tenant_id"`
	Name      string `db:"name"`
	IsDefault bool   `db:"is_default"`
	AuditFields
}

// WarehouseLocation represents a row of the warehouse_locations table.
type WarehouseLocation struct {
	LocationID string `db:"location_id"`
	PoolID     string `db:"pool_id"`
	TenantID   string `db:"tenant_id"`
	Name       string `db:"name"`
	Code       string `db:"code"`
	IsDefault  bool   `db:"is_default"`
	AuditFields
}
