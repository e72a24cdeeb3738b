package models

import "time"

// Tenant represents a row of the tenants table.
type Tenant struct {
	TenantID            string  `db:"tenant_id"`
	Name                string  `db:"name"`
	Description         string  `db:"description"`
	DefaultCurrencyCode *string `db:"default_currency_code"`
	IsActive            bool    `db:"is_active"`
	AuditFields
}

// UserTenant represents a row of the user_tenants membership table.
type UserTenant struct {
	UserID   string    `db:"user_id"`
	TenantID string    `db:"tenant_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}
