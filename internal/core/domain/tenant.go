package domain

import "time"

// Tenant represents an isolated business environment containing accounts,
// orders, inventory and personnel.
type Tenant struct {
	TenantID            string  `json:"tenantID"` // Primary Key (UUID)
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"` // e.g. "USD"
	IsActive            bool    `json:"isActive"`
	AuditFields
}

// UserTenantRole defines the possible roles a user can have within a tenant.
type UserTenantRole string

const (
	RoleAdmin    UserTenantRole = "ADMIN"
	RoleMember   UserTenantRole = "MEMBER"
	RoleReadOnly UserTenantRole = "READONLY"
	RoleRemoved  UserTenantRole = "REMOVED"
)

// UserTenant represents the membership of a User in a Tenant.
type UserTenant struct {
	UserID   string         `json:"userID"` // FK -> users.user_id
	UserName string         `json:"userName"`
	TenantID string         `json:"tenantID"` // FK -> tenants.tenant_id
	Role     UserTenantRole `json:"role"`
	JoinedAt time.Time      `json:"joinedAt"`
}
