package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// CreateTenantRequest defines the data needed to create a new tenant.
type CreateTenantRequest struct {
	Name                string `json:"name" binding:"required"`
	Description         string `json:"description"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"omitempty,len=3"`
}

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID            string    `json:"tenantID"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode,omitempty"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ToTenantResponse converts a domain.Tenant to TenantResponse DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:            t.TenantID,
		Name:                t.Name,
		Description:         t.Description,
		DefaultCurrencyCode: t.DefaultCurrencyCode,
		IsActive:            t.IsActive,
		CreatedAt:           t.CreatedAt,
	}
}

// ToTenantResponses converts a slice of domain.Tenant to []TenantResponse.
func ToTenantResponses(tenants []domain.Tenant) []TenantResponse {
	res := make([]TenantResponse, len(tenants))
	for i, t := range tenants {
		res[i] = ToTenantResponse(&t)
	}
	return res
}

// AddUserToTenantRequest defines the data needed to add a user to a tenant.
type AddUserToTenantRequest struct {
	UserID string                `json:"userID" binding:"required"`
	Role   domain.UserTenantRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UpdateUserTenantRoleRequest defines the data needed to change a membership role.
type UpdateUserTenantRoleRequest struct {
	Role domain.UserTenantRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UserTenantResponse defines the data returned for a tenant membership.
type UserTenantResponse struct {
	UserID   string                `json:"userID"`
	UserName string                `json:"userName"`
	Role     domain.UserTenantRole `json:"role"`
	JoinedAt time.Time             `json:"joinedAt"`
}

// ToUserTenantResponses converts a slice of domain.UserTenant to []UserTenantResponse.
func ToUserTenantResponses(memberships []domain.UserTenant) []UserTenantResponse {
	res := make([]UserTenantResponse, len(memberships))
	for i, m := range memberships {
		res[i] = UserTenantResponse{
			UserID:   m.UserID,
			UserName: m.UserName,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}
	return res
}
