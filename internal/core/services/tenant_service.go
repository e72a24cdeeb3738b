package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// tenantService implements the TenantSvcFacade interface
type tenantService struct {
	BaseService
	tenantRepo portsrepo.TenantRepositoryFacade
}

// NewTenantService creates a new tenant service with the provided dependencies
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade) portssvc.TenantSvcFacade {
	return &tenantService{
		tenantRepo: tenantRepo,
	}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// FindTenantByID retrieves a tenant by its ID
func (s *tenantService) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find tenant by ID",
				slog.String("tenant_id", tenantID))
		}
		return nil, err
	}

	s.LogDebug(ctx, "Tenant retrieved successfully",
		slog.String("tenant_id", tenant.TenantID))
	return tenant, nil
}

// ListUserTenants retrieves all tenants a user belongs to
func (s *tenantService) ListUserTenants(ctx context.Context, userID string, includeDisabled bool) ([]domain.Tenant, error) {
	tenants, err := s.tenantRepo.ListTenantsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tenants for user",
			slog.String("user_id", userID))
		return nil, err
	}

	if !includeDisabled {
		active := tenants[:0]
		for _, t := range tenants {
			if t.IsActive {
				active = append(active, t)
			}
		}
		tenants = active
	}

	if tenants == nil {
		return []domain.Tenant{}, nil
	}

	s.LogDebug(ctx, "Tenants listed successfully",
		slog.Int("count", len(tenants)),
		slog.String("user_id", userID))
	return tenants, nil
}

// ListTenantUsers retrieves all users and their roles for a specific tenant
func (s *tenantService) ListTenantUsers(ctx context.Context, tenantID string, requestingUserID string) ([]domain.UserTenant, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	memberships, err := s.tenantRepo.ListUsersInTenant(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tenant users",
			slog.String("tenant_id", tenantID))
		return nil, err
	}
	return memberships, nil
}

// CreateTenant creates a new tenant and makes the creator its admin
func (s *tenantService) CreateTenant(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Tenant, error) {
	now := time.Now()
	tenantID := uuid.NewString()

	tenant := domain.Tenant{
		TenantID:    tenantID,
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if defaultCurrencyCode != "" {
		tenant.DefaultCurrencyCode = &defaultCurrencyCode
	}

	err := s.tenantRepo.SaveTenant(ctx, tenant)
	if err != nil {
		s.LogError(ctx, err, "Failed to save tenant",
			slog.String("tenant_id", tenant.TenantID))
		return nil, err
	}

	// Add creator as an admin to the new tenant
	membershipErr := s.AddUserToTenant(ctx, creatorUserID, creatorUserID, tenantID, domain.RoleAdmin)
	if membershipErr != nil {
		s.LogError(ctx, membershipErr, "Failed to add creator as admin to new tenant",
			slog.String("tenant_id", tenant.TenantID),
			slog.String("user_id", creatorUserID))
	}

	s.LogInfo(ctx, "Tenant created successfully",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("creator_id", creatorUserID))
	return &tenant, nil
}

// DeactivateTenant marks a tenant as inactive
func (s *tenantService) DeactivateTenant(ctx context.Context, tenantID string, requestingUserID string) error {
	return s.setTenantActive(ctx, tenantID, requestingUserID, false)
}

// ActivateTenant marks a tenant as active
func (s *tenantService) ActivateTenant(ctx context.Context, tenantID string, requestingUserID string) error {
	return s.setTenantActive(ctx, tenantID, requestingUserID, true)
}

func (s *tenantService) setTenantActive(ctx context.Context, tenantID string, requestingUserID string, active bool) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleAdmin); err != nil {
		return err
	}

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant.IsActive == active {
		return nil
	}

	now := time.Now()
	tenant.IsActive = active
	tenant.LastUpdatedAt = now
	tenant.LastUpdatedBy = requestingUserID

	if err := s.tenantRepo.UpdateTenant(ctx, *tenant); err != nil {
		s.LogError(ctx, err, "Failed to update tenant active state",
			slog.String("tenant_id", tenantID))
		return err
	}

	s.LogInfo(ctx, "Tenant active state changed",
		slog.String("tenant_id", tenantID),
		slog.Bool("is_active", active))
	return nil
}

// AddUserToTenant adds a user to a tenant with a specific role
func (s *tenantService) AddUserToTenant(ctx context.Context, addingUserID, targetUserID, tenantID string, role domain.UserTenantRole) error {
	// Self-assignment is permitted (e.g., creator adding self as admin)
	if addingUserID != targetUserID {
		err := s.AuthorizeUserAction(ctx, addingUserID, tenantID, domain.RoleAdmin)
		if err != nil {
			s.LogError(ctx, err, "User not authorized to add members to tenant",
				slog.String("adding_user_id", addingUserID),
				slog.String("tenant_id", tenantID))
			return err
		}
	}

	membership := domain.UserTenant{
		UserID:   targetUserID,
		TenantID: tenantID,
		Role:     role,
		JoinedAt: time.Now(),
	}

	err := s.tenantRepo.AddUserToTenant(ctx, membership)
	if err != nil {
		s.LogError(ctx, err, "Failed to add user to tenant",
			slog.String("target_user_id", targetUserID),
			slog.String("tenant_id", tenantID))
		return err
	}

	s.LogInfo(ctx, "User added to tenant successfully",
		slog.String("target_user_id", targetUserID),
		slog.String("tenant_id", tenantID),
		slog.String("role", string(role)))
	return nil
}

// RemoveUserFromTenant removes a user from a tenant
func (s *tenantService) RemoveUserFromTenant(ctx context.Context, requestingUserID, targetUserID, tenantID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleAdmin); err != nil {
		return err
	}
	if requestingUserID == targetUserID {
		return fmt.Errorf("%w: admins cannot remove themselves from a tenant", apperrors.ErrValidation)
	}

	err := s.tenantRepo.UpdateUserTenantRole(ctx, targetUserID, tenantID, domain.RoleRemoved)
	if err != nil {
		s.LogError(ctx, err, "Failed to remove user from tenant",
			slog.String("target_user_id", targetUserID),
			slog.String("tenant_id", tenantID))
		return err
	}

	s.LogInfo(ctx, "User removed from tenant",
		slog.String("target_user_id", targetUserID),
		slog.String("tenant_id", tenantID))
	return nil
}

// UpdateUserTenantRole updates a user's role in a tenant
func (s *tenantService) UpdateUserTenantRole(ctx context.Context, requestingUserID, targetUserID, tenantID string, newRole domain.UserTenantRole) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleAdmin); err != nil {
		return err
	}

	err := s.tenantRepo.UpdateUserTenantRole(ctx, targetUserID, tenantID, newRole)
	if err != nil {
		s.LogError(ctx, err, "Failed to update user tenant role",
			slog.String("target_user_id", targetUserID),
			slog.String("tenant_id", tenantID))
		return err
	}

	s.LogInfo(ctx, "User tenant role updated",
		slog.String("target_user_id", targetUserID),
		slog.String("tenant_id", tenantID),
		slog.String("role", string(newRole)))
	return nil
}

// AuthorizeUserAction checks if a user has required permissions for a tenant
func (s *tenantService) AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.UserTenantRole) error {
	membership, err := s.tenantRepo.FindUserTenantRole(ctx, userID, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of tenant",
				slog.String("user_id", userID),
				slog.String("tenant_id", tenantID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user tenant role",
			slog.String("user_id", userID),
			slog.String("tenant_id", tenantID))
		return err
	}

	if !hasRequiredRole(membership.Role, requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("tenant_id", tenantID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}

// hasRequiredRole checks if the user's role meets or exceeds the required role
func hasRequiredRole(userRole, requiredRole domain.UserTenantRole) bool {
	switch requiredRole {
	case domain.RoleReadOnly:
		return userRole == domain.RoleReadOnly || userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleMember:
		return userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleAdmin:
		return userRole == domain.RoleAdmin
	default:
		return false
	}
}
