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
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
)

// employeeService implements personnel management.
type employeeService struct {
	BaseService
	employeeRepo portsrepo.EmployeeRepositoryFacade
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	authorizer portssvc.TenantAuthorizerSvc,
) portssvc.EmployeeSvcFacade {
	s := &employeeService{employeeRepo: employeeRepo}
	s.TenantAuthorizer = authorizer
	return s
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// GetEmployeeByID retrieves a specific employee by its ID.
func (s *employeeService) GetEmployeeByID(ctx context.Context, tenantID, employeeID string, requestingUserID string) (*domain.Employee, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, tenantID, employeeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find employee by ID",
				slog.String("employee_id", employeeID))
		}
		return nil, err
	}
	return employee, nil
}

// ListEmployees retrieves a paginated list of employees in a tenant.
func (s *employeeService) ListEmployees(ctx context.Context, tenantID string, requestingUserID string, params dto.ListEmployeesParams) (*dto.ListEmployeesResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	employees, err := s.employeeRepo.ListEmployees(ctx, tenantID, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list employees",
			slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve employees: %w", err)
	}
	return &dto.ListEmployeesResponse{Employees: dto.ToEmployeeResponses(employees)}, nil
}

// CreateEmployee persists a new employee.
func (s *employeeService) CreateEmployee(ctx context.Context, tenantID string, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	employee := domain.Employee{
		EmployeeID:    uuid.NewString(),
		TenantID:      tenantID,
		Name:          req.Name,
		Position:      req.Position,
		MonthlySalary: req.MonthlySalary,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		s.LogError(ctx, err, "Failed to save employee",
			slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}

	s.LogInfo(ctx, "Employee created successfully",
		slog.String("employee_id", employee.EmployeeID))
	return &employee, nil
}

// UpdateEmployee updates an existing employee's details.
func (s *employeeService) UpdateEmployee(ctx context.Context, tenantID, employeeID string, req dto.UpdateEmployeeRequest, requestingUserID string) (*domain.Employee, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.MonthlySalary != nil {
		employee.MonthlySalary = *req.MonthlySalary
	}
	employee.LastUpdatedAt = time.Now().UTC()
	employee.LastUpdatedBy = requestingUserID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		s.LogError(ctx, err, "Failed to update employee",
			slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

// DeactivateEmployee marks an employee as inactive. Its ledger account and
// history survive.
func (s *employeeService) DeactivateEmployee(ctx context.Context, tenantID, employeeID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.employeeRepo.FindEmployeeByID(ctx, tenantID, employeeID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.employeeRepo.DeactivateEmployee(ctx, tenantID, employeeID, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to deactivate employee",
			slog.String("employee_id", employeeID))
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	s.LogInfo(ctx, "Employee deactivated",
		slog.String("employee_id", employeeID))
	return nil
}
