package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// ContactReaderSvc defines read operations for contact data
type ContactReaderSvc interface {
	// GetContactByID retrieves a specific contact by its ID.
	GetContactByID(ctx context.Context, tenantID, contactID string, requestingUserID string) (*domain.Contact, error)

	// ListContacts retrieves a paginated list of contacts in a tenant.
	ListContacts(ctx context.Context, tenantID string, requestingUserID string, params dto.ListContactsParams) (*dto.ListContactsResponse, error)
}

// ContactWriterSvc defines write operations for contact data
type ContactWriterSvc interface {
	// CreateContact persists a new contact. No account is created yet; that
	// happens lazily on first financial reference.
	CreateContact(ctx context.Context, tenantID string, req dto.CreateContactRequest, creatorUserID string) (*domain.Contact, error)

	// UpdateContact updates an existing contact's details.
	UpdateContact(ctx context.Context, tenantID, contactID string, req dto.UpdateContactRequest, requestingUserID string) (*domain.Contact, error)

	// DeactivateContact marks a contact as inactive. Its account survives.
	DeactivateContact(ctx context.Context, tenantID, contactID string, requestingUserID string) error
}

// ContactSvcFacade combines all contact-related service interfaces
type ContactSvcFacade interface {
	ContactReaderSvc
	ContactWriterSvc
}

// EmployeeReaderSvc defines read operations for employee data
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves a specific employee by its ID.
	GetEmployeeByID(ctx context.Context, tenantID, employeeID string, requestingUserID string) (*domain.Employee, error)

	// ListEmployees retrieves a paginated list of employees in a tenant.
	ListEmployees(ctx context.Context, tenantID string, requestingUserID string, params dto.ListEmployeesParams) (*dto.ListEmployeesResponse, error)
}

// EmployeeWriterSvc defines write operations for employee data
type EmployeeWriterSvc interface {
	// CreateEmployee persists a new employee.
	CreateEmployee(ctx context.Context, tenantID string, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error)

	// UpdateEmployee updates an existing employee's details.
	UpdateEmployee(ctx context.Context, tenantID, employeeID string, req dto.UpdateEmployeeRequest, requestingUserID string) (*domain.Employee, error)

	// DeactivateEmployee marks an employee as inactive. Its account survives.
	DeactivateEmployee(ctx context.Context, tenantID, employeeID string, requestingUserID string) error
}

// EmployeeSvcFacade combines all employee-related service interfaces
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
}
