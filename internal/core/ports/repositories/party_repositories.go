package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// ContactReader defines read operations for contact data
type ContactReader interface {
	// FindContactByID retrieves a specific contact by its unique identifier.
	FindContactByID(ctx context.Context, tenantID, contactID string) (*domain.Contact, error)

	// ListContacts retrieves a paginated list of contacts for a given tenant,
	// optionally filtered by kind.
	ListContacts(ctx context.Context, tenantID string, kind *domain.ContactKind, limit int, offset int) ([]domain.Contact, error)
}

// ContactWriter defines write operations for contact data
type ContactWriter interface {
	// SaveContact persists a new contact.
	SaveContact(ctx context.Context, contact domain.Contact) error

	// UpdateContact updates an existing contact's details.
	UpdateContact(ctx context.Context, contact domain.Contact) error

	// DeactivateContact marks a contact as inactive.
	DeactivateContact(ctx context.Context, tenantID, contactID string, userID string, now time.Time) error
}

// ContactRepositoryFacade combines all contact-related repository interfaces
type ContactRepositoryFacade interface {
	ContactReader
	ContactWriter
}

// EmployeeReader defines read operations for employee data
type EmployeeReader interface {
	// FindEmployeeByID retrieves a specific employee by its unique identifier.
	FindEmployeeByID(ctx context.Context, tenantID, employeeID string) (*domain.Employee, error)

	// ListEmployees retrieves a paginated list of employees for a given tenant.
	ListEmployees(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for employee data
type EmployeeWriter interface {
	// SaveEmployee persists a new employee.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateEmployee updates an existing employee's details.
	UpdateEmployee(ctx context.Context, employee domain.Employee) error

	// DeactivateEmployee marks an employee as inactive.
	DeactivateEmployee(ctx context.Context, tenantID, employeeID string, userID string, now time.Time) error
}

// EmployeeRepositoryFacade combines all employee-related repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}
