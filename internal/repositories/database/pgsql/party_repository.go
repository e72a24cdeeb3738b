package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactColumns = `contact_id, tenant_id, kind, name, email, phone, tax_number, is_active, created_at, created_by, last_updated_at, last_updated_by`

const employeeColumns = `employee_id, tenant_id, name, position, monthly_salary, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxContactRepository struct {
	BaseRepository
}

func newPgxContactRepository(pool *pgxpool.Pool) *PgxContactRepository {
	return &PgxContactRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ContactRepositoryFacade = (*PgxContactRepository)(nil)

func scanContact(row rowScanner) (*domain.Contact, error) {
	var m models.Contact
	err := row.Scan(
		&m.ContactID,
		&m.TenantID,
		&m.Kind,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.TaxNumber,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainContact(m)
	return &d, nil
}

// FindContactByID retrieves a contact by its ID within a tenant.
func (r *PgxContactRepository) FindContactByID(ctx context.Context, tenantID, contactID string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE tenant_id = $1 AND contact_id = $2;`

	contact, err := scanContact(r.Pool.QueryRow(ctx, query, tenantID, contactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contact %s: %w", contactID, err)
	}
	return contact, nil
}

// ListContacts retrieves active contacts of a tenant, optionally filtered by kind.
func (r *PgxContactRepository) ListContacts(ctx context.Context, tenantID string, kind *domain.ContactKind, limit int, offset int) ([]domain.Contact, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE tenant_id = $1 AND is_active AND ($2::text IS NULL OR kind = $2)
		ORDER BY name
		LIMIT $3 OFFSET $4;
	`
	var kindArg *string
	if kind != nil {
		s := string(*kind)
		kindArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, tenantID, kindArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}
	return contacts, nil
}

// SaveContact persists a new contact.
func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	m := mapping.ToModelContact(contact)
	_, err := r.Pool.Exec(ctx, query,
		m.ContactID,
		m.TenantID,
		m.Kind,
		m.Name,
		m.Email,
		m.Phone,
		m.TaxNumber,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: contact %s already exists", apperrors.ErrDuplicate, m.ContactID)
		}
		return fmt.Errorf("failed to save contact %s: %w", m.ContactID, err)
	}
	return nil
}

// UpdateContact updates a contact's details. Kind is immutable.
func (r *PgxContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	query := `
		UPDATE contacts
		SET name = $3, email = $4, phone = $5, tax_number = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE tenant_id = $1 AND contact_id = $2;
	`
	m := mapping.ToModelContact(contact)
	commandTag, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.ContactID,
		m.Name,
		m.Email,
		m.Phone,
		m.TaxNumber,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact %s: %w", m.ContactID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateContact marks a contact as inactive.
func (r *PgxContactRepository) DeactivateContact(ctx context.Context, tenantID, contactID string, userID string, now time.Time) error {
	query := `
		UPDATE contacts
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND contact_id = $2 AND is_active;
	`
	commandTag, err := r.Pool.Exec(ctx, query, tenantID, contactID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate contact %s: %w", contactID, err)
	}
	if commandTag.RowsAffected() == 0 {
		if _, findErr := r.FindContactByID(ctx, tenantID, contactID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: contact %s is already inactive", apperrors.ErrConflict, contactID)
	}
	return nil
}

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool) *PgxEmployeeRepository {
	return &PgxEmployeeRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.TenantID,
		&m.Name,
		&m.Position,
		&m.MonthlySalary,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainEmployee(m)
	return &d, nil
}

// FindEmployeeByID retrieves an employee by its ID within a tenant.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, tenantID, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE tenant_id = $1 AND employee_id = $2;`

	employee, err := scanEmployee(r.Pool.QueryRow(ctx, query, tenantID, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	return employee, nil
}

// ListEmployees retrieves active employees of a tenant.
func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Employee, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE tenant_id = $1 AND is_active
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, *employee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}
	return employees, nil
}

// SaveEmployee persists a new employee.
func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	m := mapping.ToModelEmployee(employee)
	_, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.TenantID,
		m.Name,
		m.Position,
		m.MonthlySalary,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: employee %s already exists", apperrors.ErrDuplicate, m.EmployeeID)
		}
		return fmt.Errorf("failed to save employee %s: %w", m.EmployeeID, err)
	}
	return nil
}

// UpdateEmployee updates an employee's details.
func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		UPDATE employees
		SET name = $3, position = $4, monthly_salary = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $1 AND employee_id = $2;
	`
	m := mapping.ToModelEmployee(employee)
	commandTag, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.EmployeeID,
		m.Name,
		m.Position,
		m.MonthlySalary,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", m.EmployeeID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateEmployee marks an employee as inactive.
func (r *PgxEmployeeRepository) DeactivateEmployee(ctx context.Context, tenantID, employeeID string, userID string, now time.Time) error {
	query := `
		UPDATE employees
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND employee_id = $2 AND is_active;
	`
	commandTag, err := r.Pool.Exec(ctx, query, tenantID, employeeID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee %s: %w", employeeID, err)
	}
	if commandTag.RowsAffected() == 0 {
		if _, findErr := r.FindEmployeeByID(ctx, tenantID, employeeID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: employee %s is already inactive", apperrors.ErrConflict, employeeID)
	}
	return nil
}
