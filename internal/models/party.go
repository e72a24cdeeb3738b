package models

import "github.com/shopspring/decimal"

// Contact represents a row of the contacts table.
type Contact struct {
	ContactID string `db:"contact_id"`
	TenantID  string `db:"tenant_id"`
	Kind      string `db:"kind"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	TaxNumber string `db:"tax_number"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}

// Employee represents a row of the employees table.
type Employee struct {
	EmployeeID    string          `db:"employee_id"`
	TenantID      string          `db:"tenant_id"`
	Name          string          `db:"name"`
	Position      string          `db:"position"`
	MonthlySalary decimal.Decimal `db:"monthly_salary"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
