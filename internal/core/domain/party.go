package domain

import "github.com/shopspring/decimal"

// ContactKind distinguishes the commercial role of a contact.
type ContactKind string

const (
	ContactCustomer      ContactKind = "CUSTOMER"
	ContactSupplier      ContactKind = "SUPPLIER"
	ContactSubcontractor ContactKind = "SUBCONTRACTOR"
)

// AccountType returns the party account type provisioned for this contact kind.
// Subcontractors are carried on supplier accounts.
func (k ContactKind) AccountType() AccountType {
	if k == ContactCustomer {
		return AccountCustomer
	}
	return AccountSupplier
}

// Contact is a customer, supplier or subcontractor of the tenant.
// Its ledger account is provisioned lazily on first financial reference.
type Contact struct {
	ContactID string      `json:"contactID"` // Primary Key (UUID)
	TenantID  string      `json:"tenantID"`  // FK -> tenants.tenant_id
	Kind      ContactKind `json:"kind"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	TaxNumber string      `json:"taxNumber"`
	IsActive  bool        `json:"isActive"`
	AuditFields
}

// Employee is a member of the tenant's personnel.
type Employee struct {
	EmployeeID    string          `json:"employeeID"` // Primary Key (UUID)
	TenantID      string          `json:"tenantID"`   // FK -> tenants.tenant_id
	Name          string          `json:"name"`
	Position      string          `json:"position"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}
