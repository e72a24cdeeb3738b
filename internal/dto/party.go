package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateContactRequest defines the data needed to create a new contact.
type CreateContactRequest struct {
	Kind      domain.ContactKind `json:"kind" binding:"required,oneof=CUSTOMER SUPPLIER SUBCONTRACTOR"`
	Name      string             `json:"name" binding:"required"`
	Email     string             `json:"email" binding:"omitempty,email"`
	Phone     string             `json:"phone"`
	TaxNumber string             `json:"taxNumber"`
}

// UpdateContactRequest defines the data allowed for updating a contact.
type UpdateContactRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	TaxNumber *string `json:"taxNumber"`
}

// ContactResponse defines the data returned for a contact.
type ContactResponse struct {
	ContactID     string             `json:"contactID"`
	Kind          domain.ContactKind `json:"kind"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	TaxNumber     string             `json:"taxNumber"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToContactResponse converts a domain.Contact to ContactResponse DTO.
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:     c.ContactID,
		Kind:          c.Kind,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		TaxNumber:     c.TaxNumber,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToContactResponses converts a slice of domain.Contact to []ContactResponse.
func ToContactResponses(contacts []domain.Contact) []ContactResponse {
	res := make([]ContactResponse, len(contacts))
	for i, c := range contacts {
		res[i] = ToContactResponse(&c)
	}
	return res
}

// ListContactsParams defines query parameters for listing contacts.
type ListContactsParams struct {
	Limit  int     `form:"limit,default=20"`
	Offset int     `form:"offset,default=0"`
	Kind   *string `form:"kind" binding:"omitempty,oneof=CUSTOMER SUPPLIER SUBCONTRACTOR"`
}

// ListContactsResponse wraps the list of contacts.
type ListContactsResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}

// CreateEmployeeRequest defines the data needed to create a new employee.
type CreateEmployeeRequest struct {
	Name          string          `json:"name" binding:"required"`
	Position      string          `json:"position"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
}

// UpdateEmployeeRequest defines the data allowed for updating an employee.
type UpdateEmployeeRequest struct {
	Name          *string          `json:"name"`
	Position      *string          `json:"position"`
	MonthlySalary *decimal.Decimal `json:"monthlySalary"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID    string          `json:"employeeID"`
	Name          string          `json:"name"`
	Position      string          `json:"position"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToEmployeeResponse converts a domain.Employee to EmployeeResponse DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:    e.EmployeeID,
		Name:          e.Name,
		Position:      e.Position,
		MonthlySalary: e.MonthlySalary,
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ToEmployeeResponses converts a slice of domain.Employee to []EmployeeResponse.
func ToEmployeeResponses(employees []domain.Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = ToEmployeeResponse(&e)
	}
	return res
}

// ListEmployeesParams defines query parameters for listing employees.
type ListEmployeesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListEmployeesResponse wraps the list of employees.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}
