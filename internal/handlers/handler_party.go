package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// contactHandler handles HTTP requests related to contacts.
type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

func newContactHandler(cs portssvc.ContactSvcFacade) *contactHandler {
	return &contactHandler{contactService: cs}
}

// registerContactRoutes registers contact routes nested under a tenant.
func registerContactRoutes(rg *gin.RouterGroup, cs portssvc.ContactSvcFacade) {
	h := newContactHandler(cs)

	contacts := rg.Group("/contacts")
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/:contact_id", h.getContact)
		contacts.PUT("/:contact_id", h.updateContact)
		contacts.DELETE("/:contact_id", h.deactivateContact)
	}
}

// createContact godoc
// @Summary Create a new contact
// @Description Creates a customer, supplier or subcontractor. No account is created
// @Description yet; that happens on the contact's first financial reference.
// @Tags contacts
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   contact body dto.CreateContactRequest true "Contact details"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/contacts [post]
func (h *contactHandler) createContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateContact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create contact")
		return
	}

	logger.Info("Contact created successfully", slog.String("tenant_id", tenantID), slog.String("contact_id", contact.ContactID))
	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

// listContacts godoc
// @Summary List contacts of a tenant
// @Description Retrieves active contacts ordered by name, optionally filtered by kind.
// @Tags contacts
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Param   kind query string false "Filter by kind" Enums(CUSTOMER, SUPPLIER, SUBCONTRACTOR)
// @Success 200 {object} dto.ListContactsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/contacts [get]
func (h *contactHandler) listContacts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var params dto.ListContactsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListContacts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.contactService.ListContacts(c.Request.Context(), tenantID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list contacts")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getContact godoc
// @Summary Get a contact by ID
// @Tags contacts
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   contact_id path string true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/contacts/{contact_id} [get]
func (h *contactHandler) getContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	contactID := c.Param("contact_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	contact, err := h.contactService.GetContactByID(c.Request.Context(), tenantID, contactID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve contact")
		return
	}

	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// updateContact godoc
// @Summary Update a contact
// @Description Updates contact details. The kind is immutable.
// @Tags contacts
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   contact_id path string true "Contact ID"
// @Param   contact body dto.UpdateContactRequest true "Fields to update"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/contacts/{contact_id} [put]
func (h *contactHandler) updateContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	contactID := c.Param("contact_id")

	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateContact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), tenantID, contactID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update contact")
		return
	}

	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// deactivateContact godoc
// @Summary Deactivate a contact
// @Description Marks a contact as inactive. Its account and history survive.
// @Tags contacts
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   contact_id path string true "Contact ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Failure 409 {object} ErrorResponse "Contact already inactive"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/contacts/{contact_id} [delete]
func (h *contactHandler) deactivateContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	contactID := c.Param("contact_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.contactService.DeactivateContact(c.Request.Context(), tenantID, contactID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate contact")
		return
	}

	c.Status(http.StatusNoContent)
}

// employeeHandler handles HTTP requests related to employees.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

func newEmployeeHandler(es portssvc.EmployeeSvcFacade) *employeeHandler {
	return &employeeHandler{employeeService: es}
}

// registerEmployeeRoutes registers employee routes nested under a tenant.
func registerEmployeeRoutes(rg *gin.RouterGroup, es portssvc.EmployeeSvcFacade) {
	h := newEmployeeHandler(es)

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.GET("/:employee_id", h.getEmployee)
		employees.PUT("/:employee_id", h.updateEmployee)
		employees.DELETE("/:employee_id", h.deactivateEmployee)
	}
}

// createEmployee godoc
// @Summary Create a new employee
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/employees [post]
func (h *employeeHandler) createEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create employee")
		return
	}

	logger.Info("Employee created successfully", slog.String("tenant_id", tenantID), slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// listEmployees godoc
// @Summary List employees of a tenant
// @Description Retrieves active employees ordered by name.
// @Tags employees
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListEmployeesResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var params dto.ListEmployeesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEmployees", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.employeeService.ListEmployees(c.Request.Context(), tenantID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list employees")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEmployee godoc
// @Summary Get an employee by ID
// @Tags employees
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   employee_id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Employee not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/employees/{employee_id} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	employeeID := c.Param("employee_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), tenantID, employeeID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve employee")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// updateEmployee godoc
// @Summary Update an employee
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   employee_id path string true "Employee ID"
// @Param   employee body dto.UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Employee not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/employees/{employee_id} [put]
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	employeeID := c.Param("employee_id")

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), tenantID, employeeID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// deactivateEmployee godoc
// @Summary Deactivate an employee
// @Description Marks an employee as inactive. Its account and history survive.
// @Tags employees
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   employee_id path string true "Employee ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Employee not found"
// @Failure 409 {object} ErrorResponse "Employee already inactive"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/employees/{employee_id} [delete]
func (h *employeeHandler) deactivateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	employeeID := c.Param("employee_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.employeeService.DeactivateEmployee(c.Request.Context(), tenantID, employeeID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate employee")
		return
	}

	c.Status(http.StatusNoContent)
}
