package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tenantHandler handles HTTP requests related to tenants and their members.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

func newTenantHandler(ts portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{tenantService: ts}
}

// registerTenantRoutes registers routes related to tenants and their members.
// All business entities (accounts, orders, checks, stock, parties) live under
// a specific tenant, so their routes are registered nested here.
func registerTenantRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTenantHandler(services.Tenant)

	tenantsTopLevel := rg.Group("/tenants")
	{
		tenantsTopLevel.POST("", h.createTenant)
		tenantsTopLevel.GET("", h.listUserTenants)
	}

	tenantSpecific := rg.Group("/tenants/:tenant_id")
	{
		tenantSpecific.GET("", h.getTenant)
		tenantSpecific.DELETE("", h.deactivateTenant)
		tenantSpecific.POST("/activate", h.activateTenant)

		tenantUsers := tenantSpecific.Group("/users")
		{
			tenantUsers.POST("", h.addUserToTenant)
			tenantUsers.GET("", h.listTenantUsers)
			tenantUsers.PUT("/:user_id", h.updateUserRole)
			tenantUsers.DELETE("/:user_id", h.removeUserFromTenant)
		}

		registerAccountRoutes(tenantSpecific, services.Account, services.Ledger)
		registerLedgerRoutes(tenantSpecific, services.Ledger)
		registerOrderRoutes(tenantSpecific, services.Order)
		registerTradeRoutes(tenantSpecific, services.Trade)
		registerCheckRoutes(tenantSpecific, services.Check)
		registerContactRoutes(tenantSpecific, services.Contact)
		registerEmployeeRoutes(tenantSpecific, services.Employee)
		registerInventoryRoutes(tenantSpecific, services.Inventory)
		registerWarehouseRoutes(tenantSpecific, services.Warehouse)
	}
}

// createTenant godoc
// @Summary Create a new tenant
// @Description Creates a new tenant and assigns the creator as admin.
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   tenant body dto.CreateTenantRequest true "Tenant details"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create tenant"
// @Security BearerAuth
// @Router /tenants [post]
func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTenant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create tenant", slog.String("tenant_name", req.Name))

	newTenant, err := h.tenantService.CreateTenant(c.Request.Context(), req.Name, req.Description, req.DefaultCurrencyCode, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create tenant")
		return
	}

	logger.Info("Tenant created successfully", slog.String("tenant_id", newTenant.TenantID))
	c.JSON(http.StatusCreated, dto.ToTenantResponse(newTenant))
}

// listUserTenants godoc
// @Summary List tenants for current user
// @Description Retrieves the tenants the authenticated user belongs to.
// @Tags tenants
// @Produce  json
// @Success 200 {array} dto.TenantResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list tenants"
// @Security BearerAuth
// @Router /tenants [get]
func (h *tenantHandler) listUserTenants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tenants, err := h.tenantService.ListUserTenants(c.Request.Context(), userID, false)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list tenants")
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponses(tenants))
}

// getTenant godoc
// @Summary Get a tenant by ID
// @Description Retrieves details of a specific tenant.
// @Tags tenants
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id} [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	if _, ok := middleware.GetUserIDFromContext(c); !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tenant, err := h.tenantService.FindTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve tenant")
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// deactivateTenant godoc
// @Summary Deactivate a tenant
// @Description Marks a tenant as inactive. Admin only.
// @Tags tenants
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id} [delete]
func (h *tenantHandler) deactivateTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.tenantService.DeactivateTenant(c.Request.Context(), tenantID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate tenant")
		return
	}

	c.Status(http.StatusNoContent)
}

// activateTenant godoc
// @Summary Activate a tenant
// @Description Marks a previously deactivated tenant as active. Admin only.
// @Tags tenants
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/activate [post]
func (h *tenantHandler) activateTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.tenantService.ActivateTenant(c.Request.Context(), tenantID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to activate tenant")
		return
	}

	c.Status(http.StatusNoContent)
}

// addUserToTenant godoc
// @Summary Add a user to a tenant
// @Description Adds a user to the tenant with the given role. Admin only.
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   membership body dto.AddUserToTenantRequest true "User and role"
// @Success 201 "Created"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "User already a member"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/users [post]
func (h *tenantHandler) addUserToTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.AddUserToTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddUserToTenant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID), slog.String("target_user_id", req.UserID))
	logger.Info("Received request to add user to tenant", slog.String("role", string(req.Role)))

	if err := h.tenantService.AddUserToTenant(c.Request.Context(), addingUserID, req.UserID, tenantID, req.Role); err != nil {
		respondServiceError(c, logger, err, "Failed to add user to tenant")
		return
	}

	c.Status(http.StatusCreated)
}

// listTenantUsers godoc
// @Summary List users of a tenant
// @Description Retrieves the memberships of a tenant. Members only.
// @Tags tenants
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {array} dto.UserTenantResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/users [get]
func (h *tenantHandler) listTenantUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	memberships, err := h.tenantService.ListTenantUsers(c.Request.Context(), tenantID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list tenant users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserTenantResponses(memberships))
}

// updateUserRole godoc
// @Summary Change a member's role
// @Description Updates a user's role within the tenant. Admin only.
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   user_id path string true "User ID"
// @Param   role body dto.UpdateUserTenantRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Membership not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/users/{user_id} [put]
func (h *tenantHandler) updateUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	targetUserID := c.Param("user_id")

	var req dto.UpdateUserTenantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUserRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.tenantService.UpdateUserTenantRole(c.Request.Context(), requestingUserID, targetUserID, tenantID, req.Role); err != nil {
		respondServiceError(c, logger, err, "Failed to update user role")
		return
	}

	c.Status(http.StatusNoContent)
}

// removeUserFromTenant godoc
// @Summary Remove a user from a tenant
// @Description Removes a user's membership. Admin only.
// @Tags tenants
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Membership not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/users/{user_id} [delete]
func (h *tenantHandler) removeUserFromTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.tenantService.RemoveUserFromTenant(c.Request.Context(), requestingUserID, targetUserID, tenantID); err != nil {
		respondServiceError(c, logger, err, "Failed to remove user from tenant")
		return
	}

	c.Status(http.StatusNoContent)
}
