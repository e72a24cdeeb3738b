package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// checkHandler handles HTTP requests related to the check portfolio.
type checkHandler struct {
	checkService portssvc.CheckSvcFacade
}

func newCheckHandler(cs portssvc.CheckSvcFacade) *checkHandler {
	return &checkHandler{checkService: cs}
}

// registerCheckRoutes registers check routes nested under a tenant.
func registerCheckRoutes(rg *gin.RouterGroup, cs portssvc.CheckSvcFacade) {
	h := newCheckHandler(cs)

	checks := rg.Group("/checks")
	{
		checks.POST("", h.registerCheck)
		checks.GET("", h.listChecks)
		checks.GET("/:check_id", h.getCheck)
		checks.POST("/:check_id/settle", h.settleCheck)
	}
}

// registerCheck godoc
// @Summary Register a check into the portfolio
// @Description Takes a received check into the portfolio and posts the portfolio
// @Description ledger entry in the same database transaction.
// @Tags checks
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   check body dto.RegisterCheckRequest true "Check details"
// @Success 201 {object} dto.CheckResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Contact or order not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/checks [post]
func (h *checkHandler) registerCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.RegisterCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterCheck", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID))
	logger.Info("Received request to register check", slog.String("check_number", req.Number), slog.String("amount", req.Amount.String()))

	check, err := h.checkService.RegisterCheck(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to register check")
		return
	}

	logger.Info("Check registered successfully", slog.String("check_id", check.CheckID))
	c.JSON(http.StatusCreated, dto.ToCheckResponse(check))
}

// listChecks godoc
// @Summary List checks of a tenant
// @Description Retrieves checks ordered by due date, optionally filtered by status.
// @Tags checks
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Param   status query string false "Filter by status" Enums(PORTFOLIO, PAID, COLLECTED)
// @Success 200 {object} dto.ListChecksResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/checks [get]
func (h *checkHandler) listChecks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var params dto.ListChecksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListChecks", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.checkService.ListChecks(c.Request.Context(), tenantID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list checks")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getCheck godoc
// @Summary Get a check by ID
// @Description Retrieves details of a specific check.
// @Tags checks
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   check_id path string true "Check ID"
// @Success 200 {object} dto.CheckResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Check not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/checks/{check_id} [get]
func (h *checkHandler) getCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	checkID := c.Param("check_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	check, err := h.checkService.GetCheckByID(c.Request.Context(), tenantID, checkID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve check")
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckResponse(check))
}

// settleCheck godoc
// @Summary Settle a portfolio check
// @Description Transitions a portfolio check to PAID or COLLECTED and posts the
// @Description corresponding ledger entries. Settled checks are final.
// @Tags checks
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   check_id path string true "Check ID"
// @Param   settlement body dto.SettleCheckRequest true "Settlement details"
// @Success 200 {object} dto.CheckResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Check not found"
// @Failure 409 {object} ErrorResponse "Check already settled"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/checks/{check_id}/settle [post]
func (h *checkHandler) settleCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	checkID := c.Param("check_id")

	var req dto.SettleCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettleCheck", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID), slog.String("check_id", checkID))
	logger.Info("Received request to settle check", slog.String("target_status", string(req.Status)))

	check, err := h.checkService.SettleCheck(c.Request.Context(), tenantID, checkID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to settle check")
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckResponse(check))
}
