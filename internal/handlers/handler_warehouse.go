package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// warehouseHandler handles HTTP requests related to warehouse pools and locations.
type warehouseHandler struct {
	warehouseService portssvc.WarehouseSvcFacade
}

func newWarehouseHandler(ws portssvc.WarehouseSvcFacade) *warehouseHandler {
	return &warehouseHandler{warehouseService: ws}
}

// registerWarehouseRoutes registers warehouse routes nested under a tenant.
func registerWarehouseRoutes(rg *gin.RouterGroup, ws portssvc.WarehouseSvcFacade) {
	h := newWarehouseHandler(ws)

	pools := rg.Group("/warehouse-pools")
	{
		pools.POST("", h.createPool)
		pools.GET("", h.listPools)
		pools.POST("/:pool_id/locations", h.createLocation)
		pools.GET("/:pool_id/locations", h.listLocations)
	}
}

// createPool godoc
// @Summary Create a warehouse pool
// @Tags warehouses
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   pool body dto.CreatePoolRequest true "Pool details"
// @Success 201 {object} dto.PoolResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/warehouse-pools [post]
func (h *warehouseHandler) createPool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePool", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pool, err := h.warehouseService.CreatePool(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create warehouse pool")
		return
	}

	logger.Info("Warehouse pool created", slog.String("tenant_id", tenantID), slog.String("pool_id", pool.PoolID))
	c.JSON(http.StatusCreated, dto.ToPoolResponse(pool))
}

// listPools godoc
// @Summary List warehouse pools of a tenant
// @Tags warehouses
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Success 200 {array} dto.PoolResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/warehouse-pools [get]
func (h *warehouseHandler) listPools(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pools, err := h.warehouseService.ListPools(c.Request.Context(), tenantID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list warehouse pools")
		return
	}

	c.JSON(http.StatusOK, dto.ToPoolResponses(pools))
}

// createLocation godoc
// @Summary Create a warehouse location
// @Description Creates a location under a pool. A location flagged default becomes the
// @Description tenant's fallback for stock movements without an explicit location.
// @Tags warehouses
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   pool_id path string true "Pool ID"
// @Param   location body dto.CreateLocationRequest true "Location details"
// @Success 201 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Pool not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/warehouse-pools/{pool_id}/locations [post]
func (h *warehouseHandler) createLocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	poolID := c.Param("pool_id")

	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLocation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	location, err := h.warehouseService.CreateLocation(c.Request.Context(), tenantID, poolID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create warehouse location")
		return
	}

	logger.Info("Warehouse location created", slog.String("tenant_id", tenantID), slog.String("location_id", location.LocationID))
	c.JSON(http.StatusCreated, dto.ToLocationResponse(location))
}

// listLocations godoc
// @Summary List locations of a warehouse pool
// @Tags warehouses
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   pool_id path string true "Pool ID"
// @Success 200 {array} dto.LocationResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Pool not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/warehouse-pools/{pool_id}/locations [get]
func (h *warehouseHandler) listLocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	poolID := c.Param("pool_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	locations, err := h.warehouseService.ListLocations(c.Request.Context(), tenantID, poolID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list warehouse locations")
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationResponses(locations))
}
