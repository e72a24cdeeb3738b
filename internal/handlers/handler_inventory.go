package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// inventoryHandler handles HTTP requests related to items and stock movements.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers item and stock movement routes nested under a tenant.
func registerInventoryRoutes(rg *gin.RouterGroup, is portssvc.InventorySvcFacade) {
	h := newInventoryHandler(is)

	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.GET("/:item_id", h.getItem)
		items.PUT("/:item_id", h.updateItem)
		items.GET("/:item_id/movements", h.listItemMovements)
	}
	rg.POST("/stock-movements", h.recordMovement)
}

// createItem godoc
// @Summary Create a new inventory item
// @Description Creates an item with a tenant-unique SKU. Stock starts at zero.
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "SKU already exists"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/items [post]
func (h *inventoryHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateItem", slog.String("error", err.Error()))
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
	logger.Info("Received request to create item", slog.String("sku", req.SKU))

	item, err := h.inventoryService.CreateItem(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create item")
		return
	}

	logger.Info("Item created successfully", slog.String("item_id", item.ItemID))
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// listItems godoc
// @Summary List inventory items of a tenant
// @Description Retrieves active items ordered by SKU.
// @Tags inventory
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListItemsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/items [get]
func (h *inventoryHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var params dto.ListItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListItems", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.inventoryService.ListItems(c.Request.Context(), tenantID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list items")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getItem godoc
// @Summary Get an inventory item by ID
// @Tags inventory
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   item_id path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/items/{item_id} [get]
func (h *inventoryHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	itemID := c.Param("item_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	item, err := h.inventoryService.GetItemByID(c.Request.Context(), tenantID, itemID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve item")
		return
	}

	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// updateItem godoc
// @Summary Update an inventory item
// @Description Updates item details. The SKU is immutable and stock quantities only
// @Description change through movements.
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   item_id path string true "Item ID"
// @Param   item body dto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/items/{item_id} [put]
func (h *inventoryHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	itemID := c.Param("item_id")

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), tenantID, itemID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// listItemMovements godoc
// @Summary List stock movements of an item
// @Description Retrieves a page of the item's movement history, newest first.
// @Tags inventory
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   item_id path string true "Item ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/items/{item_id}/movements [get]
func (h *inventoryHandler) listItemMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	itemID := c.Param("item_id")

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListItemMovements", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.inventoryService.ListMovementsByItem(c.Request.Context(), tenantID, itemID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list movements")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// recordMovement godoc
// @Summary Record a stock movement
// @Description Appends a movement and updates the item on-hand and per-location stock
// @Description in one database transaction. OUT movements exceeding the available
// @Description quantity are rejected.
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   movement body dto.RecordMovementRequest true "Movement details"
// @Success 201 {object} dto.StockMovementResponse
// @Failure 400 {object} ErrorResponse "Invalid input or insufficient stock"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Item or location not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/stock-movements [post]
func (h *inventoryHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID), slog.String("item_id", req.ItemID))
	logger.Info("Received request to record stock movement", slog.String("direction", req.Direction), slog.String("quantity", req.Quantity.String()))

	movement, err := h.inventoryService.RecordMovement(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record movement")
		return
	}

	logger.Info("Stock movement recorded", slog.String("movement_id", movement.MovementID))
	c.JSON(http.StatusCreated, dto.ToStockMovementResponse(movement))
}
