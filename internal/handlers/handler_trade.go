package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tradeHandler handles the single-call trade endpoint.
type tradeHandler struct {
	tradeService portssvc.TradeSvcFacade
}

func newTradeHandler(ts portssvc.TradeSvcFacade) *tradeHandler {
	return &tradeHandler{tradeService: ts}
}

// registerTradeRoutes registers the trade route nested under a tenant.
func registerTradeRoutes(rg *gin.RouterGroup, ts portssvc.TradeSvcFacade) {
	h := newTradeHandler(ts)
	rg.POST("/trades", h.processTrade)
}

// processTrade godoc
// @Summary Process a complete trade
// @Description Creates the order, posts the counterparty and settlement ledger entries,
// @Description moves stock for item-backed lines and registers a check when the trade is
// @Description settled by check. Everything runs in one database transaction: either all
// @Description effects land or none do.
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   trade body dto.ProcessTradeRequest true "Trade details"
// @Success 201 {object} dto.ProcessTradeResponse
// @Failure 400 {object} ErrorResponse "Invalid input or insufficient stock"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Counterparty, item or location not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/trades [post]
func (h *tradeHandler) processTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.ProcessTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessTrade", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID))
	if req.ContactID != nil {
		logger = logger.With(slog.String("contact_id", *req.ContactID))
	}
	if req.EmployeeID != nil {
		logger = logger.With(slog.String("employee_id", *req.EmployeeID))
	}
	logger.Info("Received request to process trade",
		slog.String("order_type", string(req.OrderType)),
		slog.String("payment_method", string(req.PaymentMethod)),
		slog.Int("line_count", len(req.Lines)))

	resp, err := h.tradeService.ProcessTrade(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to process trade")
		return
	}

	logger.Info("Trade processed successfully",
		slog.String("order_id", resp.Order.OrderID),
		slog.Int("transaction_count", len(resp.Transactions)),
		slog.Int("movement_count", len(resp.Movements)))
	c.JSON(http.StatusCreated, resp)
}
