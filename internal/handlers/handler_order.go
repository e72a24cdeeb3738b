package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// orderHandler handles HTTP requests related to orders and their payments.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: os}
}

// registerOrderRoutes registers order routes nested under a tenant.
func registerOrderRoutes(rg *gin.RouterGroup, os portssvc.OrderSvcFacade) {
	h := newOrderHandler(os)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:order_id", h.getOrder)
		orders.PUT("/:order_id", h.updateOrder)
		orders.PUT("/:order_id/status", h.updateOrderStatus)
		orders.POST("/:order_id/payments", h.registerOrderPayment)
		orders.POST("/:order_id/mark-paid", h.markOrderAsPaid)
		orders.POST("/:order_id/deduct-from-salary", h.deductOrderFromSalary)
	}
}

// createOrder godoc
// @Summary Create a new order
// @Description Creates an order with its lines in PENDING status. The line totals and
// @Description order total are computed server side.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Counterparty not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrder", slog.String("error", err.Error()))
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
	logger.Info("Received request to create order", slog.String("order_type", string(req.OrderType)), slog.Int("line_count", len(req.Lines)))

	order, err := h.orderService.CreateOrder(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create order")
		return
	}

	logger.Info("Order created successfully", slog.String("order_id", order.OrderID))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List orders of a tenant
// @Description Retrieves a page of orders, newest first, with optional filters.
// @Tags orders
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Param   orderType query string false "Filter by order type" Enums(SALE, PURCHASE, SERVICE)
// @Param   status query string false "Filter by workflow status"
// @Param   paymentStatus query string false "Filter by payment status" Enums(UNPAID, PARTIAL, PAID)
// @Param   contactID query string false "Filter by contact"
// @Param   employeeID query string false "Filter by employee"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListOrders", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.orderService.ListOrders(c.Request.Context(), tenantID, userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getOrder godoc
// @Summary Get an order by ID
// @Description Retrieves an order with its lines and derived payment fields.
// @Tags orders
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   order_id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Order not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/orders/{order_id} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	orderID := c.Param("order_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	order, err := h.orderService.GetOrderByID(c.Request.Context(), tenantID, orderID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// updateOrder godoc
// @Summary Replace the lines of a pending order
// @Description Replaces the lines of a PENDING order and recomputes the total.
// @Description Orders past PENDING can no longer be edited.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   order_id path string true "Order ID"
// @Param   order body dto.UpdateOrderRequest true "New lines"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Order not found"
// @Failure 409 {object} ErrorResponse "Order is not pending"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/orders/{order_id} [put]
func (h *orderHandler) updateOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	orderID := c.Param("order_id")

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), tenantID, orderID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// updateOrderStatus godoc
// @Summary Transition the order workflow status
// @Description Moves the order to a new workflow status. Invalid transitions are rejected.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   order_id path string true "Order ID"
// @Param   status body dto.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Order not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/orders/{order_id}/status [put]
func (h *orderHandler) updateOrderStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	orderID := c.Param("order_id")

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOrderStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID), slog.String("order_id", orderID))
	logger.Info("Received request to update order status", slog.String("target_status", string(req.Status)))

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), tenantID, orderID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update order status")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// registerOrderPayment godoc
// @Summary Register a payment against an order
// @Description Posts the payment to both the counterparty account and the settlement
// @Description account, then re-derives the order's paid amount and payment status. The
// @Description whole operation runs in one database transaction.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   order_id path string true "Order ID"
// @Param   payment body dto.RegisterOrderPaymentRequest true "Payment details"
// @Success 201 {object} dto.OrderPaymentResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Order or account not found"
// @Failure 409 {object} ErrorResponse "Order is cancelled"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/orders/{order_id}/payments [post]
func (h *orderHandler) registerOrderPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	orderID := c.Param("order_id")

	var req dto.RegisterOrderPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterOrderPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID), slog.String("order_id", orderID))
	logger.Info("Received request to register order payment", slog.String("amount", req.Amount.String()))

	resp, err := h.orderService.RegisterOrderPayment(c.Request.Context(), tenantID, orderID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to register payment")
		return
	}

	logger.Info("Order payment registered", slog.String("payment_status", string(resp.Order.PaymentStatus)))
	c.JSON(http.StatusCreated, resp)
}

// markOrderAsPaid godoc
// @Summary Settle an order's open remainder in full
// @Description Posts a single payment for the order's unpaid remainder, bringing the
// @Description payment status to PAID.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   order_id path string true "Order ID"
// @Param   payment body dto.MarkOrderAsPaidRequest true "Settlement details"
// @Success 201 {object} dto.OrderPaymentResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Order or account not found"
// @Failure 409 {object} ErrorResponse "Order already paid"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/orders/{order_id}/mark-paid [post]
func (h *orderHandler) markOrderAsPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	orderID := c.Param("order_id")

	var req dto.MarkOrderAsPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MarkOrderAsPaid", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.orderService.MarkOrderAsPaid(c.Request.Context(), tenantID, orderID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark order as paid")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// deductOrderFromSalary godoc
// @Summary Mark an employee order as deducted from salary
// @Description Flips the order to PAID without posting to the ledger, leaving the
// @Description employee's account balance to net against a future salary accrual.
// @Tags orders
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   order_id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse "Order has no employee counterparty"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Order not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/orders/{order_id}/deduct-from-salary [post]
func (h *orderHandler) deductOrderFromSalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	orderID := c.Param("order_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	order, err := h.orderService.DeductOrderFromSalary(c.Request.Context(), tenantID, orderID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to deduct order from salary")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
