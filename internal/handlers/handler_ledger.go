package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests against the transaction ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers ledger transaction routes nested under a tenant.
func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ls)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.addTransaction)
		transactions.GET("/:transaction_id", h.getTransaction)
	}
	rg.GET("/documents/:document_type/:document_id/transactions", h.listDocumentTransactions)
}

// addTransaction godoc
// @Summary Append a ledger transaction
// @Description Appends a posting to an account, updating the account balance. When the
// @Description posting references a payment document the linked order's paid amount and
// @Description payment status are re-derived in the same database transaction.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/transactions [post]
func (h *ledgerHandler) addTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("tenant_id", tenantID), slog.String("account_id", req.AccountID))
	logger.Info("Received request to add transaction", slog.String("transaction_type", req.TransactionType))

	txn, err := h.ledgerService.AddTransaction(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add transaction")
		return
	}

	logger.Info("Transaction added successfully", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves a specific ledger transaction.
// @Tags ledger
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/transactions/{transaction_id} [get]
func (h *ledgerHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	transactionID := c.Param("transaction_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.GetTransactionByID(c.Request.Context(), tenantID, transactionID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listDocumentTransactions godoc
// @Summary List transactions of a source document
// @Description Retrieves all ledger transactions linked to an order, payment, check or salary document.
// @Tags ledger
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   document_type path string true "Document type" Enums(ORDER, PAYMENT, CHECK, SALARY, ADJUSTMENT)
// @Param   document_id path string true "Document ID"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid document type"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/documents/{document_type}/{document_id}/transactions [get]
func (h *ledgerHandler) listDocumentTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenant_id")
	documentID := c.Param("document_id")

	documentType := domain.DocumentType(c.Param("document_type"))
	switch documentType {
	case domain.DocumentOrder, domain.DocumentPayment, domain.DocumentCheck, domain.DocumentSalary, domain.DocumentAdjustment:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid document type"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txns, err := h.ledgerService.ListTransactionsByDocument(c.Request.Context(), tenantID, documentType, documentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}
