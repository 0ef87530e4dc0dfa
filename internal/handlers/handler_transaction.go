package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fffx/bonsaiERP/internal/core/ports/services"
	"github.com/fffx/bonsaiERP/internal/dto"
	"github.com/fffx/bonsaiERP/internal/metrics"
	"github.com/fffx/bonsaiERP/internal/middleware"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	historyService     portssvc.HistorySvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, hs portssvc.HistorySvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		historyService:     hs,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, hs portssvc.HistorySvcFacade) {
	h := newTransactionHandler(ts, hs)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PATCH("/:transactionID", h.updateTransaction)
		transactions.POST("/:transactionID/approve", h.approveTransaction)
		transactions.POST("/:transactionID/approve-credit", h.approveCredit)
		transactions.GET("/:transactionID/pay-plans", h.listPayPlans)
		transactions.POST("/:transactionID/pay-plans/split", h.splitPayPlans)
		transactions.POST("/:transactionID/deliveries", h.recordDelivery)
		transactions.GET("/:transactionID/histories", h.listHistories)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		logger.Error("Operator not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), op, req)
	if err != nil {
		respondServiceError(c, logger, err, "create transaction")
		return
	}

	metrics.TransactionsCreated.WithLabelValues(string(txn.Type)).Inc()
	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("ref_number", txn.RefNumber))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), op, transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), op, params)
	if err != nil {
		respondServiceError(c, logger, err, "list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), op, transactionID, req)
	if err != nil {
		respondServiceError(c, logger, err, "update transaction")
		return
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID), slog.String("state", string(txn.State)))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) approveTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.ApproveTransaction(c.Request.Context(), op, transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "approve transaction")
		return
	}

	metrics.TransactionsApproved.Inc()
	logger.Info("Transaction approved", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) approveCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.ApproveCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApproveCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.ApproveCredit(c.Request.Context(), op, transactionID, req)
	if err != nil {
		respondServiceError(c, logger, err, "approve transaction on credit")
		return
	}

	metrics.TransactionsApproved.Inc()
	logger.Info("Transaction approved on credit",
		slog.String("transaction_id", transactionID),
		slog.String("credit_ref", txn.CreditRef))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listPayPlans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	plans, err := h.transactionService.ListPayPlans(c.Request.Context(), op, transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "list payment plans")
		return
	}

	c.JSON(http.StatusOK, dto.ToPayPlanResponses(plans))
}

func (h *transactionHandler) splitPayPlans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.SplitPayPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SplitPayPlans", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	plans, err := h.transactionService.SplitPayPlans(c.Request.Context(), op, transactionID, req)
	if err != nil {
		respondServiceError(c, logger, err, "split payment plans")
		return
	}

	logger.Info("Payment plans split", slog.String("transaction_id", transactionID), slog.Int("installments", len(plans)))
	c.JSON(http.StatusOK, dto.ToPayPlanResponses(plans))
}

func (h *transactionHandler) recordDelivery(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.RecordDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordDelivery", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.RecordDelivery(c.Request.Context(), op, transactionID, req)
	if err != nil {
		respondServiceError(c, logger, err, "record delivery")
		return
	}

	logger.Info("Delivery recorded", slog.String("transaction_id", transactionID), slog.Bool("delivered", txn.Delivered))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listHistories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	histories, err := h.historyService.ListHistoriesByTransaction(c.Request.Context(), op, transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "list transaction histories")
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryResponses(histories))
}
