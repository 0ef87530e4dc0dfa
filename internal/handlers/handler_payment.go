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

// paymentHandler handles HTTP requests related to payments and devolutions.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
	}
}

// registerPaymentRoutes registers routes related to payments. Payments are
// created against a transaction, so the write routes nest under it.
func registerPaymentRoutes(rg *gin.RouterGroup, ps portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(ps)

	transactions := rg.Group("/transactions/:transactionID")
	{
		transactions.POST("/payments", h.applyPayment)
		transactions.GET("/payments", h.listPayments)
		transactions.POST("/devolutions", h.applyDevolution)
	}

	payments := rg.Group("/payments")
	{
		payments.GET("/:paymentID", h.getPayment)
		payments.DELETE("/:paymentID", h.deactivatePayment)
	}
}

func (h *paymentHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.ApplyPayment(c.Request.Context(), op, transactionID, req)
	if err != nil {
		trackPaymentConflict(err)
		respondServiceError(c, logger, err, "apply payment")
		return
	}

	metrics.PaymentsApplied.WithLabelValues("payment").Inc()
	logger.Info("Payment applied",
		slog.String("transaction_id", transactionID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) applyDevolution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.DevolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyDevolution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.ApplyDevolution(c.Request.Context(), op, transactionID, req)
	if err != nil {
		trackPaymentConflict(err)
		respondServiceError(c, logger, err, "apply devolution")
		return
	}

	metrics.PaymentsApplied.WithLabelValues("devolution").Inc()
	logger.Info("Devolution applied",
		slog.String("transaction_id", transactionID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payments, err := h.paymentService.ListPaymentsByTransaction(c.Request.Context(), op, transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "list payments")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), op, paymentID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) deactivatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.DeactivatePayment(c.Request.Context(), op, paymentID)
	if err != nil {
		trackPaymentConflict(err)
		respondServiceError(c, logger, err, "deactivate payment")
		return
	}

	logger.Info("Payment deactivated", slog.String("payment_id", paymentID))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}
