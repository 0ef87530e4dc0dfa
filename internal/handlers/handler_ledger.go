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

// ledgerHandler handles HTTP requests related to account ledger entries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers routes related to ledger entries.
func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ls)

	entries := rg.Group("/ledger-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/conciliate", h.conciliateEntry)
		entries.DELETE("/:entryID", h.deactivateEntry)
	}

	rg.POST("/transferences", h.createTransference)
	rg.GET("/accounts/:accountID/ledger-entries", h.listEntriesByAccount)
}

func (h *ledgerHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), op, req)
	if err != nil {
		respondServiceError(c, logger, err, "create ledger entry")
		return
	}

	metrics.LedgerEntriesPosted.Inc()
	logger.Info("Ledger entry created",
		slog.String("account_ledger_id", entry.AccountLedgerID),
		slog.String("account_id", entry.AccountID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerHandler) createTransference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransference", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.CreateTransference(c.Request.Context(), op, req)
	if err != nil {
		respondServiceError(c, logger, err, "create transference")
		return
	}

	metrics.LedgerEntriesPosted.Add(2)
	logger.Info("Transference created",
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), op, entryID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve ledger entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerHandler) listEntriesByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntriesByAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.ledgerService.ListEntriesByAccount(c.Request.Context(), op, accountID, params)
	if err != nil {
		respondServiceError(c, logger, err, "list ledger entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ledgerHandler) conciliateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.ConciliateEntry(c.Request.Context(), op, entryID)
	if err != nil {
		respondServiceError(c, logger, err, "conciliate ledger entry")
		return
	}

	logger.Info("Ledger entry conciliated", slog.String("account_ledger_id", entryID))
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerHandler) deactivateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	op, ok := middleware.GetOperatorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, result, err := h.ledgerService.DeactivateEntry(c.Request.Context(), op, entryID)
	if err != nil {
		respondServiceError(c, logger, err, "deactivate ledger entry")
		return
	}

	resp := dto.DeactivateEntryResponse{
		Deactivated: result.Deactivated,
		Reason:      result.Reason,
		Entry:       dto.ToLedgerEntryResponse(entry),
	}
	if result.Blocked {
		logger.Info("Ledger entry deactivation blocked",
			slog.String("account_ledger_id", entryID),
			slog.String("reason", result.Reason))
	} else {
		logger.Info("Ledger entry deactivated", slog.String("account_ledger_id", entryID))
	}
	c.JSON(http.StatusOK, resp)
}
