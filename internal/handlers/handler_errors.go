package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fffx/bonsaiERP/internal/apperrors"
	"github.com/fffx/bonsaiERP/internal/metrics"
)

// trackPaymentConflict counts rejections from the optimistic balance check.
func trackPaymentConflict(err error) {
	if errors.Is(err, apperrors.ErrConflict) {
		metrics.PaymentConflicts.Inc()
	}
}

// respondServiceError translates service layer errors into HTTP responses.
// Field-scoped validation failures come back as a 422 with the field map so
// clients can attach messages to inputs.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	if ve, ok := apperrors.AsValidation(err); ok {
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": ve})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action))
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("action", action))
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrent modification", slog.String("action", action))
		c.JSON(http.StatusConflict, gin.H{"error": "The record changed concurrently, retry the operation"})
	case errors.Is(err, apperrors.ErrConsistency):
		logger.Warn("Consistency error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Service call failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
