package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fffx/bonsaiERP/internal/core/domain"
)

const operatorKey = contextKey("operator")

// Header names carrying the caller identity. The surrounding platform terminates
// authentication and forwards these on every request.
const (
	HeaderOrganisationID = "X-Organisation-ID"
	HeaderUserID         = "X-User-ID"
)

// OperatorMiddleware extracts the acting organisation and user from request
// headers and stores them as a domain.Operator in the Gin context. Requests
// missing either header are rejected.
func OperatorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		op := domain.Operator{
			OrganisationID: c.GetHeader(HeaderOrganisationID),
			UserID:         c.GetHeader(HeaderUserID),
		}
		if op.OrganisationID == "" || op.UserID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing X-Organisation-ID or X-User-ID header"})
			return
		}

		c.Set(string(operatorKey), op)
		c.Next()
	}
}

// GetOperatorFromContext retrieves the acting operator from the Gin context.
// It returns the operator and a boolean indicating if it was found.
func GetOperatorFromContext(c *gin.Context) (domain.Operator, bool) {
	val, exists := c.Get(string(operatorKey))
	if !exists {
		return domain.Operator{}, false
	}

	op, ok := val.(domain.Operator)
	if !ok {
		return domain.Operator{}, false
	}

	return op, true
}
