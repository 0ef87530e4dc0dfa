package dto

import (
	"encoding/json"
	"time"

	"github.com/fffx/bonsaiERP/internal/core/domain"
)

// HistoryResponse defines the data returned for one transaction snapshot.
type HistoryResponse struct {
	HistoryID     string          `json:"historyID"`
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	Data          json.RawMessage `json:"data"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToHistoryResponse converts a domain.TransactionHistory to HistoryResponse DTO.
func ToHistoryResponse(h *domain.TransactionHistory) HistoryResponse {
	return HistoryResponse{
		HistoryID:     h.HistoryID,
		TransactionID: h.TransactionID,
		UserID:        h.UserID,
		Data:          h.Data,
		CreatedAt:     h.CreatedAt,
	}
}

// ToHistoryResponses converts a slice of domain.TransactionHistory to []HistoryResponse.
func ToHistoryResponses(histories []domain.TransactionHistory) []HistoryResponse {
	responses := make([]HistoryResponse, len(histories))
	for i, h := range histories {
		responses[i] = ToHistoryResponse(&h)
	}
	return responses
}
