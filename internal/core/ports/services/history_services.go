package services

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
)

// HistoryReaderSvc defines read operations for transaction history snapshots
type HistoryReaderSvc interface {
	// ListHistoriesByTransaction retrieves the edit snapshots of a transaction, newest first.
	ListHistoriesByTransaction(ctx context.Context, op domain.Operator, transactionID string) ([]domain.TransactionHistory, error)
}

// HistorySvcFacade combines all history-related service interfaces
type HistorySvcFacade interface {
	HistoryReaderSvc
}
