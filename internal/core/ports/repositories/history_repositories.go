package repositories

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
)

// HistoryReader defines read operations for transaction history snapshots
type HistoryReader interface {
	// ListHistoriesByTransaction retrieves the snapshots of a transaction, newest first.
	ListHistoriesByTransaction(ctx context.Context, transactionID string) ([]domain.TransactionHistory, error)
}

// HistoryWriter defines write operations for transaction history snapshots
type HistoryWriter interface {
	// SaveHistory persists a snapshot of a transaction prior to an edit.
	SaveHistory(ctx context.Context, history domain.TransactionHistory) error
}

// HistoryRepositoryFacade combines all history-related repository interfaces
type HistoryRepositoryFacade interface {
	HistoryReader
	HistoryWriter
}
