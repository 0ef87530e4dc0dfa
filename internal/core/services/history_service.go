package services

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	portsrepo "github.com/fffx/bonsaiERP/internal/core/ports/repositories"
	portssvc "github.com/fffx/bonsaiERP/internal/core/ports/services"
)

// historyService exposes the transaction audit trail.
type historyService struct {
	historyRepo portsrepo.HistoryRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(historyRepo portsrepo.HistoryRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.HistorySvcFacade {
	return &historyService{
		historyRepo: historyRepo,
		txnRepo:     txnRepo,
	}
}

// Ensure historyService implements the portssvc.HistorySvcFacade interface
var _ portssvc.HistorySvcFacade = (*historyService)(nil)

// ListHistoriesByTransaction retrieves the edit snapshots of a transaction,
// newest first. The transaction lookup doubles as the organisation check.
func (s *historyService) ListHistoriesByTransaction(ctx context.Context, op domain.Operator, transactionID string) ([]domain.TransactionHistory, error) {
	if _, err := s.txnRepo.FindTransactionByID(ctx, op.OrganisationID, transactionID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListHistoriesByTransaction(ctx, transactionID)
}
