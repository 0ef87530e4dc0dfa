package mapping

import (
	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/fffx/bonsaiERP/internal/models"
)

// ToModelTransactionHistory converts a domain history snapshot to its row.
func ToModelTransactionHistory(d domain.TransactionHistory) models.TransactionHistory {
	return models.TransactionHistory{
		HistoryID:     d.HistoryID,
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		Data:          d.Data,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransactionHistory converts a history row to the domain snapshot.
func ToDomainTransactionHistory(m models.TransactionHistory) domain.TransactionHistory {
	return domain.TransactionHistory{
		HistoryID:     m.HistoryID,
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Data:          m.Data,
		CreatedAt:     m.CreatedAt,
	}
}
