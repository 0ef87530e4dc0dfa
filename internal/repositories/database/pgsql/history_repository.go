package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fffx/bonsaiERP/internal/apperrors"
	"github.com/fffx/bonsaiERP/internal/core/domain"
	portsrepo "github.com/fffx/bonsaiERP/internal/core/ports/repositories"
	"github.com/fffx/bonsaiERP/internal/models"
	"github.com/fffx/bonsaiERP/internal/utils/mapping"
)

type PgxHistoryRepository struct {
	BaseRepository
}

// newPgxHistoryRepository creates a new repository for transaction history data.
func newPgxHistoryRepository(pool *pgxpool.Pool) portsrepo.HistoryRepositoryFacade {
	return &PgxHistoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxHistoryRepository implements portsrepo.HistoryRepositoryFacade
var _ portsrepo.HistoryRepositoryFacade = (*PgxHistoryRepository)(nil)

// SaveHistory persists a transaction snapshot.
func (r *PgxHistoryRepository) SaveHistory(ctx context.Context, history domain.TransactionHistory) error {
	m := mapping.ToModelTransactionHistory(history)
	query := `
		INSERT INTO transaction_histories (history_id, transaction_id, user_id, data, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query, m.HistoryID, m.TransactionID, m.UserID, m.Data, m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert history for transaction "+m.TransactionID, err)
	}
	return nil
}

// ListHistoriesByTransaction retrieves the snapshots of a transaction, newest first.
func (r *PgxHistoryRepository) ListHistoriesByTransaction(ctx context.Context, transactionID string) ([]domain.TransactionHistory, error) {
	query := `
		SELECT history_id, transaction_id, user_id, data, created_at
		FROM transaction_histories
		WHERE transaction_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query histories for transaction "+transactionID, err)
	}
	defer rows.Close()

	histories := []domain.TransactionHistory{}
	for rows.Next() {
		var m models.TransactionHistory
		if err := rows.Scan(&m.HistoryID, &m.TransactionID, &m.UserID, &m.Data, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan history row for transaction "+transactionID, err)
		}
		histories = append(histories, mapping.ToDomainTransactionHistory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating history rows for transaction "+transactionID, err)
	}

	return histories, nil
}
