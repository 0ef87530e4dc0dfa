package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fffx/bonsaiERP/internal/apperrors"
	"github.com/fffx/bonsaiERP/internal/core/domain"
	portsrepo "github.com/fffx/bonsaiERP/internal/core/ports/repositories"
	"github.com/fffx/bonsaiERP/internal/models"
	"github.com/fffx/bonsaiERP/internal/utils/mapping"
	"github.com/fffx/bonsaiERP/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for account ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const ledgerColumns = `account_ledger_id, organisation_id, account_id, payment_id, transaction_id,
	       currency_id, contact_id, amount, date, income, conciliation, description, reference, active,
	       created_at, created_by, last_updated_at, last_updated_by`

// scanLedgerRow scans one account_ledgers row into a model.
func scanLedgerRow(row pgx.Row) (*models.AccountLedger, error) {
	var m models.AccountLedger
	var paymentID, transactionID sql.NullString

	err := row.Scan(
		&m.AccountLedgerID,
		&m.OrganisationID,
		&m.AccountID,
		&paymentID,
		&transactionID,
		&m.CurrencyID,
		&m.ContactID,
		&m.Amount,
		&m.Date,
		&m.Income,
		&m.Conciliation,
		&m.Description,
		&m.Reference,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if paymentID.Valid {
		m.PaymentID = &paymentID.String
	}
	if transactionID.Valid {
		m.TransactionID = &transactionID.String
	}
	return &m, nil
}

func insertLedgerEntry(ctx context.Context, tx pgx.Tx, entry domain.AccountLedger) error {
	m := mapping.ToModelAccountLedger(entry)
	_, err := tx.Exec(ctx, insertLedgerEntryQuery,
		m.AccountLedgerID,
		m.OrganisationID,
		m.AccountID,
		m.PaymentID,
		m.TransactionID,
		m.CurrencyID,
		m.ContactID,
		m.Amount,
		m.Date,
		m.Income,
		m.Conciliation,
		m.Description,
		m.Reference,
		m.Active,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entry "+m.AccountLedgerID, err)
	}
	return nil
}

// SaveEntry persists a standalone entry, adjusting the account amount when the
// entry posts already conciliated.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.AccountLedger) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertLedgerEntry(ctx, tx, entry); err != nil {
		return err
	}
	if entry.Conciliation {
		if err := adjustAccountAmount(ctx, tx, entry.AccountID, entry.SignedAmount(), entry.CreatedBy); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// SaveTransference persists the paired out and in entries and moves both
// account amounts in one DB transaction.
func (r *PgxLedgerRepository) SaveTransference(ctx context.Context, out domain.AccountLedger, in domain.AccountLedger) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertLedgerEntry(ctx, tx, out); err != nil {
		return err
	}
	if err := insertLedgerEntry(ctx, tx, in); err != nil {
		return err
	}
	if err := adjustAccountAmount(ctx, tx, out.AccountID, out.SignedAmount(), out.CreatedBy); err != nil {
		return err
	}
	if err := adjustAccountAmount(ctx, tx, in.AccountID, in.SignedAmount(), in.CreatedBy); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// lockEntryForUpdate loads an entry under FOR UPDATE inside tx.
func (r *PgxLedgerRepository) lockEntryForUpdate(ctx context.Context, tx pgx.Tx, organisationID, accountLedgerID string) (*domain.AccountLedger, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM account_ledgers
		WHERE account_ledger_id = $1 AND organisation_id = $2
		FOR UPDATE;
	`
	m, err := scanLedgerRow(tx.QueryRow(ctx, query, accountLedgerID, organisationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock ledger entry "+accountLedgerID, err)
	}
	entry := mapping.ToDomainAccountLedger(*m)
	return &entry, nil
}

// ConciliateEntry marks a pending entry conciliated, adjusts the account
// amount and settles the payment behind it, all in one DB transaction.
func (r *PgxLedgerRepository) ConciliateEntry(ctx context.Context, operator domain.Operator, accountLedgerID string) (*domain.AccountLedger, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	entry, err := r.lockEntryForUpdate(ctx, tx, operator.OrganisationID, accountLedgerID)
	if err != nil {
		return nil, err
	}
	if !entry.Active {
		return nil, fmt.Errorf("%w: entry is inactive", apperrors.ErrConsistency)
	}
	if entry.Conciliation {
		return nil, fmt.Errorf("%w: entry already conciliated", apperrors.ErrConsistency)
	}

	now := time.Now().UTC()
	_, err = tx.Exec(ctx, `
		UPDATE account_ledgers
		SET conciliation = true, last_updated_at = $2, last_updated_by = $3
		WHERE account_ledger_id = $1;
	`, accountLedgerID, now, operator.UserID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to conciliate ledger entry "+accountLedgerID, err)
	}

	if err := adjustAccountAmount(ctx, tx, entry.AccountID, entry.SignedAmount(), operator.UserID); err != nil {
		return nil, err
	}

	if entry.PaymentID != nil {
		_, err = tx.Exec(ctx, `
			UPDATE payments
			SET state = $2, last_updated_at = $3, last_updated_by = $4
			WHERE payment_id = $1;
		`, *entry.PaymentID, models.PaymentState(domain.PaymentPaid), now, operator.UserID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to settle payment "+*entry.PaymentID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.Conciliation = true
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = operator.UserID
	return entry, nil
}

// DeactivateEntry marks a standalone entry inactive, reversing its effect on
// the account amount when it was conciliated.
func (r *PgxLedgerRepository) DeactivateEntry(ctx context.Context, operator domain.Operator, accountLedgerID string) (*domain.AccountLedger, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	entry, err := r.lockEntryForUpdate(ctx, tx, operator.OrganisationID, accountLedgerID)
	if err != nil {
		return nil, err
	}
	if !entry.Active {
		return nil, fmt.Errorf("%w: entry already deactivated", apperrors.ErrConsistency)
	}

	now := time.Now().UTC()
	description := domain.ReversalPrefix + entry.Description
	_, err = tx.Exec(ctx, `
		UPDATE account_ledgers
		SET active = false, description = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_ledger_id = $1;
	`, accountLedgerID, description, now, operator.UserID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to deactivate ledger entry "+accountLedgerID, err)
	}

	if entry.Conciliation {
		if err := adjustAccountAmount(ctx, tx, entry.AccountID, entry.SignedAmount().Neg(), operator.UserID); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.Active = false
	entry.Description = description
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = operator.UserID
	return entry, nil
}

// FindEntryByID retrieves a ledger entry by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, organisationID, accountLedgerID string) (*domain.AccountLedger, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM account_ledgers
		WHERE account_ledger_id = $1 AND organisation_id = $2;
	`
	m, err := scanLedgerRow(r.Pool.QueryRow(ctx, query, accountLedgerID, organisationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry by ID "+accountLedgerID, err)
	}

	entry := mapping.ToDomainAccountLedger(*m)
	return &entry, nil
}

// FindEntryByPaymentID retrieves the ledger entry posted for a payment.
func (r *PgxLedgerRepository) FindEntryByPaymentID(ctx context.Context, paymentID string) (*domain.AccountLedger, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM account_ledgers
		WHERE payment_id = $1;
	`
	m, err := scanLedgerRow(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry for payment "+paymentID, err)
	}

	entry := mapping.ToDomainAccountLedger(*m)
	return &entry, nil
}

// ListEntriesByAccount retrieves a paginated list of entries for an account
// using token-based pagination on (date, created_at) descending.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, organisationID, accountID string, limit int, nextToken *string) ([]domain.AccountLedger, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + ledgerColumns + `
		FROM account_ledgers
		WHERE account_id = $1 AND organisation_id = $2
	`
	orderByClause := `ORDER BY date DESC, created_at DESC`

	args := []interface{}{accountID, organisationID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (date, created_at) < ($3, $4)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries for account "+accountID, err)
	}
	defer rows.Close()

	results := []models.AccountLedger{}
	for rows.Next() {
		m, err := scanLedgerRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row for account "+accountID, err)
		}
		results = append(results, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entry rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		results = results[:limit]
	}

	return mapping.ToDomainAccountLedgerSlice(results), nextTokenVal, nil
}
