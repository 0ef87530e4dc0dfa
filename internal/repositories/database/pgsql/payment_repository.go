package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fffx/bonsaiERP/internal/apperrors"
	"github.com/fffx/bonsaiERP/internal/core/domain"
	portsrepo "github.com/fffx/bonsaiERP/internal/core/ports/repositories"
	"github.com/fffx/bonsaiERP/internal/models"
	"github.com/fffx/bonsaiERP/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryWithTx {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryWithTx
var _ portsrepo.PaymentRepositoryWithTx = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, organisation_id, account_id, transaction_id, currency_id, contact_id,
	       amount, interests_penalties, exchange_rate, date, reference, state, active,
	       created_at, created_by, last_updated_at, last_updated_by`

// upsertPayPlanQuery inserts a plan or rewrites it when the id already exists.
// Payment application touches existing plans (marking them paid, carrying
// interest) and may add one leftover plan in a single batch.
const upsertPayPlanQuery = `
	INSERT INTO pay_plans (pay_plan_id, transaction_id, amount, interests_penalties, payment_date, alert_date, paid)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (pay_plan_id) DO UPDATE
	SET amount = EXCLUDED.amount,
	    interests_penalties = EXCLUDED.interests_penalties,
	    payment_date = EXCLUDED.payment_date,
	    alert_date = EXCLUDED.alert_date,
	    paid = EXCLUDED.paid;
`

const insertLedgerEntryQuery = `
	INSERT INTO account_ledgers (account_ledger_id, organisation_id, account_id, payment_id, transaction_id,
	                             currency_id, contact_id, amount, date, income, conciliation, description,
	                             reference, active, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
`

// patchTransactionBalance applies the transaction patch with an optimistic
// predicate on the prior balance. Zero rows means another writer moved the
// balance first and the whole operation must be retried from a fresh read.
func patchTransactionBalance(ctx context.Context, tx pgx.Tx, txn domain.Transaction, priorBalance decimal.Decimal) error {
	modelTxn := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET balance = $3, state = $4, devolution = $5, payment_date = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $1 AND balance = $2;
	`
	tag, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		priorBalance,
		modelTxn.Balance,
		modelTxn.State,
		modelTxn.Devolution,
		modelTxn.PaymentDate,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for transaction "+modelTxn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// adjustAccountAmount shifts an account's running amount by delta.
func adjustAccountAmount(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, updatedBy string) error {
	query := `
		UPDATE accounts
		SET amount = amount + $2, last_updated_at = now(), last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := tx.Exec(ctx, query, accountID, delta, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to adjust amount for account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePayment persists the payment, its ledger entry, the reworked plans and
// the transaction patch in one DB transaction.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, entry domain.AccountLedger, plans []domain.PayPlan, txn domain.Transaction, priorBalance decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock the transaction row first so concurrent payments serialize here.
	var locked string
	if err := tx.QueryRow(ctx, `SELECT transaction_id FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, txn.TransactionID).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock transaction "+txn.TransactionID, err)
	}

	if err := patchTransactionBalance(ctx, tx, txn, priorBalance); err != nil {
		return err
	}

	modelPayment := mapping.ToModelPayment(payment)
	insertPaymentQuery := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, insertPaymentQuery,
		modelPayment.PaymentID,
		modelPayment.OrganisationID,
		modelPayment.AccountID,
		modelPayment.TransactionID,
		modelPayment.CurrencyID,
		modelPayment.ContactID,
		modelPayment.Amount,
		modelPayment.InterestsPenalties,
		modelPayment.ExchangeRate,
		modelPayment.Date,
		modelPayment.Reference,
		modelPayment.State,
		modelPayment.Active,
		modelPayment.CreatedAt,
		modelPayment.CreatedBy,
		modelPayment.LastUpdatedAt,
		modelPayment.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+modelPayment.PaymentID, err)
	}

	modelEntry := mapping.ToModelAccountLedger(entry)
	_, err = tx.Exec(ctx, insertLedgerEntryQuery,
		modelEntry.AccountLedgerID,
		modelEntry.OrganisationID,
		modelEntry.AccountID,
		modelEntry.PaymentID,
		modelEntry.TransactionID,
		modelEntry.CurrencyID,
		modelEntry.ContactID,
		modelEntry.Amount,
		modelEntry.Date,
		modelEntry.Income,
		modelEntry.Conciliation,
		modelEntry.Description,
		modelEntry.Reference,
		modelEntry.Active,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entry for payment "+modelPayment.PaymentID, err)
	}

	if len(plans) > 0 {
		batch := &pgx.Batch{}
		for _, p := range plans {
			modelPlan := mapping.ToModelPayPlan(p)
			batch.Queue(upsertPayPlanQuery,
				modelPlan.PayPlanID,
				modelPlan.TransactionID,
				modelPlan.Amount,
				modelPlan.InterestsPenalties,
				modelPlan.PaymentDate,
				modelPlan.AlertDate,
				modelPlan.Paid,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to rework pay plans for transaction "+txn.TransactionID, err)
		}
	}

	// Conciliated entries hit the account amount immediately; pending bank
	// entries wait for conciliation.
	if entry.Conciliation {
		if err := adjustAccountAmount(ctx, tx, entry.AccountID, entry.SignedAmount(), payment.CreatedBy); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeactivatePayment voids the payment and its ledger entry, reinstates the
// plan and restores the transaction balance in one DB transaction.
func (r *PgxPaymentRepository) DeactivatePayment(ctx context.Context, payment domain.Payment, entry domain.AccountLedger, reinstated domain.PayPlan, txn domain.Transaction, priorBalance decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var locked string
	if err := tx.QueryRow(ctx, `SELECT transaction_id FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, txn.TransactionID).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock transaction "+txn.TransactionID, err)
	}

	if err := patchTransactionBalance(ctx, tx, txn, priorBalance); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE payments
		SET active = false, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1 AND active = true;
	`, payment.PaymentID, payment.LastUpdatedAt, payment.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate payment "+payment.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		// another writer voided it between our read and this statement
		return apperrors.ErrConflict
	}

	// The conciliation predicate catches an entry conciliated between the
	// service's read and this statement; conciliated entries stay put.
	tag, err = tx.Exec(ctx, `
		UPDATE account_ledgers
		SET active = false, description = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_ledger_id = $1 AND conciliation = false;
	`, entry.AccountLedgerID, entry.Description, entry.LastUpdatedAt, entry.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate ledger entry "+entry.AccountLedgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	modelPlan := mapping.ToModelPayPlan(reinstated)
	_, err = tx.Exec(ctx, upsertPayPlanQuery,
		modelPlan.PayPlanID,
		modelPlan.TransactionID,
		modelPlan.Amount,
		modelPlan.InterestsPenalties,
		modelPlan.PaymentDate,
		modelPlan.AlertDate,
		modelPlan.Paid,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to reinstate pay plan for transaction "+txn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// scanPaymentRow scans one payments row into a model.
func scanPaymentRow(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.OrganisationID,
		&m.AccountID,
		&m.TransactionID,
		&m.CurrencyID,
		&m.ContactID,
		&m.Amount,
		&m.InterestsPenalties,
		&m.ExchangeRate,
		&m.Date,
		&m.Reference,
		&m.State,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, organisationID, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE payment_id = $1 AND organisation_id = $2;
	`
	m, err := scanPaymentRow(r.Pool.QueryRow(ctx, query, paymentID, organisationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}

	domainPayment := mapping.ToDomainPayment(*m)
	return &domainPayment, nil
}

// ListPaymentsByTransaction retrieves all payments against a transaction,
// newest first.
func (r *PgxPaymentRepository) ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE transaction_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for transaction "+transactionID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		m, err := scanPaymentRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for transaction "+transactionID, err)
		}
		payments = append(payments, mapping.ToDomainPayment(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for transaction "+transactionID, err)
	}

	return payments, nil
}
