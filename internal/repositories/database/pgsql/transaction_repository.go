package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fffx/bonsaiERP/internal/apperrors"
	"github.com/fffx/bonsaiERP/internal/core/domain"
	portsrepo "github.com/fffx/bonsaiERP/internal/core/ports/repositories"
	"github.com/fffx/bonsaiERP/internal/models"
	"github.com/fffx/bonsaiERP/internal/utils/mapping"
	"github.com/fffx/bonsaiERP/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction, line
// item and pay plan data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, organisation_id, type, currency_id, exchange_rate, contact_id,
	       ref_number, bill_number, description, date, total, balance, discount, state, operation,
	       delivered, devolution, credit_ref, payment_date,
	       created_at, created_by, last_updated_at, last_updated_by`

const insertLineItemQuery = `
	INSERT INTO transaction_details (line_item_id, transaction_id, item_id, description, price, quantity, delivered)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// SaveTransaction persists a transaction and its line items within a DB transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelTxn := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelTxn.TransactionID,
		modelTxn.OrganisationID,
		modelTxn.Type,
		modelTxn.CurrencyID,
		modelTxn.ExchangeRate,
		modelTxn.ContactID,
		modelTxn.RefNumber,
		modelTxn.BillNumber,
		modelTxn.Description,
		modelTxn.Date,
		modelTxn.Total,
		modelTxn.Balance,
		modelTxn.Discount,
		modelTxn.State,
		modelTxn.Operation,
		modelTxn.Delivered,
		modelTxn.Devolution,
		modelTxn.CreditRef,
		modelTxn.PaymentDate,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	for _, li := range txn.LineItems {
		modelLine := mapping.ToModelLineItem(li)
		batch.Queue(insertLineItemQuery,
			modelLine.LineItemID,
			modelLine.TransactionID,
			modelLine.ItemID,
			modelLine.Description,
			modelLine.Price,
			modelLine.Quantity,
			modelLine.Delivered,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert line items for transaction "+modelTxn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// updateTransactionRow rewrites the mutable columns of a transaction.
func updateTransactionRow(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)
	updateQuery := `
		UPDATE transactions
		SET contact_id = $3, ref_number = $4, bill_number = $5, description = $6, date = $7,
		    currency_id = $8, exchange_rate = $9, total = $10, balance = $11, discount = $12,
		    state = $13, delivered = $14, devolution = $15, payment_date = $16,
		    last_updated_at = $17, last_updated_by = $18
		WHERE transaction_id = $1 AND organisation_id = $2;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		modelTxn.TransactionID,
		modelTxn.OrganisationID,
		modelTxn.ContactID,
		modelTxn.RefNumber,
		modelTxn.BillNumber,
		modelTxn.Description,
		modelTxn.Date,
		modelTxn.CurrencyID,
		modelTxn.ExchangeRate,
		modelTxn.Total,
		modelTxn.Balance,
		modelTxn.Discount,
		modelTxn.State,
		modelTxn.Delivered,
		modelTxn.Devolution,
		modelTxn.PaymentDate,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+modelTxn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// replaceLineItems rewrites the line items wholesale; the service already
// merged the edits in.
func replaceLineItems(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	if _, err := tx.Exec(ctx, `DELETE FROM transaction_details WHERE transaction_id = $1;`, txn.TransactionID); err != nil {
		return apperrors.NewAppError(500, "failed to clear line items for transaction "+txn.TransactionID, err)
	}
	batch := &pgx.Batch{}
	for _, li := range txn.LineItems {
		modelLine := mapping.ToModelLineItem(li)
		batch.Queue(insertLineItemQuery,
			modelLine.LineItemID,
			modelLine.TransactionID,
			modelLine.ItemID,
			modelLine.Description,
			modelLine.Price,
			modelLine.Quantity,
			modelLine.Delivered,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert line items for transaction "+txn.TransactionID, err)
	}
	return nil
}

// UpdateTransaction replaces the transaction's mutable fields and line items
// in one DB transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateTransactionRow(ctx, tx, txn); err != nil {
		return err
	}
	if err := replaceLineItems(ctx, tx, txn); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransactionWithHistory replaces the transaction's mutable fields and
// line items and records the prior-version snapshot, all in one DB transaction.
func (r *PgxTransactionRepository) UpdateTransactionWithHistory(ctx context.Context, txn domain.Transaction, history domain.TransactionHistory) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateTransactionRow(ctx, tx, txn); err != nil {
		return err
	}
	if err := replaceLineItems(ctx, tx, txn); err != nil {
		return err
	}

	modelHistory := mapping.ToModelTransactionHistory(history)
	historyQuery := `
		INSERT INTO transaction_histories (history_id, transaction_id, user_id, data, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = tx.Exec(ctx, historyQuery,
		modelHistory.HistoryID,
		modelHistory.TransactionID,
		modelHistory.UserID,
		modelHistory.Data,
		modelHistory.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert history for transaction "+txn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// ApproveTransactionWithSchedule flips a draft to approved and writes its
// credit schedule in one DB transaction. The state predicate catches a
// concurrent approval between the service's read and this statement.
func (r *PgxTransactionRepository) ApproveTransactionWithSchedule(ctx context.Context, txn domain.Transaction, plans []domain.PayPlan) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelTxn := mapping.ToModelTransaction(txn)
	approveQuery := `
		UPDATE transactions
		SET state = $3, credit_ref = $4, description = $5, last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1 AND organisation_id = $2 AND state = $8;
	`
	tag, err := tx.Exec(ctx, approveQuery,
		modelTxn.TransactionID,
		modelTxn.OrganisationID,
		modelTxn.State,
		modelTxn.CreditRef,
		modelTxn.Description,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
		string(domain.StateDraft),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to approve transaction "+modelTxn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
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
			return apperrors.NewAppError(500, "failed to open credit schedule for transaction "+modelTxn.TransactionID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// scanTransactionRow scans one transactions row into a model.
func scanTransactionRow(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	var paymentDate sql.NullTime

	err := row.Scan(
		&m.TransactionID,
		&m.OrganisationID,
		&m.Type,
		&m.CurrencyID,
		&m.ExchangeRate,
		&m.ContactID,
		&m.RefNumber,
		&m.BillNumber,
		&m.Description,
		&m.Date,
		&m.Total,
		&m.Balance,
		&m.Discount,
		&m.State,
		&m.Operation,
		&m.Delivered,
		&m.Devolution,
		&m.CreditRef,
		&paymentDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if paymentDate.Valid {
		m.PaymentDate = &paymentDate.Time
	}
	return &m, nil
}

// FindTransactionByID retrieves a transaction with its line items.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, organisationID, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND organisation_id = $2;
	`
	modelTxn, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID, organisationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	lines, err := r.findLineItems(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	domainTxn := mapping.ToDomainTransaction(*modelTxn)
	domainTxn.LineItems = lines
	return &domainTxn, nil
}

func (r *PgxTransactionRepository) findLineItems(ctx context.Context, transactionID string) ([]domain.LineItem, error) {
	query := `
		SELECT line_item_id, transaction_id, item_id, description, price, quantity, delivered
		FROM transaction_details
		WHERE transaction_id = $1
		ORDER BY line_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for transaction "+transactionID, err)
	}
	defer rows.Close()

	lines := []models.LineItem{}
	for rows.Next() {
		var li models.LineItem
		err := rows.Scan(
			&li.LineItemID,
			&li.TransactionID,
			&li.ItemID,
			&li.Description,
			&li.Price,
			&li.Quantity,
			&li.Delivered,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row for transaction "+transactionID, err)
		}
		lines = append(lines, li)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows for transaction "+transactionID, err)
	}

	return mapping.ToDomainLineItemSlice(lines), nil
}

// ListTransactionsByOrganisation retrieves a paginated list of transactions
// using token-based pagination on (date, created_at) descending.
func (r *PgxTransactionRepository) ListTransactionsByOrganisation(ctx context.Context, organisationID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// fetch one extra row to know whether a next page exists
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE organisation_id = $1
	`
	orderByClause := `ORDER BY date DESC, created_at DESC`

	args := []interface{}{organisationID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for organisation "+organisationID, err)
	}
	defer rows.Close()

	results := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for organisation "+organisationID, err)
		}
		results = append(results, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for organisation "+organisationID, err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		results = results[:limit]
	}

	domainTxns := make([]domain.Transaction, len(results))
	for i, m := range results {
		domainTxns[i] = mapping.ToDomainTransaction(m)
	}
	return domainTxns, nextTokenVal, nil
}

// FindPayPlansByTransaction retrieves the plans of a transaction in absorption order.
func (r *PgxTransactionRepository) FindPayPlansByTransaction(ctx context.Context, transactionID string) ([]domain.PayPlan, error) {
	query := `
		SELECT pay_plan_id, transaction_id, amount, interests_penalties, payment_date, alert_date, paid
		FROM pay_plans
		WHERE transaction_id = $1
		ORDER BY payment_date, pay_plan_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pay plans for transaction "+transactionID, err)
	}
	defer rows.Close()

	plans := []models.PayPlan{}
	for rows.Next() {
		var p models.PayPlan
		err := rows.Scan(
			&p.PayPlanID,
			&p.TransactionID,
			&p.Amount,
			&p.InterestsPenalties,
			&p.PaymentDate,
			&p.AlertDate,
			&p.Paid,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan pay plan row for transaction "+transactionID, err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating pay plan rows for transaction "+transactionID, err)
	}

	return mapping.ToDomainPayPlanSlice(plans), nil
}

// SavePayPlans replaces the unpaid plans of a transaction with the given set.
func (r *PgxTransactionRepository) SavePayPlans(ctx context.Context, transactionID string, plans []domain.PayPlan) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM pay_plans WHERE transaction_id = $1 AND paid = false;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to clear unpaid plans for transaction "+transactionID, err)
	}

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
		return apperrors.NewAppError(500, "failed to insert pay plans for transaction "+transactionID, err)
	}

	return r.Commit(ctx, tx)
}
