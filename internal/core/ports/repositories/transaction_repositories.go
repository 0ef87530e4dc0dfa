package repositories

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
)

// TransactionReader defines read operations for transactions and their line items
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its line items.
	FindTransactionByID(ctx context.Context, organisationID, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByOrganisation retrieves a paginated list of transactions using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactionsByOrganisation(ctx context.Context, organisationID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transactions
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and its line items atomically.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction replaces a transaction's mutable fields and line items.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionWithHistory replaces a transaction's mutable fields and line items,
	// recording a history snapshot of the prior version in the same database transaction.
	UpdateTransactionWithHistory(ctx context.Context, txn domain.Transaction, history domain.TransactionHistory) error

	// ApproveTransactionWithSchedule flips a draft to approved and writes its credit
	// schedule in the same database transaction. A transaction no longer in draft
	// state fails with ErrConflict.
	ApproveTransactionWithSchedule(ctx context.Context, txn domain.Transaction, plans []domain.PayPlan) error
}

// PayPlanReader defines read operations for payment schedules
type PayPlanReader interface {
	// FindPayPlansByTransaction retrieves the plans of a transaction ordered by payment date then ID.
	FindPayPlansByTransaction(ctx context.Context, transactionID string) ([]domain.PayPlan, error)
}

// PayPlanWriter defines write operations for payment schedules
type PayPlanWriter interface {
	// SavePayPlans replaces the unpaid plans of a transaction with the given set atomically.
	SavePayPlans(ctx context.Context, transactionID string, plans []domain.PayPlan) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	PayPlanReader
	PayPlanWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
