package repositories

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
)

// LedgerReader defines read operations for account ledger entries
type LedgerReader interface {
	// FindEntryByID retrieves a specific ledger entry by its unique identifier.
	FindEntryByID(ctx context.Context, organisationID, accountLedgerID string) (*domain.AccountLedger, error)

	// FindEntryByPaymentID retrieves the ledger entry posted for a payment.
	FindEntryByPaymentID(ctx context.Context, paymentID string) (*domain.AccountLedger, error)

	// ListEntriesByAccount retrieves a paginated list of entries for an account using
	// token-based pagination. It returns the entries, a token for the next page, and an error.
	ListEntriesByAccount(ctx context.Context, organisationID, accountID string, limit int, nextToken *string) ([]domain.AccountLedger, *string, error)
}

// LedgerWriter defines write operations for account ledger entries
type LedgerWriter interface {
	// SaveEntry persists a standalone ledger entry. Entries posted already conciliated
	// adjust the account amount in the same database transaction.
	SaveEntry(ctx context.Context, entry domain.AccountLedger) error

	// SaveTransference persists the paired out and in entries of a transfer between two
	// accounts, adjusting both account amounts in one database transaction.
	SaveTransference(ctx context.Context, out domain.AccountLedger, in domain.AccountLedger) error

	// ConciliateEntry marks a pending entry conciliated, adjusts the account amount and,
	// when the entry belongs to a payment, moves that payment to the paid state. All of
	// it happens in one database transaction.
	ConciliateEntry(ctx context.Context, operator domain.Operator, accountLedgerID string) (*domain.AccountLedger, error)

	// DeactivateEntry marks a standalone entry inactive and reverses its effect on the
	// account amount when the entry was conciliated.
	DeactivateEntry(ctx context.Context, operator domain.Operator, accountLedgerID string) (*domain.AccountLedger, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
