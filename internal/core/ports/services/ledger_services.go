package services

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/fffx/bonsaiERP/internal/dto"
)

// LedgerReaderSvc defines read operations for account ledger entries
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a specific ledger entry.
	GetEntryByID(ctx context.Context, op domain.Operator, accountLedgerID string) (*domain.AccountLedger, error)

	// ListEntriesByAccount retrieves a paginated list of entries for an account.
	ListEntriesByAccount(ctx context.Context, op domain.Operator, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// LedgerWriterSvc defines write operations for account ledger entries
type LedgerWriterSvc interface {
	// CreateEntry posts a standalone income or expense entry against an account.
	CreateEntry(ctx context.Context, op domain.Operator, req dto.CreateEntryRequest) (*domain.AccountLedger, error)

	// CreateTransference moves money between two accounts, converting through the
	// exchange rate when their currencies differ.
	CreateTransference(ctx context.Context, op domain.Operator, req dto.TransferenceRequest) (*domain.AccountLedger, error)

	// ConciliateEntry confirms a pending bank entry, applying it to the account amount.
	ConciliateEntry(ctx context.Context, op domain.Operator, accountLedgerID string) (*domain.AccountLedger, error)

	// DeactivateEntry voids a standalone entry. Conciliated bank entries stay put and
	// the result reports why.
	DeactivateEntry(ctx context.Context, op domain.Operator, accountLedgerID string) (*domain.AccountLedger, domain.DeactivationResult, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
