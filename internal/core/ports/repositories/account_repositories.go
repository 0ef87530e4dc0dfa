package repositories

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
)

// AccountReader defines read operations for accounts
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, organisationID, accountID string) (*domain.Account, error)

	// ListAccountsByOrganisation retrieves all accounts of an organisation.
	ListAccountsByOrganisation(ctx context.Context, organisationID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for accounts
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
