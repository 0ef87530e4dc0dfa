package services

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/fffx/bonsaiERP/internal/dto"
)

// AccountReaderSvc defines read operations for money accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, op domain.Operator, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts of the operator's organisation.
	ListAccounts(ctx context.Context, op domain.Operator) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for money accounts
type AccountWriterSvc interface {
	// CreateAccount registers a new bank or cash register account.
	CreateAccount(ctx context.Context, op domain.Operator, req dto.CreateAccountRequest) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
