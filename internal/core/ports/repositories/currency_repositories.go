package repositories

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
)

// CurrencyReader defines read operations for currencies
type CurrencyReader interface {
	// FindCurrencyByID retrieves a specific currency by its ISO style code.
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// ListCurrencies retrieves all known currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currencies
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
