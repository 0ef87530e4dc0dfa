package services

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/fffx/bonsaiERP/internal/dto"
)

// CurrencyReaderSvc defines read operations for currencies
type CurrencyReaderSvc interface {
	// GetCurrencyByID retrieves a specific currency by its code.
	GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// ListCurrencies retrieves all known currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currencies
type CurrencyWriterSvc interface {
	// CreateCurrency registers a new currency.
	CreateCurrency(ctx context.Context, op domain.Operator, req dto.CreateCurrencyRequest) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
