package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	portsrepo "github.com/fffx/bonsaiERP/internal/core/ports/repositories"
	portssvc "github.com/fffx/bonsaiERP/internal/core/ports/services"
	"github.com/fffx/bonsaiERP/internal/dto"
	"github.com/fffx/bonsaiERP/internal/middleware"
)

// currencyService manages the currency catalogue.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

// Ensure currencyService implements the portssvc.CurrencySvcFacade interface
var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// GetCurrencyByID retrieves a specific currency by its code.
func (s *currencyService) GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByID(ctx, currencyID)
}

// ListCurrencies retrieves all known currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}

// CreateCurrency registers a new currency.
func (s *currencyService) CreateCurrency(ctx context.Context, op domain.Operator, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency := domain.Currency{
		CurrencyID: req.CurrencyID,
		Name:       req.Name,
		Symbol:     req.Symbol,
		Plural:     req.Plural,
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		logger.Error("Failed to save currency", slog.String("currency_id", req.CurrencyID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}

	logger.Info("Currency created", slog.String("currency_id", currency.CurrencyID), slog.String("created_by", op.UserID))
	return &currency, nil
}
