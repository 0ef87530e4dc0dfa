package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fffx/bonsaiERP/internal/apperrors"
	"github.com/fffx/bonsaiERP/internal/core/domain"
	portsrepo "github.com/fffx/bonsaiERP/internal/core/ports/repositories"
	portssvc "github.com/fffx/bonsaiERP/internal/core/ports/services"
	"github.com/fffx/bonsaiERP/internal/dto"
	"github.com/fffx/bonsaiERP/internal/middleware"
)

// accountService manages bank and cash register accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		currencySvc: currencySvc,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, op domain.Operator, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, op.OrganisationID, accountID)
}

// ListAccounts retrieves all accounts of the operator's organisation.
func (s *accountService) ListAccounts(ctx context.Context, op domain.Operator) ([]domain.Account, error) {
	return s.accountRepo.ListAccountsByOrganisation(ctx, op.OrganisationID)
}

// CreateAccount registers a new bank or cash register account.
func (s *accountService) CreateAccount(ctx context.Context, op domain.Operator, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() {
		return nil, apperrors.NewFieldError("amount", "opening amount must not be negative")
	}
	if _, err := s.currencySvc.GetCurrencyByID(ctx, req.CurrencyID); err != nil {
		return nil, apperrors.NewFieldError("currency_id", "unknown currency")
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganisationID: op.OrganisationID,
		Type:           req.Type,
		Name:           req.Name,
		Number:         req.Number,
		CurrencyID:     req.CurrencyID,
		Amount:         req.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     op.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: op.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("type", string(account.Type)),
	)
	return &account, nil
}
