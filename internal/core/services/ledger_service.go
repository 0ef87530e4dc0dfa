package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fffx/bonsaiERP/internal/apperrors"
	"github.com/fffx/bonsaiERP/internal/core/domain"
	portsrepo "github.com/fffx/bonsaiERP/internal/core/ports/repositories"
	portssvc "github.com/fffx/bonsaiERP/internal/core/ports/services"
	"github.com/fffx/bonsaiERP/internal/dto"
	"github.com/fffx/bonsaiERP/internal/middleware"
	"github.com/fffx/bonsaiERP/internal/utils/exchange"
)

// ledgerService manages account statements: standalone entries, transfers
// between accounts, conciliation and voiding.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		currencySvc: currencySvc,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetEntryByID retrieves a specific ledger entry.
func (s *ledgerService) GetEntryByID(ctx context.Context, op domain.Operator, accountLedgerID string) (*domain.AccountLedger, error) {
	return s.ledgerRepo.FindEntryByID(ctx, op.OrganisationID, accountLedgerID)
}

// ListEntriesByAccount retrieves a paginated list of entries for an account.
func (s *ledgerService) ListEntriesByAccount(ctx context.Context, op domain.Operator, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByAccount(ctx, op.OrganisationID, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// CreateEntry posts a standalone income or expense entry against an account.
// Cash register entries post already conciliated and hit the account amount
// immediately; bank entries stay pending until conciliation.
func (s *ledgerService) CreateEntry(ctx context.Context, op domain.Operator, req dto.CreateEntryRequest) (*domain.AccountLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewFieldError("amount", "amount must be positive")
	}

	account, err := s.accountRepo.FindAccountByID(ctx, op.OrganisationID, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewFieldError("account_id", "unknown account")
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.AccountLedger{
		AccountLedgerID: uuid.NewString(),
		OrganisationID:  op.OrganisationID,
		AccountID:       account.AccountID,
		CurrencyID:      account.CurrencyID,
		ContactID:       req.ContactID,
		Amount:          req.Amount,
		Date:            req.Date,
		Income:          req.Income,
		Conciliation:    account.SelfReconciling(),
		Description:     req.Description,
		Reference:       req.Reference,
		Active:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     op.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: op.UserID,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save ledger entry", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	logger.Info("Ledger entry created",
		slog.String("account_ledger_id", entry.AccountLedgerID),
		slog.String("account_id", entry.AccountID),
		slog.String("amount", entry.Amount.String()),
	)
	return &entry, nil
}

// CreateTransference moves money between two accounts of the organisation.
// Both entries post conciliated; transfers between own accounts need no
// statement matching.
func (s *ledgerService) CreateTransference(ctx context.Context, op domain.Operator, req dto.TransferenceRequest) (*domain.AccountLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewFieldError("amount", "amount must be positive")
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, apperrors.NewFieldError("to_account_id", "accounts must differ")
	}

	from, err := s.accountRepo.FindAccountByID(ctx, op.OrganisationID, req.FromAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewFieldError("from_account_id", "unknown account")
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	to, err := s.accountRepo.FindAccountByID(ctx, op.OrganisationID, req.ToAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewFieldError("to_account_id", "unknown account")
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	rate := req.ExchangeRate
	inAmount := req.Amount
	disclosure := ""
	if from.CurrencyID == to.CurrencyID {
		rate = decimal.NewFromInt(1)
	} else {
		if rate.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewFieldError("exchange_rate", "exchange rate is required when currencies differ")
		}
		inAmount = exchange.ToAccountCurrency(req.Amount, rate)

		fromCur, err := s.currencySvc.GetCurrencyByID(ctx, from.CurrencyID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch currency %s: %w", from.CurrencyID, err)
		}
		toCur, err := s.currencySvc.GetCurrencyByID(ctx, to.CurrencyID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch currency %s: %w", to.CurrencyID, err)
		}
		disclosure = exchange.RateDisclosure(rate, *fromCur, *toCur)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     op.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: op.UserID,
	}

	out := domain.AccountLedger{
		AccountLedgerID: uuid.NewString(),
		OrganisationID:  op.OrganisationID,
		AccountID:       from.AccountID,
		CurrencyID:      from.CurrencyID,
		Amount:          req.Amount,
		Date:            req.Date,
		Income:          false,
		Conciliation:    true,
		Description:     fmt.Sprintf("Transference to %s", to.Name),
		Reference:       req.Reference,
		Active:          true,
		AuditFields:     audit,
	}
	in := domain.AccountLedger{
		AccountLedgerID: uuid.NewString(),
		OrganisationID:  op.OrganisationID,
		AccountID:       to.AccountID,
		CurrencyID:      to.CurrencyID,
		Amount:          inAmount,
		Date:            req.Date,
		Income:          true,
		Conciliation:    true,
		Description:     fmt.Sprintf("Transference from %s", from.Name) + disclosure,
		Reference:       req.Reference,
		Active:          true,
		AuditFields:     audit,
	}

	if err := s.ledgerRepo.SaveTransference(ctx, out, in); err != nil {
		logger.Error("Failed to save transference",
			slog.String("from_account_id", from.AccountID),
			slog.String("to_account_id", to.AccountID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to save transference: %w", err)
	}

	logger.Info("Transference created",
		slog.String("from_account_id", from.AccountID),
		slog.String("to_account_id", to.AccountID),
		slog.String("amount", req.Amount.String()),
	)
	return &out, nil
}

// ConciliateEntry confirms a pending bank entry, applying it to the account
// amount and settling the payment behind it, if any.
func (s *ledgerService) ConciliateEntry(ctx context.Context, op domain.Operator, accountLedgerID string) (*domain.AccountLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerRepo.ConciliateEntry(ctx, op, accountLedgerID)
	if err != nil {
		return nil, err
	}

	logger.Info("Ledger entry conciliated",
		slog.String("account_ledger_id", entry.AccountLedgerID),
		slog.String("account_id", entry.AccountID),
	)
	return entry, nil
}

// DeactivateEntry voids a standalone entry. Entries behind a payment must be
// voided through the payment; conciliated entries stay put and the tagged
// result says why.
func (s *ledgerService) DeactivateEntry(ctx context.Context, op domain.Operator, accountLedgerID string) (*domain.AccountLedger, domain.DeactivationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerRepo.FindEntryByID(ctx, op.OrganisationID, accountLedgerID)
	if err != nil {
		return nil, domain.DeactivationResult{}, err
	}
	if !entry.Active {
		return nil, domain.DeactivationResult{}, apperrors.NewBaseError("entry already deactivated")
	}
	if entry.PaymentID != nil {
		return nil, domain.DeactivationResult{}, apperrors.NewBaseError("void the payment instead of its ledger entry")
	}

	if entry.Conciliation {
		return entry, domain.Blocked("entry already conciliated"), nil
	}

	updated, err := s.ledgerRepo.DeactivateEntry(ctx, op, accountLedgerID)
	if err != nil {
		logger.Error("Failed to deactivate ledger entry", slog.String("account_ledger_id", accountLedgerID), slog.String("error", err.Error()))
		return nil, domain.DeactivationResult{}, fmt.Errorf("failed to deactivate ledger entry: %w", err)
	}

	logger.Info("Ledger entry deactivated", slog.String("account_ledger_id", updated.AccountLedgerID))
	return updated, domain.Deactivated(), nil
}
