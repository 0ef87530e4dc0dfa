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

// paymentService applies payments and devolutions against transactions and
// voids them again. Every mutation goes through one coarse repository call so
// the balance, the schedule, the ledger entry and the payment row move
// together or not at all.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		txnRepo:     txnRepo,
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		currencySvc: currencySvc,
	}
}

// Ensure paymentService implements the portssvc.PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// GetPaymentByID retrieves a specific payment.
func (s *paymentService) GetPaymentByID(ctx context.Context, op domain.Operator, paymentID string) (*domain.Payment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, op.OrganisationID, paymentID)
}

// ListPaymentsByTransaction retrieves the payments recorded against a transaction.
func (s *paymentService) ListPaymentsByTransaction(ctx context.Context, op domain.Operator, transactionID string) ([]domain.Payment, error) {
	if _, err := s.txnRepo.FindTransactionByID(ctx, op.OrganisationID, transactionID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListPaymentsByTransaction(ctx, transactionID)
}

// resolveAmount normalizes the paying account's input into the transaction
// currency. The rate is forced to 1 when both currencies match; otherwise
// BaseAmount is divided by the rate, since it was typed in account currency.
func resolveAmount(txn *domain.Transaction, account *domain.Account, baseAmount, reqRate decimal.Decimal) (amount, rate decimal.Decimal, verrs apperrors.ValidationErrors) {
	verrs = apperrors.ValidationErrors{}
	if baseAmount.LessThanOrEqual(decimal.Zero) {
		verrs.Add("base_amount", "amount must be positive")
	}

	if account.CurrencyID == txn.CurrencyID {
		return baseAmount, decimal.NewFromInt(1), verrs
	}

	rate = reqRate
	if rate.LessThanOrEqual(decimal.Zero) {
		verrs.Add("exchange_rate", "exchange rate is required when currencies differ")
		return decimal.Zero, rate, verrs
	}
	return exchange.ToTransactionCurrency(baseAmount, rate), rate, verrs
}

// narrative builds the ledger entry description, appending the exchange-rate
// disclosure for cross-currency postings.
func (s *paymentService) narrative(ctx context.Context, docType domain.TransactionType, txn *domain.Transaction, account *domain.Account, rate decimal.Decimal) (string, error) {
	description := domain.LedgerNarrative(docType, txn.RefNumber)
	if account.CurrencyID == txn.CurrencyID {
		return description, nil
	}

	from, err := s.currencySvc.GetCurrencyByID(ctx, txn.CurrencyID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch currency %s: %w", txn.CurrencyID, err)
	}
	to, err := s.currencySvc.GetCurrencyByID(ctx, account.CurrencyID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch currency %s: %w", account.CurrencyID, err)
	}
	return description + exchange.RateDisclosure(rate, *from, *to), nil
}

// ApplyPayment pays against an approved transaction. It absorbs the amount
// into the unpaid plans, posts the ledger entry on the paying account and
// reduces the balance, switching the document to paid when it reaches zero.
func (s *paymentService) ApplyPayment(ctx context.Context, op domain.Operator, transactionID string, req dto.CreatePaymentRequest) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, op.OrganisationID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.IsDraft() {
		return nil, apperrors.NewBaseError("approve the document before paying")
	}
	if txn.Devolution {
		return nil, apperrors.NewBaseError("devolution documents cannot receive payments")
	}
	if !txn.Balance.IsPositive() {
		return nil, apperrors.NewBaseError("document already paid")
	}

	account, err := s.accountRepo.FindAccountByID(ctx, op.OrganisationID, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewFieldError("account_id", "unknown account")
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	amount, rate, verrs := resolveAmount(txn, account, req.BaseAmount, req.ExchangeRate)
	if req.InterestsPenalties.IsNegative() {
		verrs.Add("interests_penalties", "interest must not be negative")
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	if exchange.ExceedsBalance(amount, txn.Balance) {
		return nil, apperrors.NewFieldError("base_amount", "amount exceeds the outstanding balance")
	}
	if exchange.WithinTolerance(amount, txn.Balance) {
		// rounding noise from the currency division settles the document exactly
		amount = txn.Balance
	}

	plans, err := s.txnRepo.FindPayPlansByTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pay plans: %w", err)
	}
	application, err := domain.ApplyPaymentToPlans(plans, amount, req.InterestsPenalties)
	if err != nil {
		if errors.Is(err, domain.ErrPendingInterest) {
			return nil, apperrors.NewBaseError(err.Error())
		}
		return nil, err
	}

	description, err := s.narrative(ctx, txn.Type, txn, account, rate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	state := domain.PaymentPendingConciliation
	if account.SelfReconciling() {
		state = domain.PaymentPaid
	}
	payment := domain.Payment{
		PaymentID:          uuid.NewString(),
		OrganisationID:     op.OrganisationID,
		AccountID:          account.AccountID,
		TransactionID:      txn.TransactionID,
		CurrencyID:         txn.CurrencyID,
		ContactID:          txn.ContactID,
		Amount:             amount,
		InterestsPenalties: req.InterestsPenalties,
		ExchangeRate:       rate,
		Date:               req.Date,
		Reference:          req.Reference,
		State:              state,
		Active:             true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     op.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: op.UserID,
		},
	}

	entry := domain.AccountLedger{
		AccountLedgerID: uuid.NewString(),
		OrganisationID:  op.OrganisationID,
		AccountID:       account.AccountID,
		PaymentID:       &payment.PaymentID,
		TransactionID:   &txn.TransactionID,
		CurrencyID:      account.CurrencyID,
		ContactID:       txn.ContactID,
		Amount:          payment.TotalAmountCurrency(),
		Date:            req.Date,
		Income:          domain.IsIncomeType(txn.Type),
		Conciliation:    account.SelfReconciling(),
		Description:     description,
		Reference:       req.Reference,
		Active:          true,
		AuditFields:     payment.AuditFields,
	}

	priorBalance := txn.Balance
	txn.Balance = txn.Balance.Sub(amount)
	if txn.Balance.IsZero() {
		txn.State = domain.StatePaid
		paidAt := req.Date
		txn.PaymentDate = &paidAt
	}
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = op.UserID

	plansToSave := application.UpdatedPlans
	if application.NewPlan != nil {
		leftover := *application.NewPlan
		leftover.PayPlanID = uuid.NewString()
		plansToSave = append(plansToSave, leftover)
	}

	if err := s.paymentRepo.SavePayment(ctx, payment, entry, plansToSave, *txn, priorBalance); err != nil {
		logger.Error("Failed to save payment",
			slog.String("transaction_id", transactionID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	logger.Info("Payment applied",
		slog.String("payment_id", payment.PaymentID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", amount.String()),
		slog.String("balance", txn.Balance.String()),
	)
	return &payment, nil
}

// ApplyDevolution returns money against a transaction, raising its balance
// back, reinstating a plan for the devolved amount and posting the
// opposite-signed ledger entry.
func (s *paymentService) ApplyDevolution(ctx context.Context, op domain.Operator, transactionID string, req dto.DevolutionRequest) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, op.OrganisationID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.IsDraft() {
		return nil, apperrors.NewBaseError("approve the document before returning money")
	}

	paid := txn.Total.Sub(txn.Balance)
	if !paid.IsPositive() {
		return nil, apperrors.NewBaseError("nothing has been paid to return")
	}

	account, err := s.accountRepo.FindAccountByID(ctx, op.OrganisationID, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewFieldError("account_id", "unknown account")
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	amount, rate, verrs := resolveAmount(txn, account, req.BaseAmount, req.ExchangeRate)
	if len(verrs) > 0 {
		return nil, verrs
	}
	if exchange.ExceedsBalance(amount, paid) {
		return nil, apperrors.NewFieldError("base_amount", "devolution exceeds the amount paid")
	}
	if exchange.WithinTolerance(amount, paid) {
		amount = paid
	}

	description, err := s.narrative(ctx, domain.Devolution, txn, account, rate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	state := domain.PaymentPendingConciliation
	if account.SelfReconciling() {
		state = domain.PaymentPaid
	}
	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		OrganisationID: op.OrganisationID,
		AccountID:      account.AccountID,
		TransactionID:  txn.TransactionID,
		CurrencyID:     txn.CurrencyID,
		ContactID:      txn.ContactID,
		Amount:         amount,
		ExchangeRate:   rate,
		Date:           req.Date,
		Reference:      req.Reference,
		State:          state,
		Active:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     op.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: op.UserID,
		},
	}

	entry := domain.AccountLedger{
		AccountLedgerID: uuid.NewString(),
		OrganisationID:  op.OrganisationID,
		AccountID:       account.AccountID,
		PaymentID:       &payment.PaymentID,
		TransactionID:   &txn.TransactionID,
		CurrencyID:      account.CurrencyID,
		ContactID:       txn.ContactID,
		Amount:          payment.TotalAmountCurrency(),
		Date:            req.Date,
		Income:          !domain.IsIncomeType(txn.Type),
		Conciliation:    account.SelfReconciling(),
		Description:     description,
		Reference:       req.Reference,
		Active:          true,
		AuditFields:     payment.AuditFields,
	}

	priorBalance := txn.Balance
	txn.Balance = txn.Balance.Add(amount)
	txn.State = domain.StateDevolution
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = op.UserID

	// the devolved amount is owed again, so a plan comes back due shortly
	reinstated := domain.PayPlan{
		PayPlanID:     uuid.NewString(),
		TransactionID: txn.TransactionID,
		Amount:        amount,
		PaymentDate:   now.AddDate(0, 0, domain.ReinstatedDueDays),
		AlertDate:     now,
	}

	if err := s.paymentRepo.SavePayment(ctx, payment, entry, []domain.PayPlan{reinstated}, *txn, priorBalance); err != nil {
		logger.Error("Failed to save devolution",
			slog.String("transaction_id", transactionID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to save devolution: %w", err)
	}

	logger.Info("Devolution applied",
		slog.String("payment_id", payment.PaymentID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", amount.String()),
	)
	return &payment, nil
}

// DeactivatePayment voids a payment. The transaction gets its balance back
// plus a reinstated plan due shortly and the ledger entry is marked inactive.
// An entry already conciliated blocks the whole operation; its reversal takes
// a compensating entry instead.
func (s *paymentService) DeactivatePayment(ctx context.Context, op domain.Operator, paymentID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, op.OrganisationID, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.Active {
		return nil, apperrors.NewBaseError("payment already deactivated")
	}

	entry, err := s.ledgerRepo.FindEntryByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger entry: %w", err)
	}
	if entry.Conciliation {
		return nil, apperrors.NewBaseError("cannot void a payment whose entry was conciliated")
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, op.OrganisationID, payment.TransactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reinstated := domain.PayPlan{
		PayPlanID:          uuid.NewString(),
		TransactionID:      txn.TransactionID,
		Amount:             payment.Amount,
		InterestsPenalties: payment.InterestsPenalties,
		PaymentDate:        now.AddDate(0, 0, domain.ReinstatedDueDays),
		AlertDate:          now,
	}

	priorBalance := txn.Balance
	txn.Balance = txn.Balance.Add(payment.Amount)
	if txn.IsPaid() {
		txn.State = domain.StateApproved
	}
	txn.PaymentDate = &reinstated.PaymentDate
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = op.UserID

	payment.Active = false
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = op.UserID

	entry.Active = false
	entry.Description = domain.ReversalPrefix + entry.Description
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = op.UserID

	if err := s.paymentRepo.DeactivatePayment(ctx, *payment, *entry, reinstated, *txn, priorBalance); err != nil {
		logger.Error("Failed to deactivate payment",
			slog.String("payment_id", paymentID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to deactivate payment: %w", err)
	}

	logger.Info("Payment deactivated",
		slog.String("payment_id", payment.PaymentID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("restored_balance", txn.Balance.String()),
	)
	return payment, nil
}
