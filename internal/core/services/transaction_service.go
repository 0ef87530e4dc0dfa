package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fffx/bonsaiERP/internal/apperrors"
	"github.com/fffx/bonsaiERP/internal/core/domain"
	portsrepo "github.com/fffx/bonsaiERP/internal/core/ports/repositories"
	portssvc "github.com/fffx/bonsaiERP/internal/core/ports/services"
	"github.com/fffx/bonsaiERP/internal/dto"
	"github.com/fffx/bonsaiERP/internal/middleware"
)

// refPrefixes maps a document type to the letter its reference numbers start with.
var refPrefixes = map[domain.TransactionType]string{
	domain.Income:     "I",
	domain.Buy:        "B",
	domain.Expense:    "E",
	domain.Devolution: "D",
}

// transactionService provides document lifecycle operations: drafting,
// editing, approval, delivery tracking and schedule management.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		currencySvc: currencySvc,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// newRefNumber generates a reference like I-2608-4F0A2C91 for documents
// submitted without one.
func newRefNumber(t domain.TransactionType, date time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", refPrefixes[t], date.Format("0601"), suffix)
}

// GetTransactionByID retrieves a transaction with its line items.
func (s *transactionService) GetTransactionByID(ctx context.Context, op domain.Operator, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, op.OrganisationID, transactionID)
}

// ListTransactions retrieves a paginated list of transactions in the operator's organisation.
func (s *transactionService) ListTransactions(ctx context.Context, op domain.Operator, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByOrganisation(ctx, op.OrganisationID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// ListPayPlans retrieves the payment schedule of a transaction in absorption order.
func (s *transactionService) ListPayPlans(ctx context.Context, op domain.Operator, transactionID string) ([]domain.PayPlan, error) {
	if _, err := s.txnRepo.FindTransactionByID(ctx, op.OrganisationID, transactionID); err != nil {
		return nil, err
	}
	return s.txnRepo.FindPayPlansByTransaction(ctx, transactionID)
}

// CreateTransaction persists a new draft document with its line items.
func (s *transactionService) CreateTransaction(ctx context.Context, op domain.Operator, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	verrs := apperrors.ValidationErrors{}

	rate := req.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	if rate.IsNegative() {
		verrs.Add("exchange_rate", "exchange rate must be positive")
	}
	if req.Discount.IsNegative() {
		verrs.Add("discount", "discount must not be negative")
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	lines := make([]domain.LineItem, len(req.LineItems))
	for i, lr := range req.LineItems {
		if lr.Price.IsNegative() {
			verrs.Add("price", "price must not be negative")
		}
		if lr.Quantity.LessThanOrEqual(decimal.Zero) {
			verrs.Add("quantity", "quantity must be positive")
		}
		lines[i] = domain.LineItem{
			LineItemID:    uuid.NewString(),
			TransactionID: transactionID,
			ItemID:        lr.ItemID,
			Description:   lr.Description,
			Price:         lr.Price,
			Quantity:      lr.Quantity,
		}
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	if _, err := s.currencySvc.GetCurrencyByID(ctx, req.CurrencyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewFieldError("currency_id", "unknown currency")
		}
		return nil, fmt.Errorf("failed to fetch currency: %w", err)
	}

	refNumber := req.RefNumber
	if refNumber == "" {
		refNumber = newRefNumber(req.Type, req.Date)
	}

	txn := domain.Transaction{
		TransactionID:  transactionID,
		OrganisationID: op.OrganisationID,
		Type:           req.Type,
		CurrencyID:     req.CurrencyID,
		ExchangeRate:   rate,
		ContactID:      req.ContactID,
		RefNumber:      refNumber,
		BillNumber:     req.BillNumber,
		Description:    req.Description,
		Date:           req.Date,
		Discount:       req.Discount,
		State:          domain.StateDraft,
		Operation:      domain.DefaultOperation(req.Type),
		LineItems:      lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     op.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: op.UserID,
		},
	}
	txn.ComputeTotals()
	if txn.Total.IsNegative() {
		return nil, apperrors.NewFieldError("discount", "discount exceeds the line total")
	}
	txn.Balance = txn.Total

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("total", txn.Total.String()),
	)
	return &txn, nil
}

// UpdateTransaction edits a document. Drafts accept any change; approved and
// paid documents keep their identity fields frozen, gate line edits on
// delivered quantities and leave a history snapshot behind.
func (s *transactionService) UpdateTransaction(ctx context.Context, op domain.Operator, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, op.OrganisationID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Devolution || txn.State == domain.StateDevolution {
		return nil, apperrors.NewBaseError("devolution documents cannot be edited")
	}

	// only post-approval edits leave an audit trail; the snapshot is taken
	// before touching anything so it keeps the prior version
	var priorData json.RawMessage
	if !txn.IsDraft() {
		priorData, err = domain.SnapshotTransaction(txn)
		if err != nil {
			return nil, fmt.Errorf("failed to snapshot transaction: %w", err)
		}
	}

	verrs := apperrors.ValidationErrors{}
	if txn.IsDraft() {
		if req.CurrencyID != nil && *req.CurrencyID != txn.CurrencyID {
			if _, err := s.currencySvc.GetCurrencyByID(ctx, *req.CurrencyID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					verrs.Add("currency_id", "unknown currency")
				} else {
					return nil, fmt.Errorf("failed to fetch currency: %w", err)
				}
			} else {
				txn.CurrencyID = *req.CurrencyID
			}
		}
		if req.ExchangeRate != nil {
			if req.ExchangeRate.LessThanOrEqual(decimal.Zero) {
				verrs.Add("exchange_rate", "exchange rate must be positive")
			} else {
				txn.ExchangeRate = *req.ExchangeRate
			}
		}
		if req.ContactID != nil {
			txn.ContactID = *req.ContactID
		}
		if req.RefNumber != nil {
			txn.RefNumber = *req.RefNumber
		}
		if req.Discount != nil {
			if req.Discount.IsNegative() {
				verrs.Add("discount", "discount must not be negative")
			} else {
				txn.Discount = *req.Discount
			}
		}
	} else {
		// Identity fields are frozen once the document is approved; each
		// attempted change surfaces as its own field error.
		if req.ContactID != nil && *req.ContactID != txn.ContactID {
			verrs.Add("contact_id", "cannot change the contact after approval")
		}
		if req.RefNumber != nil && *req.RefNumber != txn.RefNumber {
			verrs.Add("ref_number", "cannot change the reference number after approval")
		}
		if req.CurrencyID != nil && *req.CurrencyID != txn.CurrencyID {
			verrs.Add("currency_id", "cannot change the currency after approval")
		}
		if req.ExchangeRate != nil && !req.ExchangeRate.Equal(txn.ExchangeRate) {
			verrs.Add("exchange_rate", "cannot change the exchange rate after approval")
		}
		if req.Discount != nil && !req.Discount.Equal(txn.Discount) {
			verrs.Add("discount", "cannot change the discount after approval")
		}
	}

	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.BillNumber != nil {
		txn.BillNumber = *req.BillNumber
	}

	if req.LineItems != nil {
		newLines, lineErrs := applyLineEdits(txn, req.LineItems)
		for field, msg := range lineErrs {
			verrs.Add(field, msg)
		}
		if len(lineErrs) == 0 {
			txn.LineItems = newLines
		}
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	oldTotal := txn.Total
	txn.ComputeTotals()
	if txn.Total.IsNegative() {
		return nil, apperrors.NewFieldError("discount", "discount exceeds the line total")
	}
	txn.Balance = txn.Balance.Add(txn.Total.Sub(oldTotal))
	if txn.Balance.IsNegative() {
		return nil, apperrors.NewBaseError("total cannot drop below the amount already paid")
	}

	now := time.Now().UTC()
	if !txn.IsDraft() {
		if txn.Balance.IsZero() {
			txn.State = domain.StatePaid
			if txn.PaymentDate == nil {
				txn.PaymentDate = &now
			}
		} else if txn.IsPaid() {
			txn.State = domain.StateApproved
			txn.PaymentDate = nil
		}
	}
	txn.Delivered = txn.AllDelivered()
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = op.UserID

	if priorData == nil {
		err = s.txnRepo.UpdateTransaction(ctx, *txn)
	} else {
		history := domain.TransactionHistory{
			HistoryID:     uuid.NewString(),
			TransactionID: txn.TransactionID,
			UserID:        op.UserID,
			Data:          priorData,
			CreatedAt:     now,
		}
		err = s.txnRepo.UpdateTransactionWithHistory(ctx, *txn, history)
	}
	if err != nil {
		logger.Error("Failed to update transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	logger.Info("Transaction updated",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("total", txn.Total.String()),
		slog.String("balance", txn.Balance.String()),
	)
	return txn, nil
}

// applyLineEdits merges requested lines into the existing ones, enforcing the
// delivered quantity gates. Lines already partly delivered cannot shrink below
// their delivered quantity, swap item or disappear.
func applyLineEdits(txn *domain.Transaction, reqs []dto.LineItemRequest) ([]domain.LineItem, apperrors.ValidationErrors) {
	existing := make(map[string]domain.LineItem, len(txn.LineItems))
	for _, li := range txn.LineItems {
		existing[li.LineItemID] = li
	}

	verrs := apperrors.ValidationErrors{}
	seen := make(map[string]bool, len(reqs))
	out := make([]domain.LineItem, 0, len(reqs))

	for _, lr := range reqs {
		if lr.Price.IsNegative() {
			verrs.Add("price", "price must not be negative")
		}
		if lr.Quantity.LessThanOrEqual(decimal.Zero) {
			verrs.Add("quantity", "quantity must be positive")
		}

		if lr.LineItemID == nil {
			out = append(out, domain.LineItem{
				LineItemID:    uuid.NewString(),
				TransactionID: txn.TransactionID,
				ItemID:        lr.ItemID,
				Description:   lr.Description,
				Price:         lr.Price,
				Quantity:      lr.Quantity,
			})
			continue
		}

		cur, ok := existing[*lr.LineItemID]
		if !ok {
			verrs.Add(apperrors.BaseField, "unknown line item "+*lr.LineItemID)
			continue
		}
		seen[cur.LineItemID] = true

		if lr.Quantity.LessThan(cur.Delivered) {
			verrs.Add("quantity", fmt.Sprintf("quantity cannot drop below the %s already delivered", cur.Delivered))
		}
		if cur.Delivered.IsPositive() && lr.ItemID != cur.ItemID {
			verrs.Add("item_id", "cannot change the item on a delivered line")
		}

		cur.ItemID = lr.ItemID
		cur.Description = lr.Description
		cur.Price = lr.Price
		cur.Quantity = lr.Quantity
		out = append(out, cur)
	}

	for _, li := range txn.LineItems {
		if !seen[li.LineItemID] && li.Delivered.IsPositive() {
			verrs.Add(apperrors.BaseField, "cannot remove a line with delivered quantity")
		}
	}

	if len(verrs) > 0 {
		return nil, verrs
	}
	return out, nil
}

// approve flips the draft to approved and persists it together with its
// credit schedule in one repository call.
func (s *transactionService) approve(ctx context.Context, op domain.Operator, txn *domain.Transaction) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	txn.State = domain.StateApproved
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = op.UserID

	var plans []domain.PayPlan
	if txn.Balance.IsPositive() {
		plan := domain.NewCreditSchedule(txn, now)
		plan.PayPlanID = uuid.NewString()
		plans = append(plans, plan)
	}

	if err := s.txnRepo.ApproveTransactionWithSchedule(ctx, *txn, plans); err != nil {
		logger.Error("Failed to approve transaction", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to approve transaction: %w", err)
	}

	logger.Info("Transaction approved", slog.String("transaction_id", txn.TransactionID))
	return txn, nil
}

// ApproveTransaction moves a draft to approved and opens its credit schedule.
func (s *transactionService) ApproveTransaction(ctx context.Context, op domain.Operator, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, op.OrganisationID, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsDraft() {
		return nil, apperrors.NewBaseError("only draft documents can be approved")
	}

	return s.approve(ctx, op, txn)
}

// ApproveCredit approves a draft on credit, recording the reference of the
// backing credit document before opening the schedule.
func (s *transactionService) ApproveCredit(ctx context.Context, op domain.Operator, transactionID string, req dto.ApproveCreditRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, op.OrganisationID, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsDraft() {
		return nil, apperrors.NewBaseError("only draft documents can be approved")
	}
	if req.CreditRef == "" {
		return nil, apperrors.NewFieldError("credit_ref", "credit reference is required")
	}

	txn.CreditRef = req.CreditRef
	if req.Description != "" {
		txn.Description = req.Description
	}

	return s.approve(ctx, op, txn)
}

// SplitPayPlans replaces the unpaid schedule with installments of the
// requested amount, the last one carrying the remainder.
func (s *transactionService) SplitPayPlans(ctx context.Context, op domain.Operator, transactionID string, req dto.SplitPayPlanRequest) ([]domain.PayPlan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, op.OrganisationID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.IsDraft() {
		return nil, apperrors.NewBaseError("approve the document before scheduling payments")
	}
	if !txn.Balance.IsPositive() {
		return nil, apperrors.NewBaseError("nothing left to schedule")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewFieldError("amount", "amount must be positive")
	}
	if req.InterestsPenalties.IsNegative() {
		return nil, apperrors.NewFieldError("interests_penalties", "interest must not be negative")
	}

	base := domain.PayPlan{
		TransactionID:      txn.TransactionID,
		Amount:             txn.Balance,
		InterestsPenalties: req.InterestsPenalties,
	}
	plans := domain.SplitPlan(base, req.Amount, req.PaymentDate, req.Repeat)
	for i := range plans {
		plans[i].PayPlanID = uuid.NewString()
	}

	if err := s.txnRepo.SavePayPlans(ctx, txn.TransactionID, plans); err != nil {
		logger.Error("Failed to save pay plans", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save pay plans: %w", err)
	}

	logger.Info("Pay plans reworked",
		slog.String("transaction_id", txn.TransactionID),
		slog.Int("plans", len(plans)),
	)
	return plans, nil
}

// RecordDelivery registers delivered quantities against the document lines.
func (s *transactionService) RecordDelivery(ctx context.Context, op domain.Operator, transactionID string, req dto.RecordDeliveryRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, op.OrganisationID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.IsDraft() {
		return nil, apperrors.NewBaseError("approve the document before recording deliveries")
	}

	priorData, err := domain.SnapshotTransaction(txn)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot transaction: %w", err)
	}

	byID := make(map[string]int, len(txn.LineItems))
	for i, li := range txn.LineItems {
		byID[li.LineItemID] = i
	}

	verrs := apperrors.ValidationErrors{}
	for _, d := range req.Deliveries {
		i, ok := byID[d.LineItemID]
		if !ok {
			verrs.Add(apperrors.BaseField, "unknown line item "+d.LineItemID)
			continue
		}
		if d.Quantity.LessThanOrEqual(decimal.Zero) {
			verrs.Add("quantity", "delivered quantity must be positive")
			continue
		}
		li := txn.LineItems[i]
		if li.Delivered.Add(d.Quantity).GreaterThan(li.Quantity) {
			verrs.Add("quantity", "delivery exceeds the ordered quantity")
			continue
		}
		txn.LineItems[i].Delivered = li.Delivered.Add(d.Quantity)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	now := time.Now().UTC()
	txn.Delivered = txn.AllDelivered()
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = op.UserID

	history := domain.TransactionHistory{
		HistoryID:     uuid.NewString(),
		TransactionID: txn.TransactionID,
		UserID:        op.UserID,
		Data:          priorData,
		CreatedAt:     now,
	}
	if err := s.txnRepo.UpdateTransactionWithHistory(ctx, *txn, history); err != nil {
		logger.Error("Failed to record delivery", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record delivery: %w", err)
	}

	logger.Info("Delivery recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.Bool("delivered", txn.Delivered),
	)
	return txn, nil
}
