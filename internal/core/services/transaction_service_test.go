package services_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fffx/bonsaiERP/internal/apperrors"
	"github.com/fffx/bonsaiERP/internal/core/domain"
	portssvc "github.com/fffx/bonsaiERP/internal/core/ports/services"
	"github.com/fffx/bonsaiERP/internal/core/services"
	"github.com/fffx/bonsaiERP/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	op          domain.Operator
	txnRepo     *MockTransactionRepository
	currencySvc *MockCurrencyService
	service     portssvc.TransactionSvcFacade
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.op = domain.Operator{OrganisationID: "org-1", UserID: "user-1"}
	s.txnRepo = new(MockTransactionRepository)
	s.currencySvc = new(MockCurrencyService)
	s.service = services.NewTransactionService(s.txnRepo, s.currencySvc)
}

func strPtr(v string) *string                   { return &v }
func decPtr(v decimal.Decimal) *decimal.Decimal { return &v }

func (s *TransactionServiceTestSuite) approvedSaleWithLines() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:  "txn-1",
		OrganisationID: "org-1",
		Type:           domain.Income,
		CurrencyID:     "USD",
		ExchangeRate:   decimal.NewFromInt(1),
		ContactID:      "contact-1",
		RefNumber:      "I-0601-ABCD1234",
		Date:           time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Total:          decimal.NewFromInt(100),
		Balance:        decimal.NewFromInt(100),
		State:          domain.StateApproved,
		Operation:      domain.OperationIn,
		LineItems: []domain.LineItem{
			{LineItemID: "line-1", TransactionID: "txn-1", ItemID: "item-1", Price: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(10)},
		},
	}
}

func (s *TransactionServiceTestSuite) TestCreateTransactionComputesTotals() {
	s.currencySvc.On("GetCurrencyByID", s.ctx, "USD").Return(&domain.Currency{CurrencyID: "USD", Name: "Dollar"}, nil)

	var savedTxn domain.Transaction
	s.txnRepo.On("SaveTransaction", s.ctx, mock.Anything).
		Run(func(args mock.Arguments) { savedTxn = args.Get(1).(domain.Transaction) }).
		Return(nil)

	txn, err := s.service.CreateTransaction(s.ctx, s.op, dto.CreateTransactionRequest{
		Type:       domain.Income,
		CurrencyID: "USD",
		ContactID:  "contact-1",
		Date:       time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Discount:   decimal.NewFromInt(5),
		LineItems: []dto.LineItemRequest{
			{ItemID: "item-1", Price: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(10)},
			{ItemID: "item-2", Price: decimal.NewFromInt(2), Quantity: decimal.NewFromInt(3)},
		},
	})

	s.Require().NoError(err)
	s.Equal(domain.StateDraft, txn.State)
	s.Equal(domain.OperationIn, txn.Operation)
	s.True(txn.Total.Equal(decimal.NewFromInt(101))) // 100 + 6 - 5
	s.True(txn.Balance.Equal(txn.Total))
	s.True(strings.HasPrefix(txn.RefNumber, "I-0601-"))
	s.Len(txn.LineItems, 2)
	s.NotEmpty(txn.LineItems[0].LineItemID)
	s.Equal("org-1", savedTxn.OrganisationID)
}

func (s *TransactionServiceTestSuite) TestCreateTransactionCollectsFieldErrors() {
	_, err := s.service.CreateTransaction(s.ctx, s.op, dto.CreateTransactionRequest{
		Type:         domain.Buy,
		CurrencyID:   "USD",
		ExchangeRate: decimal.NewFromInt(-1),
		ContactID:    "contact-1",
		Date:         time.Now(),
		Discount:     decimal.NewFromInt(-5),
		LineItems: []dto.LineItemRequest{
			{ItemID: "item-1", Price: decimal.NewFromInt(10), Quantity: decimal.Zero},
		},
	})

	s.Require().Error(err)
	verrs, ok := apperrors.AsValidation(err)
	s.Require().True(ok)
	s.Contains(verrs, "exchange_rate")
	s.Contains(verrs, "discount")
	s.Contains(verrs, "quantity")
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransactionRejectsUnknownCurrency() {
	s.currencySvc.On("GetCurrencyByID", s.ctx, "XXX").Return(nil, apperrors.ErrNotFound)

	_, err := s.service.CreateTransaction(s.ctx, s.op, dto.CreateTransactionRequest{
		Type:       domain.Income,
		CurrencyID: "XXX",
		ContactID:  "contact-1",
		Date:       time.Now(),
		LineItems: []dto.LineItemRequest{
			{ItemID: "item-1", Price: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(1)},
		},
	})

	s.Require().Error(err)
	verrs, ok := apperrors.AsValidation(err)
	s.Require().True(ok)
	s.Contains(verrs, "currency_id")
}

func (s *TransactionServiceTestSuite) TestUpdateDraftAcceptsIdentityChanges() {
	txn := s.approvedSaleWithLines()
	txn.State = domain.StateDraft

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)
	s.currencySvc.On("GetCurrencyByID", s.ctx, "BOB").Return(&domain.Currency{CurrencyID: "BOB", Name: "Boliviano"}, nil)
	s.txnRepo.On("UpdateTransaction", s.ctx, mock.Anything).Return(nil)

	updated, err := s.service.UpdateTransaction(s.ctx, s.op, "txn-1", dto.UpdateTransactionRequest{
		CurrencyID:   strPtr("BOB"),
		ExchangeRate: decPtr(decimal.RequireFromString("6.96")),
		ContactID:    strPtr("contact-2"),
	})

	s.Require().NoError(err)
	s.Equal("BOB", updated.CurrencyID)
	s.Equal("contact-2", updated.ContactID)
	s.True(updated.ExchangeRate.Equal(decimal.RequireFromString("6.96")))

	// draft edits leave no audit trail; history starts at approval
	s.txnRepo.AssertNotCalled(s.T(), "UpdateTransactionWithHistory", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestUpdateApprovedFreezesIdentityFields() {
	txn := s.approvedSaleWithLines()

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	_, err := s.service.UpdateTransaction(s.ctx, s.op, "txn-1", dto.UpdateTransactionRequest{
		ContactID:    strPtr("contact-2"),
		RefNumber:    strPtr("I-0601-OTHER"),
		CurrencyID:   strPtr("BOB"),
		ExchangeRate: decPtr(decimal.NewFromInt(2)),
		Discount:     decPtr(decimal.NewFromInt(3)),
	})

	s.Require().Error(err)
	verrs, ok := apperrors.AsValidation(err)
	s.Require().True(ok)
	s.Contains(verrs, "contact_id")
	s.Contains(verrs, "ref_number")
	s.Contains(verrs, "currency_id")
	s.Contains(verrs, "exchange_rate")
	s.Contains(verrs, "discount")
	s.txnRepo.AssertNotCalled(s.T(), "UpdateTransactionWithHistory", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestUpdateApprovedAllowsSameValuesAndNarrativeFields() {
	txn := s.approvedSaleWithLines()

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)
	s.txnRepo.On("UpdateTransactionWithHistory", s.ctx, mock.Anything, mock.Anything).Return(nil)

	updated, err := s.service.UpdateTransaction(s.ctx, s.op, "txn-1", dto.UpdateTransactionRequest{
		ContactID:   strPtr("contact-1"), // unchanged, not an error
		Description: strPtr("june invoice"),
		BillNumber:  strPtr("F-778"),
	})

	s.Require().NoError(err)
	s.Equal("june invoice", updated.Description)
	s.Equal("F-778", updated.BillNumber)
}

func (s *TransactionServiceTestSuite) TestUpdateAdjustsBalanceByTotalDelta() {
	txn := s.approvedSaleWithLines()
	txn.Balance = decimal.NewFromInt(40) // 60 already paid

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	var savedTxn domain.Transaction
	var savedHistory domain.TransactionHistory
	s.txnRepo.On("UpdateTransactionWithHistory", s.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(domain.Transaction)
			savedHistory = args.Get(2).(domain.TransactionHistory)
		}).
		Return(nil)

	// grow the line to 15 units, total 100 -> 150
	updated, err := s.service.UpdateTransaction(s.ctx, s.op, "txn-1", dto.UpdateTransactionRequest{
		LineItems: []dto.LineItemRequest{
			{LineItemID: strPtr("line-1"), ItemID: "item-1", Price: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(15)},
		},
	})

	s.Require().NoError(err)
	s.True(updated.Total.Equal(decimal.NewFromInt(150)))
	s.True(updated.Balance.Equal(decimal.NewFromInt(90)))
	s.Equal(domain.StateApproved, updated.State)

	// the audit snapshot keeps the pre-edit version
	var snap map[string]any
	s.Require().NoError(json.Unmarshal(savedHistory.Data, &snap))
	s.Equal("100", snap["total"])
	s.Equal("40", snap["balance"])
	s.Equal("user-1", savedHistory.UserID)
	s.Equal(savedTxn.TransactionID, savedHistory.TransactionID)
}

func (s *TransactionServiceTestSuite) TestUpdateRejectsTotalBelowPaid() {
	txn := s.approvedSaleWithLines()
	txn.Balance = decimal.NewFromInt(40) // 60 already paid

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	// shrink the line to 5 units, total 100 -> 50 < 60 paid
	_, err := s.service.UpdateTransaction(s.ctx, s.op, "txn-1", dto.UpdateTransactionRequest{
		LineItems: []dto.LineItemRequest{
			{LineItemID: strPtr("line-1"), ItemID: "item-1", Price: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(5)},
		},
	})

	s.Require().Error(err)
	verrs, ok := apperrors.AsValidation(err)
	s.Require().True(ok)
	s.Contains(verrs[apperrors.BaseField], "already paid")
}

func (s *TransactionServiceTestSuite) TestUpdateGatesEditsOnDeliveredLines() {
	txn := s.approvedSaleWithLines()
	txn.LineItems[0].Delivered = decimal.NewFromInt(6)

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	_, err := s.service.UpdateTransaction(s.ctx, s.op, "txn-1", dto.UpdateTransactionRequest{
		LineItems: []dto.LineItemRequest{
			{LineItemID: strPtr("line-1"), ItemID: "item-2", Price: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(5)},
		},
	})

	s.Require().Error(err)
	verrs, ok := apperrors.AsValidation(err)
	s.Require().True(ok)
	s.Contains(verrs["quantity"], "already delivered")
	s.Contains(verrs["item_id"], "delivered line")
}

func (s *TransactionServiceTestSuite) TestUpdateRejectsRemovingDeliveredLine() {
	txn := s.approvedSaleWithLines()
	txn.LineItems[0].Delivered = decimal.NewFromInt(6)

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	_, err := s.service.UpdateTransaction(s.ctx, s.op, "txn-1", dto.UpdateTransactionRequest{
		LineItems: []dto.LineItemRequest{
			{ItemID: "item-9", Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)},
		},
	})

	s.Require().Error(err)
	verrs, ok := apperrors.AsValidation(err)
	s.Require().True(ok)
	s.Contains(verrs[apperrors.BaseField], "delivered quantity")
}

func (s *TransactionServiceTestSuite) TestUpdateSettlesWhenBalanceHitsZero() {
	txn := s.approvedSaleWithLines()
	txn.Balance = decimal.NewFromInt(50) // 50 already paid

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)
	s.txnRepo.On("UpdateTransactionWithHistory", s.ctx, mock.Anything, mock.Anything).Return(nil)

	// shrink the line so the new total equals what was paid
	updated, err := s.service.UpdateTransaction(s.ctx, s.op, "txn-1", dto.UpdateTransactionRequest{
		LineItems: []dto.LineItemRequest{
			{LineItemID: strPtr("line-1"), ItemID: "item-1", Price: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(5)},
		},
	})

	s.Require().NoError(err)
	s.True(updated.Balance.IsZero())
	s.Equal(domain.StatePaid, updated.State)
	s.NotNil(updated.PaymentDate)
}

func (s *TransactionServiceTestSuite) TestUpdateRejectsDevolutionDocuments() {
	txn := s.approvedSaleWithLines()
	txn.Devolution = true

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	_, err := s.service.UpdateTransaction(s.ctx, s.op, "txn-1", dto.UpdateTransactionRequest{
		Description: strPtr("tweak"),
	})

	s.Require().Error(err)
	verrs, ok := apperrors.AsValidation(err)
	s.Require().True(ok)
	s.Contains(verrs[apperrors.BaseField], "devolution")
}

func (s *TransactionServiceTestSuite) TestApproveOpensCreditSchedule() {
	txn := s.approvedSaleWithLines()
	txn.State = domain.StateDraft

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	var savedTxn domain.Transaction
	var savedPlans []domain.PayPlan
	s.txnRepo.On("ApproveTransactionWithSchedule", s.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(domain.Transaction)
			savedPlans = args.Get(2).([]domain.PayPlan)
		}).
		Return(nil)

	approved, err := s.service.ApproveTransaction(s.ctx, s.op, "txn-1")

	s.Require().NoError(err)
	s.Equal(domain.StateApproved, approved.State)
	s.Equal(domain.StateApproved, savedTxn.State)

	// state flip and schedule travel in the same repository call
	s.Require().Len(savedPlans, 1)
	plan := savedPlans[0]
	s.NotEmpty(plan.PayPlanID)
	s.True(plan.Amount.Equal(decimal.NewFromInt(100)))
	s.True(plan.AlertDate.Equal(plan.PaymentDate.AddDate(0, 0, -domain.AlertLeadDays)))
	s.txnRepo.AssertNotCalled(s.T(), "SavePayPlans", mock.Anything, mock.Anything, mock.Anything)
	s.txnRepo.AssertNotCalled(s.T(), "UpdateTransactionWithHistory", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestApproveCreditRecordsReference() {
	txn := s.approvedSaleWithLines()
	txn.State = domain.StateDraft

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	var savedTxn domain.Transaction
	var savedPlans []domain.PayPlan
	s.txnRepo.On("ApproveTransactionWithSchedule", s.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(domain.Transaction)
			savedPlans = args.Get(2).([]domain.PayPlan)
		}).
		Return(nil)

	approved, err := s.service.ApproveCredit(s.ctx, s.op, "txn-1", dto.ApproveCreditRequest{
		CreditRef:   "CR-2026-044",
		Description: "credit sale, net 30",
	})

	s.Require().NoError(err)
	s.Equal(domain.StateApproved, approved.State)
	s.Equal("CR-2026-044", savedTxn.CreditRef)
	s.Equal("credit sale, net 30", savedTxn.Description)
	s.Require().Len(savedPlans, 1)
	s.True(savedPlans[0].Amount.Equal(decimal.NewFromInt(100)))
}

func (s *TransactionServiceTestSuite) TestApproveCreditRequiresReference() {
	txn := s.approvedSaleWithLines()
	txn.State = domain.StateDraft

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	_, err := s.service.ApproveCredit(s.ctx, s.op, "txn-1", dto.ApproveCreditRequest{})

	s.Require().Error(err)
	verrs, ok := apperrors.AsValidation(err)
	s.Require().True(ok)
	s.Contains(verrs, "credit_ref")
	s.txnRepo.AssertNotCalled(s.T(), "ApproveTransactionWithSchedule", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestApproveRejectsNonDraft() {
	txn := s.approvedSaleWithLines()

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	_, err := s.service.ApproveTransaction(s.ctx, s.op, "txn-1")

	s.Require().Error(err)
	verrs, ok := apperrors.AsValidation(err)
	s.Require().True(ok)
	s.Contains(verrs[apperrors.BaseField], "draft")
}

func (s *TransactionServiceTestSuite) TestSplitPayPlansBuildsInstallments() {
	txn := s.approvedSaleWithLines()

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	var savedPlans []domain.PayPlan
	s.txnRepo.On("SavePayPlans", s.ctx, "txn-1", mock.Anything).
		Run(func(args mock.Arguments) { savedPlans = args.Get(2).([]domain.PayPlan) }).
		Return(nil)

	firstDue := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	plans, err := s.service.SplitPayPlans(s.ctx, s.op, "txn-1", dto.SplitPayPlanRequest{
		Amount:             decimal.NewFromInt(30),
		InterestsPenalties: decimal.NewFromInt(2),
		PaymentDate:        firstDue,
		Repeat:             true,
	})

	s.Require().NoError(err)
	s.Require().Len(plans, 4) // 30 + 30 + 30 + 10
	s.Equal(savedPlans, plans)

	s.True(plans[0].Amount.Equal(decimal.NewFromInt(30)))
	s.True(plans[0].InterestsPenalties.Equal(decimal.NewFromInt(2)))
	s.True(plans[0].PaymentDate.Equal(firstDue))
	s.True(plans[1].InterestsPenalties.IsZero())
	s.True(plans[1].PaymentDate.Equal(firstDue.AddDate(0, 0, domain.InstallmentGapDays)))
	s.True(plans[3].Amount.Equal(decimal.NewFromInt(10)))
	for _, p := range plans {
		s.NotEmpty(p.PayPlanID)
	}
}

func (s *TransactionServiceTestSuite) TestRecordDeliveryFlagsFullDelivery() {
	txn := s.approvedSaleWithLines()

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	var savedHistory domain.TransactionHistory
	s.txnRepo.On("UpdateTransactionWithHistory", s.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { savedHistory = args.Get(2).(domain.TransactionHistory) }).
		Return(nil)

	updated, err := s.service.RecordDelivery(s.ctx, s.op, "txn-1", dto.RecordDeliveryRequest{
		Deliveries: []dto.DeliveryLineRequest{
			{LineItemID: "line-1", Quantity: decimal.NewFromInt(10)},
		},
	})

	s.Require().NoError(err)
	s.True(updated.Delivered)
	s.True(updated.LineItems[0].Delivered.Equal(decimal.NewFromInt(10)))

	// snapshot keeps the pre-delivery quantities
	var snap struct {
		LineItems []domain.LineItem `json:"transaction_details"`
	}
	s.Require().NoError(json.Unmarshal(savedHistory.Data, &snap))
	s.Require().Len(snap.LineItems, 1)
	s.True(snap.LineItems[0].Delivered.IsZero())
}

func (s *TransactionServiceTestSuite) TestRecordDeliveryRejectsOverDelivery() {
	txn := s.approvedSaleWithLines()
	txn.LineItems[0].Delivered = decimal.NewFromInt(8)

	s.txnRepo.On("FindTransactionByID", s.ctx, "org-1", "txn-1").Return(txn, nil)

	_, err := s.service.RecordDelivery(s.ctx, s.op, "txn-1", dto.RecordDeliveryRequest{
		Deliveries: []dto.DeliveryLineRequest{
			{LineItemID: "line-1", Quantity: decimal.NewFromInt(5)},
		},
	})

	s.Require().Error(err)
	verrs, ok := apperrors.AsValidation(err)
	s.Require().True(ok)
	s.Contains(verrs["quantity"], "exceeds")
	s.txnRepo.AssertNotCalled(s.T(), "UpdateTransactionWithHistory", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
