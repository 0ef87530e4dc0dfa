package services_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	portsrepo "github.com/fffx/bonsaiERP/internal/core/ports/repositories"
	portssvc "github.com/fffx/bonsaiERP/internal/core/ports/services"
	"github.com/fffx/bonsaiERP/internal/dto"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, organisationID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organisationID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByOrganisation(ctx context.Context, organisationID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, organisationID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedToken, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionWithHistory(ctx context.Context, txn domain.Transaction, history domain.TransactionHistory) error {
	args := m.Called(ctx, txn, history)
	return args.Error(0)
}

func (m *MockTransactionRepository) ApproveTransactionWithSchedule(ctx context.Context, txn domain.Transaction, plans []domain.PayPlan) error {
	args := m.Called(ctx, txn, plans)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindPayPlansByTransaction(ctx context.Context, transactionID string) ([]domain.PayPlan, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayPlan), args.Error(1)
}

func (m *MockTransactionRepository) SavePayPlans(ctx context.Context, transactionID string, plans []domain.PayPlan) error {
	args := m.Called(ctx, transactionID, plans)
	return args.Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, organisationID, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, organisationID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]domain.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, entry domain.AccountLedger, plans []domain.PayPlan, txn domain.Transaction, priorBalance decimal.Decimal) error {
	args := m.Called(ctx, payment, entry, plans, txn, priorBalance)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeactivatePayment(ctx context.Context, payment domain.Payment, entry domain.AccountLedger, reinstated domain.PayPlan, txn domain.Transaction, priorBalance decimal.Decimal) error {
	args := m.Called(ctx, payment, entry, reinstated, txn, priorBalance)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, organisationID, accountLedgerID string) (*domain.AccountLedger, error) {
	args := m.Called(ctx, organisationID, accountLedgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLedger), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByPaymentID(ctx context.Context, paymentID string) (*domain.AccountLedger, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLedger), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, organisationID, accountID string, limit int, nextToken *string) ([]domain.AccountLedger, *string, error) {
	args := m.Called(ctx, organisationID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.AccountLedger), returnedToken, args.Error(2)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.AccountLedger) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveTransference(ctx context.Context, out domain.AccountLedger, in domain.AccountLedger) error {
	args := m.Called(ctx, out, in)
	return args.Error(0)
}

func (m *MockLedgerRepository) ConciliateEntry(ctx context.Context, operator domain.Operator, accountLedgerID string) (*domain.AccountLedger, error) {
	args := m.Called(ctx, operator, accountLedgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLedger), args.Error(1)
}

func (m *MockLedgerRepository) DeactivateEntry(ctx context.Context, operator domain.Operator, accountLedgerID string) (*domain.AccountLedger, error) {
	args := m.Called(ctx, operator, accountLedgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLedger), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, organisationID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organisationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByOrganisation(ctx context.Context, organisationID string) ([]domain.Account, error) {
	args := m.Called(ctx, organisationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

func (m *MockCurrencyService) GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, op domain.Operator, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	args := m.Called(ctx, op, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
