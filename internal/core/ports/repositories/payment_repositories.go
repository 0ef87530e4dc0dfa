package repositories

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payments
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its unique identifier.
	FindPaymentByID(ctx context.Context, organisationID, paymentID string) (*domain.Payment, error)

	// ListPaymentsByTransaction retrieves all payments recorded against a transaction.
	ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payments
type PaymentWriter interface {
	// SavePayment persists a payment, its ledger entry, the reworked pay plans and the
	// transaction patch in one database transaction. The transaction row is updated with
	// an optimistic predicate on priorBalance; apperrors.ErrConflict is returned when a
	// concurrent writer moved the balance first. Accounts that post conciliated entries
	// have their amount adjusted in the same transaction.
	SavePayment(ctx context.Context, payment domain.Payment, entry domain.AccountLedger, plans []domain.PayPlan, txn domain.Transaction, priorBalance decimal.Decimal) error

	// DeactivatePayment marks a payment and its ledger entry inactive, reinstates the
	// given pay plan and restores the transaction balance, all in one database transaction.
	// The balance update uses the same optimistic predicate as SavePayment.
	DeactivatePayment(ctx context.Context, payment domain.Payment, entry domain.AccountLedger, reinstated domain.PayPlan, txn domain.Transaction, priorBalance decimal.Decimal) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// PaymentRepositoryWithTx extends PaymentRepositoryFacade with transaction capabilities
type PaymentRepositoryWithTx interface {
	PaymentRepositoryFacade
	TransactionManager
}
