package services

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/fffx/bonsaiERP/internal/dto"
)

// PaymentReaderSvc defines read operations for payments
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a specific payment.
	GetPaymentByID(ctx context.Context, op domain.Operator, paymentID string) (*domain.Payment, error)

	// ListPaymentsByTransaction retrieves the payments recorded against a transaction.
	ListPaymentsByTransaction(ctx context.Context, op domain.Operator, transactionID string) ([]domain.Payment, error)
}

// PaymentWriterSvc defines write operations for payments
type PaymentWriterSvc interface {
	// ApplyPayment pays against an approved transaction: it reduces the balance,
	// reworks the payment schedule and posts the ledger entry for the paying account.
	ApplyPayment(ctx context.Context, op domain.Operator, transactionID string, req dto.CreatePaymentRequest) (*domain.Payment, error)

	// ApplyDevolution returns money against a transaction, raising its balance back
	// and posting the opposite ledger entry.
	ApplyDevolution(ctx context.Context, op domain.Operator, transactionID string, req dto.DevolutionRequest) (*domain.Payment, error)

	// DeactivatePayment voids a payment, restores the transaction balance and
	// reinstates a plan due shortly. Payments whose bank entry was already
	// conciliated cannot be voided.
	DeactivatePayment(ctx context.Context, op domain.Operator, paymentID string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
