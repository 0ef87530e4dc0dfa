package services

import (
	"context"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/fffx/bonsaiERP/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction with its line items.
	GetTransactionByID(ctx context.Context, op domain.Operator, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of transactions in an organisation.
	ListTransactions(ctx context.Context, op domain.Operator, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListPayPlans retrieves the payment schedule of a transaction ordered by due date.
	ListPayPlans(ctx context.Context, op domain.Operator, transactionID string) ([]domain.PayPlan, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	// CreateTransaction persists a new draft transaction with its line items.
	CreateTransaction(ctx context.Context, op domain.Operator, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction edits a transaction, enforcing the post approval field rules
	// and recording a history snapshot of the prior version.
	UpdateTransaction(ctx context.Context, op domain.Operator, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// ApproveTransaction moves a draft to the approved state and opens a credit
	// schedule for its full balance.
	ApproveTransaction(ctx context.Context, op domain.Operator, transactionID string) (*domain.Transaction, error)

	// ApproveCredit approves a draft on credit, recording the reference of the
	// backing credit document.
	ApproveCredit(ctx context.Context, op domain.Operator, transactionID string, req dto.ApproveCreditRequest) (*domain.Transaction, error)

	// SplitPayPlans replaces the unpaid schedule of a transaction with installments.
	SplitPayPlans(ctx context.Context, op domain.Operator, transactionID string, req dto.SplitPayPlanRequest) ([]domain.PayPlan, error)

	// RecordDelivery registers delivered quantities against the lines of a
	// transaction, flagging it delivered once every line is.
	RecordDelivery(ctx context.Context, op domain.Operator, transactionID string, req dto.RecordDeliveryRequest) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
