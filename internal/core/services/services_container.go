package services

import (
	portsrepo "github.com/fffx/bonsaiERP/internal/core/ports/repositories"
	portssvc "github.com/fffx/bonsaiERP/internal/core/ports/services"
)

// NewServiceContainer wires every service with its repositories and returns
// the container the handlers consume.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	accountSvc := NewAccountService(repos.AccountRepo, currencySvc)
	transactionSvc := NewTransactionService(repos.TransactionRepo, currencySvc)
	paymentSvc := NewPaymentService(repos.PaymentRepo, repos.TransactionRepo, repos.LedgerRepo, repos.AccountRepo, currencySvc)
	ledgerSvc := NewLedgerService(repos.LedgerRepo, repos.AccountRepo, currencySvc)
	historySvc := NewHistoryService(repos.HistoryRepo, repos.TransactionRepo)

	return &portssvc.ServiceContainer{
		Transaction: transactionSvc,
		Payment:     paymentSvc,
		Ledger:      ledgerSvc,
		Account:     accountSvc,
		Currency:    currencySvc,
		History:     historySvc,
	}
}
