package pgsql

import (
	portsrepo "github.com/fffx/bonsaiERP/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	transactionRepo := newPgxTransactionRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	historyRepo := newPgxHistoryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransactionRepo: transactionRepo,
		PaymentRepo:     paymentRepo,
		LedgerRepo:      ledgerRepo,
		AccountRepo:     accountRepo,
		CurrencyRepo:    currencyRepo,
		HistoryRepo:     historyRepo,
	}
}
