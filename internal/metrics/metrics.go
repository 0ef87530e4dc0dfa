// Package metrics exposes the Prometheus instrumentation of the accounting core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TransactionsCreated counts created transactions, labelled by document type.
	TransactionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bonsaierp_transactions_created_total",
		Help: "Number of transactions created.",
	}, []string{"type"})

	// TransactionsApproved counts draft transactions moved to approved.
	TransactionsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bonsaierp_transactions_approved_total",
		Help: "Number of transactions approved.",
	})

	// PaymentsApplied counts payments and devolutions recorded against transactions.
	PaymentsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bonsaierp_payments_applied_total",
		Help: "Number of payments applied.",
	}, []string{"kind"})

	// PaymentConflicts counts payments rejected by the concurrent balance check.
	PaymentConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bonsaierp_payment_conflicts_total",
		Help: "Number of payments rejected because the transaction balance moved concurrently.",
	})

	// LedgerEntriesPosted counts standalone ledger entries and transference legs.
	LedgerEntriesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bonsaierp_ledger_entries_posted_total",
		Help: "Number of ledger entries posted.",
	})
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
