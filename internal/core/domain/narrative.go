package domain

import "fmt"

// narrativeTemplates maps a transaction type to the ledger entry description
// template it produces. The reversal prefix and exchange-rate disclosure are
// appended by the ledger entry manager.
var narrativeTemplates = map[TransactionType]string{
	Income:     "Sale collection %s",
	Buy:        "Purchase payment %s",
	Expense:    "Expense payment %s",
	Devolution: "Devolution %s",
}

// defaultOperations maps a transaction type to its default money direction.
var defaultOperations = map[TransactionType]Operation{
	Income:     OperationIn,
	Buy:        OperationOut,
	Expense:    OperationOut,
	Devolution: OperationOut,
}

// ReversalPrefix is prepended to a ledger narrative when the entry compensates
// a deactivated payment.
const ReversalPrefix = "Reversal of "

// LedgerNarrative renders the statement description for a posting of the
// given transaction type against the given reference number.
func LedgerNarrative(t TransactionType, refNumber string) string {
	tmpl, ok := narrativeTemplates[t]
	if !ok {
		return refNumber
	}
	return fmt.Sprintf(tmpl, refNumber)
}

// DefaultOperation returns the money direction a document of the given type
// carries unless overridden.
func DefaultOperation(t TransactionType) Operation {
	if op, ok := defaultOperations[t]; ok {
		return op
	}
	return OperationOut
}

// IsIncomeType reports whether postings for this document type credit the
// receiving account.
func IsIncomeType(t TransactionType) bool {
	return t == Income
}
