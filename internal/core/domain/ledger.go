package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountLedger is one signed movement on an account's statement. Amount is
// denominated in the account's currency; Income says whether the movement
// credits (true) or debits (false) the account.
//
// Once Conciliation is true the entry is immutable apart from the explicit
// reconciliation toggle; reversing a conciliated entry means posting a new
// opposite-signed entry, never mutating the original.
type AccountLedger struct {
	AccountLedgerID string          `json:"accountLedgerID"`
	OrganisationID  string          `json:"organisationID"`
	AccountID       string          `json:"accountID"`
	PaymentID       *string         `json:"paymentID"`     // nil for manual/transference entries
	TransactionID   *string         `json:"transactionID"` // nil for manual/transference entries
	CurrencyID      string          `json:"currencyID"`
	ContactID       string          `json:"contactID"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	Income          bool            `json:"income"`
	Conciliation    bool            `json:"conciliation"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
	Active          bool            `json:"active"`
	AuditFields
}

// SignedAmount is the entry's contribution to its account's running balance.
func (e *AccountLedger) SignedAmount() decimal.Decimal {
	if e.Income {
		return e.Amount
	}
	return e.Amount.Neg()
}

// DeactivationResult is the tagged outcome of a ledger entry or payment
// deactivation attempt.
type DeactivationResult struct {
	Deactivated bool   `json:"deactivated"`
	Blocked     bool   `json:"blocked"`
	Reason      string `json:"reason,omitempty"`
}

// Deactivated reports a successful deactivation.
func Deactivated() DeactivationResult {
	return DeactivationResult{Deactivated: true}
}

// Blocked reports a refused deactivation with the blocking reason.
func Blocked(reason string) DeactivationResult {
	return DeactivationResult{Blocked: true, Reason: reason}
}
