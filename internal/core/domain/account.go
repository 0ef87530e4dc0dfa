package domain

import "github.com/shopspring/decimal"

// AccountType distinguishes physical money destinations.
type AccountType string

const (
	Bank         AccountType = "Bank"
	CashRegister AccountType = "CashRegister"
)

// Account is a bank or cash-register destination. Amount is always the fold
// of the account's active, conciliated ledger entries; it is rewritten only
// inside the atomic units that post or conciliate entries.
type Account struct {
	AccountID      string          `json:"accountID"`
	OrganisationID string          `json:"organisationID"`
	Type           AccountType     `json:"type"`
	Name           string          `json:"name"`
	Number         string          `json:"number"`
	CurrencyID     string          `json:"currencyID"`
	Amount         decimal.Decimal `json:"amount"`
	AuditFields
}

// SelfReconciling reports whether ledger entries against this account post as
// immediately conciliated. Cash registers do; banks require an explicit later
// reconciliation step against a statement.
func (a *Account) SelfReconciling() bool {
	return a.Type == CashRegister
}
