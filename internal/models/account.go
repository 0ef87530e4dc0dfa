package models

import "github.com/shopspring/decimal"

// AccountType distinguishes physical money destinations.
type AccountType string

// Account is the accounts table row.
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
