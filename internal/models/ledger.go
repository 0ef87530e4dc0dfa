package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountLedger is the account_ledgers table row.
type AccountLedger struct {
	AccountLedgerID string          `json:"accountLedgerID"`
	OrganisationID  string          `json:"organisationID"`
	AccountID       string          `json:"accountID"`
	PaymentID       *string         `json:"paymentID"`
	TransactionID   *string         `json:"transactionID"`
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
