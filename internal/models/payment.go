package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentState tracks the settlement state of a payment.
type PaymentState string

// Payment is the payments table row.
type Payment struct {
	PaymentID          string          `json:"paymentID"`
	OrganisationID     string          `json:"organisationID"`
	AccountID          string          `json:"accountID"`
	TransactionID      string          `json:"transactionID"`
	CurrencyID         string          `json:"currencyID"`
	ContactID          string          `json:"contactID"`
	Amount             decimal.Decimal `json:"amount"`
	InterestsPenalties decimal.Decimal `json:"interestsPenalties"`
	ExchangeRate       decimal.Decimal `json:"exchangeRate"`
	Date               time.Time       `json:"date"`
	Reference          string          `json:"reference"`
	State              PaymentState    `json:"state"`
	Active             bool            `json:"active"`
	AuditFields
}
