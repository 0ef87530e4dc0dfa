package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentState tracks whether a payment's ledger entry still awaits statement
// matching ("conciliation") or is settled ("paid").
type PaymentState string

const (
	PaymentPendingConciliation PaymentState = "conciliation"
	PaymentPaid                PaymentState = "paid"
)

// Payment is a single money movement against a transaction. Amount and
// InterestsPenalties are denominated in the transaction's currency. A payment
// is never physically deleted: "destroy" means Active=false plus a
// compensating ledger entry, preserving audit history.
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

// TotalAmount is amount plus interests and penalties, in the transaction
// currency.
func (p *Payment) TotalAmount() decimal.Decimal {
	return p.Amount.Add(p.InterestsPenalties)
}

// TotalAmountCurrency converts the total into the receiving account's
// currency using the payment's exchange rate.
func (p *Payment) TotalAmountCurrency() decimal.Decimal {
	return p.TotalAmount().Mul(p.ExchangeRate)
}
