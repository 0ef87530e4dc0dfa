package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType discriminates the kind of financial document.
type TransactionType string

// TransactionState is the persisted lifecycle state of a transaction.
type TransactionState string

// Operation is the persisted money direction of a document.
type Operation string

// Transaction is the transactions table row.
type Transaction struct {
	TransactionID  string           `json:"transactionID"`
	OrganisationID string           `json:"organisationID"`
	Type           TransactionType  `json:"type"`
	CurrencyID     string           `json:"currencyID"`
	ExchangeRate   decimal.Decimal  `json:"exchangeRate"`
	ContactID      string           `json:"contactID"`
	RefNumber      string           `json:"refNumber"`
	BillNumber     string           `json:"billNumber"`
	Description    string           `json:"description"`
	Date           time.Time        `json:"date"`
	Total          decimal.Decimal  `json:"total"`
	Balance        decimal.Decimal  `json:"balance"`
	Discount       decimal.Decimal  `json:"discount"`
	State          TransactionState `json:"state"`
	Operation      Operation        `json:"operation"`
	Delivered      bool             `json:"delivered"`
	Devolution     bool             `json:"devolution"`
	CreditRef      string           `json:"creditRef"`
	PaymentDate    *time.Time       `json:"paymentDate"`
	AuditFields
}

// LineItem is the transaction_details table row.
type LineItem struct {
	LineItemID    string          `json:"lineItemID"`
	TransactionID string          `json:"transactionID"`
	ItemID        string          `json:"itemID"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity"`
	Delivered     decimal.Decimal `json:"delivered"`
}
