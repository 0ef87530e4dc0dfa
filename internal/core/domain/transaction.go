package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType discriminates the kind of financial document.
type TransactionType string

const (
	Income     TransactionType = "INCOME"
	Buy        TransactionType = "BUY"
	Expense    TransactionType = "EXPENSE"
	Devolution TransactionType = "DEVOLUTION"
)

// TransactionState is the lifecycle state of a transaction document.
// draft -> approved -> {paid, devolution}; the delivered flag is orthogonal
// and derived from inventory fulfillment, not part of this chain.
type TransactionState string

const (
	StateDraft      TransactionState = "draft"
	StateApproved   TransactionState = "approved"
	StatePaid       TransactionState = "paid"
	StateDevolution TransactionState = "devolution"
)

// Operation is the money direction of a document relative to the business.
type Operation string

const (
	OperationIn  Operation = "in"
	OperationOut Operation = "out"
)

// LineItem is one priced line of a transaction. Delivered tracks the quantity
// already shipped or received against this line, as reported by the inventory
// collaborator; it gates post-approval edits.
type LineItem struct {
	LineItemID    string          `json:"lineItemID"`
	TransactionID string          `json:"transactionID"`
	ItemID        string          `json:"itemID"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity"`
	Delivered     decimal.Decimal `json:"delivered"`
}

// Subtotal is price times quantity for the line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(li.Quantity)
}

// Transaction is a financial document: an income, a buy or an expense, with
// the devolution subtype reserved for reversal postings.
//
// Balance is the outstanding amount owed in the transaction's own currency.
// The invariant Balance = Total minus all applied payments plus devolutions
// holds at all times; a balance below zero is rejected, never clamped.
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
	LineItems      []LineItem       `json:"lineItems"`
	AuditFields
}

func (t *Transaction) IsDraft() bool    { return t.State == StateDraft }
func (t *Transaction) IsApproved() bool { return t.State == StateApproved }
func (t *Transaction) IsPaid() bool     { return t.State == StatePaid }

// GrossTotal sums the line subtotals before discount.
func (t *Transaction) GrossTotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range t.LineItems {
		total = total.Add(li.Subtotal())
	}
	return total
}

// ComputeTotals recalculates Total from the line items and the discount.
// It does not touch Balance; callers adjust the balance by the total delta so
// payment history survives edits.
func (t *Transaction) ComputeTotals() {
	t.Total = t.GrossTotal().Sub(t.Discount)
}

// AllDelivered reports whether every line item is fully delivered.
func (t *Transaction) AllDelivered() bool {
	if len(t.LineItems) == 0 {
		return false
	}
	for _, li := range t.LineItems {
		if li.Delivered.LessThan(li.Quantity) {
			return false
		}
	}
	return true
}
