package domain

import (
	"encoding/json"
	"time"
)

// TransactionHistory is an immutable snapshot of a transaction's editable
// fields taken just before a post-approval edit. Rows are append-only.
type TransactionHistory struct {
	HistoryID     string          `json:"historyID"`
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	Data          json.RawMessage `json:"data"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// historySnapshot is the shape serialized into TransactionHistory.Data.
type historySnapshot struct {
	ContactID    string     `json:"contact_id"`
	RefNumber    string     `json:"ref_number"`
	BillNumber   string     `json:"bill_number"`
	CurrencyID   string     `json:"currency_id"`
	ExchangeRate string     `json:"exchange_rate"`
	Description  string     `json:"description"`
	Date         time.Time  `json:"date"`
	Total        string     `json:"total"`
	Balance      string     `json:"balance"`
	LineItems    []LineItem `json:"transaction_details"`
}

// SnapshotTransaction captures the editable fields of a transaction as JSON
// for the audit trail.
func SnapshotTransaction(t *Transaction) (json.RawMessage, error) {
	snap := historySnapshot{
		ContactID:    t.ContactID,
		RefNumber:    t.RefNumber,
		BillNumber:   t.BillNumber,
		CurrencyID:   t.CurrencyID,
		ExchangeRate: t.ExchangeRate.String(),
		Description:  t.Description,
		Date:         t.Date,
		Total:        t.Total.String(),
		Balance:      t.Balance.String(),
		LineItems:    t.LineItems,
	}
	return json.Marshal(snap)
}
