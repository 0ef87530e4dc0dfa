package models

import (
	"encoding/json"
	"time"
)

// TransactionHistory is the transaction_histories table row. Append-only.
type TransactionHistory struct {
	HistoryID     string          `json:"historyID"`
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	Data          json.RawMessage `json:"data"`
	CreatedAt     time.Time       `json:"createdAt"`
}
