package dto

import (
	"time"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to post a standalone ledger entry.
type CreateEntryRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Income      bool            `json:"income"`
	ContactID   string          `json:"contactID"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
}

// TransferenceRequest defines the data needed to move money between two accounts.
type TransferenceRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	Date          time.Time       `json:"date" binding:"required"`
	Reference     string          `json:"reference"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	AccountLedgerID string          `json:"accountLedgerID"`
	AccountID       string          `json:"accountID"`
	PaymentID       *string         `json:"paymentID,omitempty"`
	TransactionID   *string         `json:"transactionID,omitempty"`
	CurrencyID      string          `json:"currencyID"`
	ContactID       string          `json:"contactID,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	Income          bool            `json:"income"`
	Conciliation    bool            `json:"conciliation"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// DeactivateEntryResponse reports the outcome of a deactivation request. Entries
// already conciliated against a bank stay active and come back blocked.
type DeactivateEntryResponse struct {
	Deactivated bool                `json:"deactivated"`
	Reason      string              `json:"reason,omitempty"`
	Entry       LedgerEntryResponse `json:"entry"`
}

// ListEntriesParams defines query parameters for listing ledger entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps the paginated list of ledger entries.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToLedgerEntryResponse converts a domain.AccountLedger to LedgerEntryResponse DTO.
func ToLedgerEntryResponse(e *domain.AccountLedger) LedgerEntryResponse {
	return LedgerEntryResponse{
		AccountLedgerID: e.AccountLedgerID,
		AccountID:       e.AccountID,
		PaymentID:       e.PaymentID,
		TransactionID:   e.TransactionID,
		CurrencyID:      e.CurrencyID,
		ContactID:       e.ContactID,
		Amount:          e.Amount,
		Date:            e.Date,
		Income:          e.Income,
		Conciliation:    e.Conciliation,
		Description:     e.Description,
		Reference:       e.Reference,
		Active:          e.Active,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToLedgerEntryResponses converts a slice of domain.AccountLedger to []LedgerEntryResponse.
func ToLedgerEntryResponses(entries []domain.AccountLedger) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToLedgerEntryResponse(&e)
	}
	return responses
}
