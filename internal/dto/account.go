package dto

import (
	"time"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new money account.
type CreateAccountRequest struct {
	Type       domain.AccountType `json:"type" binding:"required,oneof=Bank CashRegister"`
	Name       string             `json:"name" binding:"required"`
	Number     string             `json:"number"`
	CurrencyID string             `json:"currencyID" binding:"required,currency_code"`
	Amount     decimal.Decimal    `json:"amount"`
}

// AccountResponse defines the data returned for a money account.
type AccountResponse struct {
	AccountID  string             `json:"accountID"`
	Type       domain.AccountType `json:"type"`
	Name       string             `json:"name"`
	Number     string             `json:"number"`
	CurrencyID string             `json:"currencyID"`
	Amount     decimal.Decimal    `json:"amount"`
	CreatedAt  time.Time          `json:"createdAt"`
	CreatedBy  string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:  a.AccountID,
		Type:       a.Type,
		Name:       a.Name,
		Number:     a.Number,
		CurrencyID: a.CurrencyID,
		Amount:     a.Amount,
		CreatedAt:  a.CreatedAt,
		CreatedBy:  a.CreatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		res[i] = ToAccountResponse(&a)
	}
	return res
}
