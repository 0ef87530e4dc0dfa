package dto

import (
	"github.com/fffx/bonsaiERP/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to register a currency.
type CreateCurrencyRequest struct {
	CurrencyID string `json:"currencyID" binding:"required,currency_code"`
	Name       string `json:"name" binding:"required"`
	Symbol     string `json:"symbol" binding:"required"`
	Plural     string `json:"plural"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID string `json:"currencyID"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	Plural     string `json:"plural"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID: c.CurrencyID,
		Name:       c.Name,
		Symbol:     c.Symbol,
		Plural:     c.Plural,
	}
}

// ToCurrencyResponses converts a slice of domain.Currency to []CurrencyResponse.
func ToCurrencyResponses(currencies []domain.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		responses[i] = ToCurrencyResponse(&c)
	}
	return responses
}
