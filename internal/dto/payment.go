package dto

import (
	"time"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to pay against a transaction.
// BaseAmount is expressed in the currency of the paying account; when that
// currency differs from the transaction currency the exchange rate converts it.
type CreatePaymentRequest struct {
	AccountID          string          `json:"accountID" binding:"required"`
	BaseAmount         decimal.Decimal `json:"baseAmount" binding:"required"`
	InterestsPenalties decimal.Decimal `json:"interestsPenalties"`
	ExchangeRate       decimal.Decimal `json:"exchangeRate"`
	Date               time.Time       `json:"date" binding:"required"`
	Reference          string          `json:"reference"`
}

// DevolutionRequest defines the data needed to return money against a transaction.
type DevolutionRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	BaseAmount   decimal.Decimal `json:"baseAmount" binding:"required"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Date         time.Time       `json:"date" binding:"required"`
	Reference    string          `json:"reference"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID          string              `json:"paymentID"`
	AccountID          string              `json:"accountID"`
	TransactionID      string              `json:"transactionID"`
	CurrencyID         string              `json:"currencyID"`
	Amount             decimal.Decimal     `json:"amount"`
	InterestsPenalties decimal.Decimal     `json:"interestsPenalties"`
	ExchangeRate       decimal.Decimal     `json:"exchangeRate"`
	Date               time.Time           `json:"date"`
	Reference          string              `json:"reference"`
	State              domain.PaymentState `json:"state"`
	Active             bool                `json:"active"`
	CreatedAt          time.Time           `json:"createdAt"`
	CreatedBy          string              `json:"createdBy"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:          p.PaymentID,
		AccountID:          p.AccountID,
		TransactionID:      p.TransactionID,
		CurrencyID:         p.CurrencyID,
		Amount:             p.Amount,
		InterestsPenalties: p.InterestsPenalties,
		ExchangeRate:       p.ExchangeRate,
		Date:               p.Date,
		Reference:          p.Reference,
		State:              p.State,
		Active:             p.Active,
		CreatedAt:          p.CreatedAt,
		CreatedBy:          p.CreatedBy,
	}
}

// ToPaymentResponses converts a slice of domain.Payment to []PaymentResponse.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = ToPaymentResponse(&p)
	}
	return responses
}
