package mapping

import (
	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/fffx/bonsaiERP/internal/models"
)

// ToDomainCurrency converts a currency row to the domain currency.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID: m.CurrencyID,
		Name:       m.Name,
		Symbol:     m.Symbol,
		Plural:     m.Plural,
	}
}

// ToModelCurrency converts a domain currency to its row.
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyID: d.CurrencyID,
		Name:       d.Name,
		Symbol:     d.Symbol,
		Plural:     d.Plural,
	}
}
