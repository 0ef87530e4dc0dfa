package mapping

import (
	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/fffx/bonsaiERP/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		OrganisationID: d.OrganisationID,
		Type:           models.AccountType(d.Type),
		Name:           d.Name,
		Number:         d.Number,
		CurrencyID:     d.CurrencyID,
		Amount:         d.Amount,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		OrganisationID: m.OrganisationID,
		Type:           domain.AccountType(m.Type),
		Name:           m.Name,
		Number:         m.Number,
		CurrencyID:     m.CurrencyID,
		Amount:         m.Amount,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
