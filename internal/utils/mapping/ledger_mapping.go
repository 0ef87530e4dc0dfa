package mapping

import (
	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/fffx/bonsaiERP/internal/models"
)

// ToModelAccountLedger converts a domain AccountLedger to a model AccountLedger.
func ToModelAccountLedger(d domain.AccountLedger) models.AccountLedger {
	return models.AccountLedger{
		AccountLedgerID: d.AccountLedgerID,
		OrganisationID:  d.OrganisationID,
		AccountID:       d.AccountID,
		PaymentID:       d.PaymentID,
		TransactionID:   d.TransactionID,
		CurrencyID:      d.CurrencyID,
		ContactID:       d.ContactID,
		Amount:          d.Amount,
		Date:            d.Date,
		Income:          d.Income,
		Conciliation:    d.Conciliation,
		Description:     d.Description,
		Reference:       d.Reference,
		Active:          d.Active,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountLedger converts a model AccountLedger to a domain AccountLedger.
func ToDomainAccountLedger(m models.AccountLedger) domain.AccountLedger {
	return domain.AccountLedger{
		AccountLedgerID: m.AccountLedgerID,
		OrganisationID:  m.OrganisationID,
		AccountID:       m.AccountID,
		PaymentID:       m.PaymentID,
		TransactionID:   m.TransactionID,
		CurrencyID:      m.CurrencyID,
		ContactID:       m.ContactID,
		Amount:          m.Amount,
		Date:            m.Date,
		Income:          m.Income,
		Conciliation:    m.Conciliation,
		Description:     m.Description,
		Reference:       m.Reference,
		Active:          m.Active,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountLedgerSlice converts a slice of model AccountLedgers.
func ToDomainAccountLedgerSlice(ms []models.AccountLedger) []domain.AccountLedger {
	ds := make([]domain.AccountLedger, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountLedger(m)
	}
	return ds
}
