package mapping

import (
	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/fffx/bonsaiERP/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:          d.PaymentID,
		OrganisationID:     d.OrganisationID,
		AccountID:          d.AccountID,
		TransactionID:      d.TransactionID,
		CurrencyID:         d.CurrencyID,
		ContactID:          d.ContactID,
		Amount:             d.Amount,
		InterestsPenalties: d.InterestsPenalties,
		ExchangeRate:       d.ExchangeRate,
		Date:               d.Date,
		Reference:          d.Reference,
		State:              models.PaymentState(d.State),
		Active:             d.Active,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:          m.PaymentID,
		OrganisationID:     m.OrganisationID,
		AccountID:          m.AccountID,
		TransactionID:      m.TransactionID,
		CurrencyID:         m.CurrencyID,
		ContactID:          m.ContactID,
		Amount:             m.Amount,
		InterestsPenalties: m.InterestsPenalties,
		ExchangeRate:       m.ExchangeRate,
		Date:               m.Date,
		Reference:          m.Reference,
		State:              domain.PaymentState(m.State),
		Active:             m.Active,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayPlan converts a domain PayPlan to a model PayPlan.
func ToModelPayPlan(d domain.PayPlan) models.PayPlan {
	return models.PayPlan{
		PayPlanID:          d.PayPlanID,
		TransactionID:      d.TransactionID,
		Amount:             d.Amount,
		InterestsPenalties: d.InterestsPenalties,
		PaymentDate:        d.PaymentDate,
		AlertDate:          d.AlertDate,
		Paid:               d.Paid,
	}
}

// ToDomainPayPlan converts a model PayPlan to a domain PayPlan.
func ToDomainPayPlan(m models.PayPlan) domain.PayPlan {
	return domain.PayPlan{
		PayPlanID:          m.PayPlanID,
		TransactionID:      m.TransactionID,
		Amount:             m.Amount,
		InterestsPenalties: m.InterestsPenalties,
		PaymentDate:        m.PaymentDate,
		AlertDate:          m.AlertDate,
		Paid:               m.Paid,
	}
}

// ToDomainPayPlanSlice converts a slice of model PayPlans.
func ToDomainPayPlanSlice(ms []models.PayPlan) []domain.PayPlan {
	ds := make([]domain.PayPlan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayPlan(m)
	}
	return ds
}
