package mapping

import (
	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/fffx/bonsaiERP/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Line items are mapped separately; they live in their own table.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:  d.TransactionID,
		OrganisationID: d.OrganisationID,
		Type:           models.TransactionType(d.Type),
		CurrencyID:     d.CurrencyID,
		ExchangeRate:   d.ExchangeRate,
		ContactID:      d.ContactID,
		RefNumber:      d.RefNumber,
		BillNumber:     d.BillNumber,
		Description:    d.Description,
		Date:           d.Date,
		Total:          d.Total,
		Balance:        d.Balance,
		Discount:       d.Discount,
		State:          models.TransactionState(d.State),
		Operation:      models.Operation(d.Operation),
		Delivered:      d.Delivered,
		Devolution:     d.Devolution,
		CreditRef:      d.CreditRef,
		PaymentDate:    d.PaymentDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		OrganisationID: m.OrganisationID,
		Type:           domain.TransactionType(m.Type),
		CurrencyID:     m.CurrencyID,
		ExchangeRate:   m.ExchangeRate,
		ContactID:      m.ContactID,
		RefNumber:      m.RefNumber,
		BillNumber:     m.BillNumber,
		Description:    m.Description,
		Date:           m.Date,
		Total:          m.Total,
		Balance:        m.Balance,
		Discount:       m.Discount,
		State:          domain.TransactionState(m.State),
		Operation:      domain.Operation(m.Operation),
		Delivered:      m.Delivered,
		Devolution:     m.Devolution,
		CreditRef:      m.CreditRef,
		PaymentDate:    m.PaymentDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain LineItem to a model LineItem.
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:    d.LineItemID,
		TransactionID: d.TransactionID,
		ItemID:        d.ItemID,
		Description:   d.Description,
		Price:         d.Price,
		Quantity:      d.Quantity,
		Delivered:     d.Delivered,
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem.
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:    m.LineItemID,
		TransactionID: m.TransactionID,
		ItemID:        m.ItemID,
		Description:   m.Description,
		Price:         m.Price,
		Quantity:      m.Quantity,
		Delivered:     m.Delivered,
	}
}

// ToDomainLineItemSlice converts a slice of model LineItems.
func ToDomainLineItemSlice(ms []models.LineItem) []domain.LineItem {
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}
