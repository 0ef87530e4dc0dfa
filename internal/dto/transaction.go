package dto

import (
	"time"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest defines a single line of a transaction.
type LineItemRequest struct {
	LineItemID  *string         `json:"lineItemID"` // Present when updating an existing line
	ItemID      string          `json:"itemID" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateTransactionRequest defines the data needed to create a new transaction.
type CreateTransactionRequest struct {
	Type         domain.TransactionType `json:"type" binding:"required,oneof=INCOME BUY EXPENSE"`
	CurrencyID   string                 `json:"currencyID" binding:"required,currency_code"`
	ExchangeRate decimal.Decimal        `json:"exchangeRate"`
	ContactID    string                 `json:"contactID" binding:"required"`
	RefNumber    string                 `json:"refNumber"` // Generated when empty
	BillNumber   string                 `json:"billNumber"`
	Description  string                 `json:"description"`
	Date         time.Time              `json:"date" binding:"required"`
	Discount     decimal.Decimal        `json:"discount"`
	LineItems    []LineItemRequest      `json:"lineItems" binding:"required,min=1,dive"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
// After approval only description, date and bill number survive validation; the
// rest come back as field errors.
type UpdateTransactionRequest struct {
	CurrencyID   *string           `json:"currencyID"`
	ExchangeRate *decimal.Decimal  `json:"exchangeRate"`
	ContactID    *string           `json:"contactID"`
	RefNumber    *string           `json:"refNumber"`
	BillNumber   *string           `json:"billNumber"`
	Description  *string           `json:"description"`
	Date         *time.Time        `json:"date"`
	Discount     *decimal.Decimal  `json:"discount"`
	LineItems    []LineItemRequest `json:"lineItems"`
}

// ApproveCreditRequest defines the data needed to approve a transaction on
// credit. The reference identifies the credit document backing the approval.
type ApproveCreditRequest struct {
	CreditRef   string `json:"creditRef" binding:"required"`
	Description string `json:"description"`
}

// SplitPayPlanRequest defines the data needed to rework a credit schedule.
type SplitPayPlanRequest struct {
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	InterestsPenalties decimal.Decimal `json:"interestsPenalties"`
	PaymentDate        time.Time       `json:"paymentDate" binding:"required"`
	Repeat             bool            `json:"repeat"`
}

// DeliveryLineRequest defines a delivered quantity for one transaction line.
type DeliveryLineRequest struct {
	LineItemID string          `json:"lineItemID" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
}

// RecordDeliveryRequest defines the data needed to register deliveries.
type RecordDeliveryRequest struct {
	Deliveries []DeliveryLineRequest `json:"deliveries" binding:"required,min=1,dive"`
}

// LineItemResponse defines the data returned for a transaction line.
type LineItemResponse struct {
	LineItemID  string          `json:"lineItemID"`
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    decimal.Decimal `json:"quantity"`
	Delivered   decimal.Decimal `json:"delivered"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                  `json:"transactionID"`
	Type          domain.TransactionType  `json:"type"`
	CurrencyID    string                  `json:"currencyID"`
	ExchangeRate  decimal.Decimal         `json:"exchangeRate"`
	ContactID     string                  `json:"contactID"`
	RefNumber     string                  `json:"refNumber"`
	BillNumber    string                  `json:"billNumber"`
	Description   string                  `json:"description"`
	Date          time.Time               `json:"date"`
	Total         decimal.Decimal         `json:"total"`
	Balance       decimal.Decimal         `json:"balance"`
	Discount      decimal.Decimal         `json:"discount"`
	State         domain.TransactionState `json:"state"`
	Delivered     bool                    `json:"delivered"`
	Devolution    bool                    `json:"devolution"`
	CreditRef     string                  `json:"creditRef,omitempty"`
	PaymentDate   *time.Time              `json:"paymentDate,omitempty"`
	LineItems     []LineItemResponse      `json:"lineItems,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	CreatedBy     string                  `json:"createdBy"`
}

// PayPlanResponse defines the data returned for a scheduled installment.
type PayPlanResponse struct {
	PayPlanID          string          `json:"payPlanID"`
	TransactionID      string          `json:"transactionID"`
	Amount             decimal.Decimal `json:"amount"`
	InterestsPenalties decimal.Decimal `json:"interestsPenalties"`
	PaymentDate        time.Time       `json:"paymentDate"`
	AlertDate          time.Time       `json:"alertDate"`
	Paid               bool            `json:"paid"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps the paginated list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToLineItemResponse converts a domain.LineItem to LineItemResponse DTO.
func ToLineItemResponse(li *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:  li.LineItemID,
		ItemID:      li.ItemID,
		Description: li.Description,
		Price:       li.Price,
		Quantity:    li.Quantity,
		Delivered:   li.Delivered,
		Subtotal:    li.Subtotal(),
	}
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	lines := make([]LineItemResponse, len(t.LineItems))
	for i, li := range t.LineItems {
		lines[i] = ToLineItemResponse(&li)
	}
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Type:          t.Type,
		CurrencyID:    t.CurrencyID,
		ExchangeRate:  t.ExchangeRate,
		ContactID:     t.ContactID,
		RefNumber:     t.RefNumber,
		BillNumber:    t.BillNumber,
		Description:   t.Description,
		Date:          t.Date,
		Total:         t.Total,
		Balance:       t.Balance,
		Discount:      t.Discount,
		State:         t.State,
		Delivered:     t.Delivered,
		Devolution:    t.Devolution,
		CreditRef:     t.CreditRef,
		PaymentDate:   t.PaymentDate,
		LineItems:     lines,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = ToTransactionResponse(&t)
	}
	return responses
}

// ToPayPlanResponse converts a domain.PayPlan to PayPlanResponse DTO.
func ToPayPlanResponse(p *domain.PayPlan) PayPlanResponse {
	return PayPlanResponse{
		PayPlanID:          p.PayPlanID,
		TransactionID:      p.TransactionID,
		Amount:             p.Amount,
		InterestsPenalties: p.InterestsPenalties,
		PaymentDate:        p.PaymentDate,
		AlertDate:          p.AlertDate,
		Paid:               p.Paid,
	}
}

// ToPayPlanResponses converts a slice of domain.PayPlan to []PayPlanResponse.
func ToPayPlanResponses(plans []domain.PayPlan) []PayPlanResponse {
	responses := make([]PayPlanResponse, len(plans))
	for i, p := range plans {
		responses[i] = ToPayPlanResponse(&p)
	}
	return responses
}
