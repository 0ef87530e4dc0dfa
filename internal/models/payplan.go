package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayPlan is the pay_plans table row.
type PayPlan struct {
	PayPlanID          string          `json:"payPlanID"`
	TransactionID      string          `json:"transactionID"`
	Amount             decimal.Decimal `json:"amount"`
	InterestsPenalties decimal.Decimal `json:"interestsPenalties"`
	PaymentDate        time.Time       `json:"paymentDate"`
	AlertDate          time.Time       `json:"alertDate"`
	Paid               bool            `json:"paid"`
}
