package domain

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrPendingInterest is returned when a payment settles the outstanding plan
// amounts exactly but leaves interest owed with no later plan to carry it.
var ErrPendingInterest = errors.New("pending interest balance, review credits")

// Default scheduling intervals for generated pay plans.
const (
	CreditTermDays      = 30 // first installment due after approve-credit
	AlertLeadDays       = 5  // alert precedes the due date by this much
	ReinstatedDueDays   = 5  // plan recreated by a payment deactivation
	InstallmentGapDays  = 30 // spacing between split installments
)

// PayPlan is one installment obligation of a transaction. Plans absorb
// payments strictly in (PaymentDate, PayPlanID) ascending order; that order
// is a stable contract, not an incidental query default.
type PayPlan struct {
	PayPlanID          string          `json:"payPlanID"`
	TransactionID      string          `json:"transactionID"`
	Amount             decimal.Decimal `json:"amount"`
	InterestsPenalties decimal.Decimal `json:"interestsPenalties"`
	PaymentDate        time.Time       `json:"paymentDate"`
	AlertDate          time.Time       `json:"alertDate"`
	Paid               bool            `json:"paid"`
}

// SortPlans orders plans by (PaymentDate, PayPlanID) ascending, the absorption
// order contract.
func SortPlans(plans []PayPlan) {
	sort.SliceStable(plans, func(i, j int) bool {
		if !plans[i].PaymentDate.Equal(plans[j].PaymentDate) {
			return plans[i].PaymentDate.Before(plans[j].PaymentDate)
		}
		return plans[i].PayPlanID < plans[j].PayPlanID
	})
}

// PlanApplication reports the outcome of absorbing a payment into a
// transaction's unpaid pay plans: every plan touched by the walk, and the
// leftover plan created when the payment overpays a plan mid-schedule.
type PlanApplication struct {
	UpdatedPlans []PayPlan
	NewPlan      *PayPlan
}

// UpdatedPlanIDs lists the ids of every plan touched by the application.
func (a PlanApplication) UpdatedPlanIDs() []string {
	ids := make([]string, len(a.UpdatedPlans))
	for i, p := range a.UpdatedPlans {
		ids[i] = p.PayPlanID
	}
	return ids
}

// ApplyPaymentToPlans walks the unpaid plans in absorption order, subtracting
// the incoming amount and interest from each plan in turn and marking each
// fully absorbed plan paid.
//
// Edge policy:
//   - remainder goes negative on a plan: a new plan is created for the
//     absolute leftover, dated at that plan's payment/alert dates, and the
//     walk stops;
//   - remainder hits zero on amount while interest is still owed: the next
//     unpaid plan's interest is increased by the shortfall; with no next plan
//     the whole payment fails with ErrPendingInterest;
//   - remainder hits zero on both: the walk stops cleanly.
//
// The input slice is not mutated; returned plans are copies. The new plan, if
// any, carries no PayPlanID; the caller assigns one before persisting.
func ApplyPaymentToPlans(plans []PayPlan, amount, interests decimal.Decimal) (PlanApplication, error) {
	unpaid := make([]PayPlan, 0, len(plans))
	for _, p := range plans {
		if !p.Paid {
			unpaid = append(unpaid, p)
		}
	}
	SortPlans(unpaid)

	app := PlanApplication{}
	remaining := amount
	remInterest := interests

	for i := range unpaid {
		pp := unpaid[i]
		remaining = remaining.Sub(pp.Amount)
		remInterest = remInterest.Sub(pp.InterestsPenalties)

		pp.Paid = true
		app.UpdatedPlans = append(app.UpdatedPlans, pp)

		if remaining.IsNegative() {
			leftoverInterest := decimal.Zero
			if remInterest.IsNegative() {
				leftoverInterest = remInterest.Neg()
			}
			app.NewPlan = &PayPlan{
				TransactionID:      pp.TransactionID,
				Amount:             remaining.Neg(),
				InterestsPenalties: leftoverInterest,
				PaymentDate:        pp.PaymentDate,
				AlertDate:          pp.AlertDate,
			}
			// the absorbed portion of this plan is settled; the leftover
			// replaces it in the schedule
			return app, nil
		}

		if remaining.IsZero() && remInterest.IsNegative() {
			if i+1 < len(unpaid) {
				next := unpaid[i+1]
				next.InterestsPenalties = next.InterestsPenalties.Add(remInterest.Neg())
				app.UpdatedPlans = append(app.UpdatedPlans, next)
				return app, nil
			}
			return PlanApplication{}, ErrPendingInterest
		}

		if remaining.IsZero() {
			return app, nil
		}
	}

	return app, nil
}

// NewCreditSchedule builds the initial installment schedule attached when a
// transaction is approved on credit terms: a single plan for the full balance
// due after the standard credit term.
func NewCreditSchedule(t *Transaction, now time.Time) PayPlan {
	due := t.Date.AddDate(0, 0, CreditTermDays)
	if due.Before(now) {
		due = now.AddDate(0, 0, CreditTermDays)
	}
	return PayPlan{
		TransactionID: t.TransactionID,
		Amount:        t.Balance,
		PaymentDate:   due,
		AlertDate:     due.AddDate(0, 0, -AlertLeadDays),
	}
}

// SplitPlan replaces an unpaid plan with repeated installments of the given
// amount starting at firstDue, the last installment carrying the remainder.
// Interest on the original plan stays on the first installment.
func SplitPlan(plan PayPlan, installment decimal.Decimal, firstDue time.Time, repeat bool) []PayPlan {
	if !repeat || installment.LessThanOrEqual(decimal.Zero) || installment.GreaterThanOrEqual(plan.Amount) {
		plan.PaymentDate = firstDue
		plan.AlertDate = firstDue.AddDate(0, 0, -AlertLeadDays)
		return []PayPlan{plan}
	}

	var out []PayPlan
	remaining := plan.Amount
	due := firstDue
	first := true
	for remaining.IsPositive() {
		amt := decimal.Min(installment, remaining)
		pp := PayPlan{
			TransactionID: plan.TransactionID,
			Amount:        amt,
			PaymentDate:   due,
			AlertDate:     due.AddDate(0, 0, -AlertLeadDays),
		}
		if first {
			pp.InterestsPenalties = plan.InterestsPenalties
			first = false
		}
		out = append(out, pp)
		remaining = remaining.Sub(amt)
		due = due.AddDate(0, 0, InstallmentGapDays)
	}
	return out
}

// UnpaidBalance sums amount plus interests over the unpaid plans.
func UnpaidBalance(plans []PayPlan) decimal.Decimal {
	total := decimal.Zero
	for _, p := range plans {
		if !p.Paid {
			total = total.Add(p.Amount).Add(p.InterestsPenalties)
		}
	}
	return total
}
