package domain_test

import (
	"testing"
	"time"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, 3, n, 0, 0, 0, 0, time.UTC)
}

func plan(id string, amount, interest int64, due time.Time) domain.PayPlan {
	return domain.PayPlan{
		PayPlanID:          id,
		TransactionID:      "txn-1",
		Amount:             decimal.NewFromInt(amount),
		InterestsPenalties: decimal.NewFromInt(interest),
		PaymentDate:        due,
		AlertDate:          due.AddDate(0, 0, -5),
	}
}

func TestApplyPaymentToPlans_ExactBalance(t *testing.T) {
	plans := []domain.PayPlan{
		plan("pp-1", 10, 0, day(1)),
		plan("pp-2", 10, 0, day(10)),
	}

	app, err := domain.ApplyPaymentToPlans(plans, decimal.NewFromInt(20), decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, []string{"pp-1", "pp-2"}, app.UpdatedPlanIDs())
	assert.Nil(t, app.NewPlan)
	for _, p := range app.UpdatedPlans {
		assert.True(t, p.Paid)
	}
}

func TestApplyPaymentToPlans_OverpaysMidSchedule(t *testing.T) {
	// Plans of 10/10/10 and a payment of 15: the first two are absorbed and a
	// leftover plan of 5 is created at the second plan's schedule.
	plans := []domain.PayPlan{
		plan("pp-1", 10, 0, day(1)),
		plan("pp-2", 10, 0, day(10)),
		plan("pp-3", 10, 0, day(20)),
	}

	app, err := domain.ApplyPaymentToPlans(plans, decimal.NewFromInt(15), decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, []string{"pp-1", "pp-2"}, app.UpdatedPlanIDs())
	require.NotNil(t, app.NewPlan)
	assert.True(t, app.NewPlan.Amount.Equal(decimal.NewFromInt(5)))
	assert.True(t, app.NewPlan.PaymentDate.Equal(day(10)))
	assert.True(t, app.NewPlan.AlertDate.Equal(day(5)))
	assert.False(t, app.NewPlan.Paid)
}

func TestApplyPaymentToPlans_AbsorptionOrderIsDateThenID(t *testing.T) {
	// Out-of-order input; absorption still follows (payment_date, id) ascending.
	plans := []domain.PayPlan{
		plan("pp-b", 10, 0, day(10)),
		plan("pp-c", 10, 0, day(10)),
		plan("pp-a", 10, 0, day(1)),
	}

	app, err := domain.ApplyPaymentToPlans(plans, decimal.NewFromInt(20), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, []string{"pp-a", "pp-b"}, app.UpdatedPlanIDs())
}

func TestApplyPaymentToPlans_InterestCarriesToNextPlan(t *testing.T) {
	plans := []domain.PayPlan{
		plan("pp-1", 10, 2, day(1)),
		plan("pp-2", 10, 1, day(10)),
	}

	// Pays the first plan's amount exactly but only part of its interest.
	app, err := domain.ApplyPaymentToPlans(plans, decimal.NewFromInt(10), decimal.NewFromInt(1))
	require.NoError(t, err)

	require.Len(t, app.UpdatedPlans, 2)
	assert.True(t, app.UpdatedPlans[0].Paid)
	carried := app.UpdatedPlans[1]
	assert.Equal(t, "pp-2", carried.PayPlanID)
	assert.False(t, carried.Paid)
	assert.True(t, carried.InterestsPenalties.Equal(decimal.NewFromInt(2)), "shortfall of 1 added to next plan's interest")
}

func TestApplyPaymentToPlans_PendingInterestWithoutNextPlanFails(t *testing.T) {
	plans := []domain.PayPlan{
		plan("pp-1", 10, 2, day(1)),
	}

	_, err := domain.ApplyPaymentToPlans(plans, decimal.NewFromInt(10), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrPendingInterest)
}

func TestApplyPaymentToPlans_SkipsPaidPlans(t *testing.T) {
	paid := plan("pp-1", 10, 0, day(1))
	paid.Paid = true
	plans := []domain.PayPlan{
		paid,
		plan("pp-2", 10, 0, day(10)),
	}

	app, err := domain.ApplyPaymentToPlans(plans, decimal.NewFromInt(10), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, []string{"pp-2"}, app.UpdatedPlanIDs())
	assert.Nil(t, app.NewPlan)
}

func TestApplyPaymentToPlans_NoPlansIsNoop(t *testing.T) {
	app, err := domain.ApplyPaymentToPlans(nil, decimal.NewFromInt(10), decimal.Zero)
	require.NoError(t, err)
	assert.Empty(t, app.UpdatedPlans)
	assert.Nil(t, app.NewPlan)
}

func TestSplitPlan_RepeatsInstallments(t *testing.T) {
	p := plan("pp-1", 130, 3, day(1))

	out := domain.SplitPlan(p, decimal.NewFromInt(20), day(11), true)

	require.Len(t, out, 7) // ceil(130/20)
	total := decimal.Zero
	for _, pp := range out {
		total = total.Add(pp.Amount)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(130)))
	assert.True(t, out[0].InterestsPenalties.Equal(decimal.NewFromInt(3)), "interest stays on the first installment")
	assert.True(t, out[6].Amount.Equal(decimal.NewFromInt(10)), "last installment carries the remainder")
	assert.True(t, out[1].PaymentDate.After(out[0].PaymentDate))
}

func TestNewCreditSchedule_CoversFullBalance(t *testing.T) {
	txn := &domain.Transaction{
		TransactionID: "txn-1",
		Date:          day(1),
		Balance:       decimal.NewFromInt(130),
	}

	pp := domain.NewCreditSchedule(txn, day(2))
	assert.True(t, pp.Amount.Equal(decimal.NewFromInt(130)))
	assert.True(t, pp.PaymentDate.After(txn.Date))
	assert.True(t, pp.AlertDate.Before(pp.PaymentDate))
}

func TestUnpaidBalance(t *testing.T) {
	paid := plan("pp-1", 10, 1, day(1))
	paid.Paid = true
	plans := []domain.PayPlan{paid, plan("pp-2", 20, 2, day(10))}
	assert.True(t, domain.UnpaidBalance(plans).Equal(decimal.NewFromInt(22)))
}
