package exchange_test

import (
	"testing"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/fffx/bonsaiERP/internal/utils/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundTripConversion(t *testing.T) {
	rate := decimal.RequireFromString("2")
	base := decimal.RequireFromString("130")

	converted := exchange.ToAccountCurrency(base, rate)
	assert.True(t, converted.Equal(decimal.RequireFromString("260")))

	back := exchange.ToTransactionCurrency(converted, rate)
	assert.True(t, exchange.WithinTolerance(back, base))
}

func TestExceedsBalance(t *testing.T) {
	balance := decimal.RequireFromString("1")
	assert.True(t, exchange.ExceedsBalance(decimal.RequireFromString("1.20"), balance))
	assert.False(t, exchange.ExceedsBalance(decimal.RequireFromString("1"), balance))
	// within rounding tolerance
	assert.False(t, exchange.ExceedsBalance(decimal.RequireFromString("1.00005"), balance))
}

func TestRateDisclosure(t *testing.T) {
	from := domain.Currency{Name: "Dollar"}
	to := domain.Currency{Name: "Boliviano", Plural: "Bolivianos"}
	got := exchange.RateDisclosure(decimal.RequireFromString("6.96"), from, to)
	assert.Equal(t, " Exchange rate 1 Dollar = 6.9600 Bolivianos", got)
}
