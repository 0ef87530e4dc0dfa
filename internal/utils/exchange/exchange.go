package exchange

import (
	"fmt"

	"github.com/fffx/bonsaiERP/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance absorbs rounding noise in cross-currency comparisons; amounts
// closer than this are treated as equal.
var Tolerance = decimal.RequireFromString("0.0001")

// conversionScale is the number of decimal places kept when dividing by an
// exchange rate.
const conversionScale = 6

// ToAccountCurrency converts an amount in the transaction currency into the
// account currency at the given rate (account units per transaction unit).
func ToAccountCurrency(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}

// ToTransactionCurrency converts an amount denominated in the account
// currency back into the transaction currency.
func ToTransactionCurrency(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.DivRound(rate, conversionScale)
}

// ExceedsBalance reports whether paying amount would overdraw balance, beyond
// rounding tolerance.
func ExceedsBalance(amount, balance decimal.Decimal) bool {
	return amount.Sub(balance).GreaterThan(Tolerance)
}

// WithinTolerance reports whether two amounts differ by no more than the
// rounding tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// RateDisclosure renders the exchange-rate note appended to a ledger
// narrative when the account currency differs from the transaction currency.
// Example: " Exchange rate 1 Dollar = 6.9600 Bolivianos".
func RateDisclosure(rate decimal.Decimal, from, to domain.Currency) string {
	toName := to.Plural
	if toName == "" {
		toName = to.Name
	}
	return fmt.Sprintf(" Exchange rate 1 %s = %s %s", from.Name, rate.StringFixed(4), toName)
}
