package drift

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a monetary value used at the reporting boundary. The engines
// compute in float64; Money only exists to format dollar figures with
// proper currency rules.
type Money struct {
	value decimal.Decimal
	cur   string
}

// USD creates a dollar amount from a float.
func USD(v float64) Money { return Money{value: decimal.NewFromFloat(v), cur: money.USD} }

// currency returns a never-nil currency for the money.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the value with its currency's symbol, grouping and
// fraction rules.
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.Round(0).IntPart())
}

// SignedString formats the value with an explicit leading sign.
func (m Money) SignedString() string {
	if m.value.IsNegative() {
		return m.String()
	}
	return "+" + m.String()
}

// AsFloat returns the value as a float64.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }
