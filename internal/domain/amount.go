package domain

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount is a monetary value. Historical data stores amounts as either JSON
// numbers or strings, so unmarshalling accepts both; marshalling always
// emits a plain number. Arithmetic is exact (decimal, not float), which
// keeps the balance = income - expense identity free of rounding drift.
type Amount struct {
	dec decimal.Decimal
}

// NewAmount builds an Amount from a float, for literals and request payloads.
func NewAmount(v float64) Amount {
	return Amount{dec: decimal.NewFromFloat(v)}
}

func (a Amount) Add(b Amount) Amount { return Amount{dec: a.dec.Add(b.dec)} }
func (a Amount) Sub(b Amount) Amount { return Amount{dec: a.dec.Sub(b.dec)} }
func (a Amount) IsPositive() bool    { return a.dec.IsPositive() }
func (a Amount) Equal(b Amount) bool { return a.dec.Equal(b.dec) }

// String renders the bare decimal value, e.g. "1234.5".
func (a Amount) String() string { return a.dec.String() }

// Float64 returns the nearest float; for display and tests only.
func (a Amount) Float64() float64 { return a.dec.InexactFloat64() }

// Display renders the amount as Indian rupees with two decimal places and
// thousands separators, e.g. "₹1,234.56".
func (a Amount) Display() string {
	cur := money.GetCurrency(money.INR)
	minor := a.dec.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction)).IntPart()
	return money.New(minor, money.INR).Display()
}

// MarshalJSON emits the value as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.dec.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted numeric string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.dec.UnmarshalJSON(data)
}
