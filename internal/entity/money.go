package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Money is an amount in currency minor units (paise for INR).
// All arithmetic stays in int64 so repeated bill computations can never
// accumulate float drift.
type Money struct {
	Cents    int64
	Currency string
}

func NewMoney(cents int64, currency string) Money {
	return Money{Cents: cents, Currency: currency}
}

func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents, Currency: m.Currency}
}

// MulQty scales the amount by an item quantity.
func (m Money) MulQty(qty int) Money {
	return Money{Cents: m.Cents * int64(qty), Currency: m.Currency}
}

// Percent returns the given fraction of the amount, expressed in basis
// points (500 = 5%), rounded half-up to the nearest minor unit.
func (m Money) Percent(basisPoints int64) Money {
	cents := (m.Cents*basisPoints + 5000) / 10000
	return Money{Cents: cents, Currency: m.Currency}
}

func (m Money) IsZero() bool { return m.Cents == 0 }

func (m Money) String() string {
	sign := ""
	c := m.Cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%s %d.%02d", sign, m.Currency, c/100, c%100)
}
