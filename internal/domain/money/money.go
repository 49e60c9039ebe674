// Package money provides an immutable currency-tagged amount stored as
// integer cents. All arithmetic stays in integer cents; rounding happens
// only when constructing from a floating or decimal value.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a constructor receives an empty currency code.
const DefaultCurrency = "EUR"

var hundred = decimal.NewFromInt(100)

// Money is an amount of a single currency, in integer cents.
// The zero value is 0 EUR-less; use New to construct valid values.
type Money struct {
	cents    int64
	currency string
}

// New creates a Money from integer cents and an ISO 4217 currency code.
// The code is uppercased; an empty code defaults to EUR. Negative amounts
// fail with *InvalidPriceError.
func New(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, &InvalidPriceError{Cents: cents}
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{cents: cents, currency: strings.ToUpper(currency)}, nil
}

// FromFloat creates a Money from a major-unit amount (15.99 EUR), rounding
// to the nearest cent.
func FromFloat(amount float64, currency string) (Money, error) {
	cents := decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
	return New(cents, currency)
}

// FromDecimal creates a Money from a decimal major-unit amount, rounding to
// the nearest cent. Used at the persistence boundary for NUMERIC columns.
func FromDecimal(amount decimal.Decimal, currency string) (Money, error) {
	cents := amount.Mul(hundred).Round(0).IntPart()
	return New(cents, currency)
}

// Zero returns the zero amount of the given currency.
func Zero(currency string) Money {
	m, _ := New(0, currency)
	return m
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 { return m.cents }

// Currency returns the uppercased ISO 4217 currency code.
func (m Money) Currency() string { return m.currency }

// Float64 returns the amount in major units (1599 cents -> 15.99).
func (m Money) Float64() float64 { return float64(m.cents) / 100 }

// Decimal returns the amount in major units as an exact decimal.
func (m Money) Decimal() decimal.Decimal { return decimal.New(m.cents, -2) }

// Add returns m + other. Differing currencies fail with
// *CurrencyMismatchError.
func (m Money) Add(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return New(m.cents+other.cents, m.currency)
}

// Sub returns m - other. Differing currencies fail with
// *CurrencyMismatchError; a negative result fails with *InvalidPriceError.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return New(m.cents-other.cents, m.currency)
}

// Mul returns m scaled by factor, rounded to the nearest cent.
func (m Money) Mul(factor float64) (Money, error) {
	cents := decimal.NewFromInt(m.cents).Mul(decimal.NewFromFloat(factor)).Round(0).IntPart()
	return New(cents, m.currency)
}

// MulInt returns m scaled by an integer factor, exact in cents.
func (m Money) MulInt(factor int64) (Money, error) {
	return New(m.cents*factor, m.currency)
}

// Equal reports structural equality: both amount and currency match.
func (m Money) Equal(other Money) bool {
	return m.cents == other.cents && m.currency == other.currency
}

// String returns a canonical debug form like "15.99 EUR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(2), m.currency)
}

func (m Money) assertSameCurrency(other Money) error {
	if m.currency != other.currency {
		return &CurrencyMismatchError{Left: m.currency, Right: other.currency}
	}
	return nil
}
