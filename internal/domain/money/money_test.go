package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		cents        int64
		currency     string
		wantCents    int64
		wantCurrency string
		wantErr      bool
	}{
		{name: "valid amount", cents: 1599, currency: "EUR", wantCents: 1599, wantCurrency: "EUR"},
		{name: "zero is valid", cents: 0, currency: "EUR", wantCents: 0, wantCurrency: "EUR"},
		{name: "currency uppercased", cents: 100, currency: "usd", wantCents: 100, wantCurrency: "USD"},
		{name: "empty currency defaults to EUR", cents: 100, wantCents: 100, wantCurrency: "EUR"},
		{name: "negative amount rejected", cents: -1, currency: "EUR", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.cents, tt.currency)
			if tt.wantErr {
				var priceErr *InvalidPriceError
				require.ErrorAs(t, err, &priceErr)
				assert.Equal(t, tt.cents, priceErr.Cents)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCents, m.Cents())
			assert.Equal(t, tt.wantCurrency, m.Currency())
		})
	}
}

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		wantCents int64
		wantErr   bool
	}{
		{name: "exact cents", amount: 15.99, wantCents: 1599},
		{name: "rounds up", amount: 1.005, wantCents: 101},
		{name: "rounds down", amount: 1.004, wantCents: 100},
		{name: "whole units", amount: 12, wantCents: 1200},
		{name: "negative rejected", amount: -0.01, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromFloat(tt.amount, "EUR")
			if tt.wantErr {
				var priceErr *InvalidPriceError
				require.ErrorAs(t, err, &priceErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCents, m.Cents())
		})
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 1599, 123456789} {
		m, err := New(cents, "EUR")
		require.NoError(t, err)

		back, err := FromFloat(m.Float64(), "EUR")
		require.NoError(t, err)
		assert.Equal(t, cents, back.Cents())
	}
}

func TestArithmetic(t *testing.T) {
	a, err := New(1599, "EUR")
	require.NoError(t, err)
	b, err := New(500, "EUR")
	require.NoError(t, err)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, int64(2099), sum.Cents())
		// operands untouched
		assert.Equal(t, int64(1599), a.Cents())
		assert.Equal(t, int64(500), b.Cents())
	})

	t.Run("add then subtract is identity", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		diff, err := sum.Sub(b)
		require.NoError(t, err)
		assert.True(t, diff.Equal(a))
	})

	t.Run("subtracting below zero fails", func(t *testing.T) {
		_, err := b.Sub(a)
		var priceErr *InvalidPriceError
		require.ErrorAs(t, err, &priceErr)
	})

	t.Run("currency mismatch fails", func(t *testing.T) {
		usd, err := New(100, "USD")
		require.NoError(t, err)

		_, err = a.Add(usd)
		var mismatch *CurrencyMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "EUR", mismatch.Left)
		assert.Equal(t, "USD", mismatch.Right)

		_, err = a.Sub(usd)
		require.ErrorAs(t, err, &mismatch)
	})

	t.Run("multiply rounds to nearest cent", func(t *testing.T) {
		m, err := New(1000, "EUR")
		require.NoError(t, err)

		scaled, err := m.Mul(0.333)
		require.NoError(t, err)
		assert.Equal(t, int64(333), scaled.Cents())

		scaled, err = m.Mul(1.0555)
		require.NoError(t, err)
		assert.Equal(t, int64(1056), scaled.Cents())
	})

	t.Run("multiply by integer is exact", func(t *testing.T) {
		line, err := a.MulInt(3)
		require.NoError(t, err)
		assert.Equal(t, int64(4797), line.Cents())
	})
}

func TestEqual(t *testing.T) {
	a, _ := New(1599, "EUR")
	b, _ := New(1599, "EUR")
	c, _ := New(1599, "USD")
	d, _ := New(1600, "EUR")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestDecimal(t *testing.T) {
	m, err := New(1599, "EUR")
	require.NoError(t, err)
	assert.True(t, m.Decimal().Equal(decimal.RequireFromString("15.99")))

	back, err := FromDecimal(m.Decimal(), "EUR")
	require.NoError(t, err)
	assert.True(t, m.Equal(back))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		cents    int64
		currency string
		locale   string
		want     string
	}{
		{name: "fr-FR default", cents: 1599, currency: "EUR", locale: "", want: "15,99 €"},
		{name: "fr-FR thousands", cents: 123456, currency: "EUR", locale: "fr-FR", want: "1 234,56 €"},
		{name: "en-US", cents: 1599, currency: "EUR", locale: "en-US", want: "€15.99"},
		{name: "en-US thousands", cents: 123456789, currency: "USD", locale: "en-US", want: "$1,234,567.89"},
		{name: "unknown currency falls back to code", cents: 100, currency: "SEK", locale: "en-US", want: "SEK1.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.cents, tt.currency)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Format(tt.locale))
		})
	}
}

func TestString(t *testing.T) {
	m, err := New(1599, "EUR")
	require.NoError(t, err)
	assert.Equal(t, "15.99 EUR", m.String())
}
