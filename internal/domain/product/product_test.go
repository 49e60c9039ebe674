package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimus-erp/procure-api/internal/domain/money"
)

func newTestProduct(t *testing.T, stock int) *Product {
	t.Helper()
	p, err := New(CreateParams{
		ID:         1,
		Name:       "Saumon Atlantique",
		PriceCents: 1599,
		Stock:      stock,
		SupplierID: 42,
		SKU:        "SAU-001",
		Unit:       "kg",
	})
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	p := newTestProduct(t, 50)

	assert.Equal(t, int64(1), p.ID())
	assert.Equal(t, "Saumon Atlantique", p.Name().Value())
	assert.Equal(t, int64(1599), p.Price().Cents())
	assert.Equal(t, "EUR", p.Price().Currency())
	assert.Equal(t, 50, p.Stock().Value())
	assert.Equal(t, "kg", p.Unit())
	assert.False(t, p.CreatedAt().IsZero())
	assert.Equal(t, p.CreatedAt(), p.UpdatedAt())

	t.Run("unit defaults", func(t *testing.T) {
		p, err := New(CreateParams{ID: 2, Name: "Farine T45", PriceCents: 120, Stock: 5})
		require.NoError(t, err)
		assert.Equal(t, DefaultUnit, p.Unit())
	})

	t.Run("invalid inputs rejected", func(t *testing.T) {
		_, err := New(CreateParams{ID: 3, Name: "  ", PriceCents: 100, Stock: 1})
		var nameErr *InvalidNameError
		assert.ErrorAs(t, err, &nameErr)

		_, err = New(CreateParams{ID: 3, Name: "Riz", PriceCents: -1, Stock: 1})
		var priceErr *money.InvalidPriceError
		assert.ErrorAs(t, err, &priceErr)

		_, err = New(CreateParams{ID: 3, Name: "Riz", PriceCents: 100, Stock: -1})
		var qtyErr *InvalidQuantityError
		assert.ErrorAs(t, err, &qtyErr)
	})
}

func TestReserveStock(t *testing.T) {
	p := newTestProduct(t, 8)

	t.Run("insufficient stock fails with details", func(t *testing.T) {
		ten := mustQuantity(t, 10)
		assert.False(t, p.CanFulfill(ten))

		_, err := p.ReserveStock(ten)
		var oos *OutOfStockError
		require.ErrorAs(t, err, &oos)
		assert.Equal(t, int64(1), oos.ProductID)
		assert.Equal(t, 10, oos.Requested)
		assert.Equal(t, 8, oos.Available)
	})

	t.Run("reservation returns new product, original unchanged", func(t *testing.T) {
		five := mustQuantity(t, 5)
		require.True(t, p.CanFulfill(five))

		next, err := p.ReserveStock(five)
		require.NoError(t, err)
		assert.Equal(t, 3, next.Stock().Value())
		assert.Equal(t, 8, p.Stock().Value())
		assert.False(t, next.UpdatedAt().Before(p.UpdatedAt()))
	})

	t.Run("exact stock drains to zero", func(t *testing.T) {
		eight := mustQuantity(t, 8)
		next, err := p.ReserveStock(eight)
		require.NoError(t, err)
		assert.Equal(t, 0, next.Stock().Value())
	})
}

func TestRestock(t *testing.T) {
	p := newTestProduct(t, 3)

	next, err := p.Restock(mustQuantity(t, 20))
	require.NoError(t, err)
	assert.Equal(t, 23, next.Stock().Value())
	assert.Equal(t, 3, p.Stock().Value())
}

func TestUpdatePrice(t *testing.T) {
	p := newTestProduct(t, 10)

	newPrice, err := money.New(1799, "EUR")
	require.NoError(t, err)

	next := p.UpdatePrice(newPrice)
	assert.Equal(t, int64(1799), next.Price().Cents())
	assert.Equal(t, int64(1599), p.Price().Cents())
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, newTestProduct(t, 8).IsLowStock(DefaultLowStockThreshold))
	assert.False(t, newTestProduct(t, 50).IsLowStock(DefaultLowStockThreshold))
}

func TestEqualByIdentity(t *testing.T) {
	a := newTestProduct(t, 10)

	b, err := New(CreateParams{ID: 1, Name: "Autre Nom", PriceCents: 1, Stock: 0})
	require.NoError(t, err)
	c, err := New(CreateParams{ID: 2, Name: "Saumon Atlantique", PriceCents: 1599, Stock: 10})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestRehydrate(t *testing.T) {
	name, err := NewName("Comté AOP")
	require.NoError(t, err)
	price, err := money.New(1890, "EUR")
	require.NoError(t, err)
	stock, err := NewQuantity(12)
	require.NoError(t, err)

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	p := Rehydrate(Props{
		ID:         7,
		Name:       name,
		Price:      price,
		Stock:      stock,
		SupplierID: 3,
		SKU:        "COM-007",
		Unit:       "kg",
		CreatedAt:  created,
		UpdatedAt:  updated,
	})

	assert.Equal(t, int64(7), p.ID())
	assert.Equal(t, "Comté AOP", p.Name().Value())
	assert.Equal(t, created, p.CreatedAt())
	assert.Equal(t, updated, p.UpdatedAt())
}
