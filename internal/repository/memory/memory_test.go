package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimus-erp/procure-api/internal/domain/order"
	"github.com/optimus-erp/procure-api/internal/domain/product"
	"github.com/optimus-erp/procure-api/internal/domain/supplier"
)

func TestSeededStores(t *testing.T) {
	ctx := context.Background()

	stores, err := NewSeededStores()
	require.NoError(t, err)

	products, err := stores.Products.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 8)
	assert.Equal(t, "Saumon Atlantique", products[0].Name().Value())
	assert.Equal(t, int64(1599), products[0].Price().Cents())
	assert.Equal(t, "EUR", products[0].Price().Currency())

	suppliers, err := stores.Suppliers.List(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 4)

	approved := 0
	for _, s := range suppliers {
		if s.CanReceiveOrders() {
			approved++
		}
	}
	assert.Equal(t, 3, approved, "Pomona is seeded unapproved")
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	id, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	p, err := product.New(product.CreateParams{
		ID:         id,
		Name:       "Saumon Atlantique",
		PriceCents: 1599,
		Currency:   "EUR",
		Stock:      50,
		SupplierID: 1,
		Unit:       "kg",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, got.Equal(p))
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, product.ErrNotFound)
	})

	t.Run("get by ids skips missing", func(t *testing.T) {
		got, err := repo.GetByIDs(ctx, []int64{id, 99})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("update replaces state", func(t *testing.T) {
		updated, err := p.ReserveStock(mustQuantity(t, 10))
		require.NoError(t, err)
		require.NoError(t, repo.Update(ctx, updated))

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 40, got.Stock().Value())
	})

	t.Run("update missing", func(t *testing.T) {
		ghost, err := product.New(product.CreateParams{
			ID: 42, Name: "Ghost", PriceCents: 100, Currency: "EUR", Stock: 1,
		})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Update(ctx, ghost), product.ErrNotFound)
	})

	t.Run("next id advances past created", func(t *testing.T) {
		next, err := repo.NextID(ctx)
		require.NoError(t, err)
		assert.Greater(t, next, id)
	})
}

func TestSupplierRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSupplierRepository()

	id, err := repo.NextID(ctx)
	require.NoError(t, err)

	s := supplier.New(supplier.CreateParams{ID: id, Name: "Rungis Express"})
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.IsApproved())

	require.NoError(t, repo.Update(ctx, got.Approve()))

	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.IsApproved())

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, supplier.ErrNotFound)
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	first := createTestOrder(t, repo, time.Now().Add(-time.Minute))
	second := createTestOrder(t, repo, time.Now())

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, first.ID())
		require.NoError(t, err)
		assert.True(t, got.Equal(first))
	})

	t.Run("list newest first", func(t *testing.T) {
		orders, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID(), orders[0].ID())
		assert.Equal(t, first.ID(), orders[1].ID())
	})

	t.Run("update transitions", func(t *testing.T) {
		submitted, err := first.Submit()
		require.NoError(t, err)
		require.NoError(t, repo.Update(ctx, submitted))

		got, err := repo.GetByID(ctx, first.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, got.Status())
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, order.ErrNotFound)
	})
}

func createTestOrder(t *testing.T, repo *OrderRepository, createdAt time.Time) *order.Order {
	t.Helper()
	ctx := context.Background()

	id, err := repo.NextOrderID(ctx)
	require.NoError(t, err)

	o, err := order.New(order.CreateParams{
		ID:         id,
		TenantID:   1,
		SiteID:     1,
		SupplierID: 1,
		Currency:   "EUR",
		Items: []order.ItemParams{
			{ProductID: 1, ProductName: "Saumon Atlantique", Quantity: 2, UnitPriceCents: 1599},
		},
	})
	require.NoError(t, err)

	o = order.Rehydrate(orderProps(o, createdAt))
	require.NoError(t, repo.Create(ctx, o))
	return o
}

func orderProps(o *order.Order, createdAt time.Time) order.Props {
	items := make([]order.Item, len(o.Items()))
	copy(items, o.Items())
	return order.Props{
		ID:           o.ID(),
		OrderNumber:  o.OrderNumber(),
		TenantID:     o.TenantID(),
		SiteID:       o.SiteID(),
		SupplierID:   o.SupplierID(),
		Items:        items,
		Status:       o.Status(),
		Currency:     o.Currency(),
		DeliveryDate: o.DeliveryDate(),
		Notes:        o.Notes(),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestAPIKeyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAPIKeyRepository()
	repo.Add("abc123", "dev key", []string{"orders:write"})

	info, err := repo.FindByHash(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "dev key", info.Name)
	assert.True(t, info.HasScope("orders:write"))
	assert.False(t, info.HasScope("admin"))

	_, err = repo.FindByHash(ctx, "nope")
	assert.Error(t, err)
}

func mustQuantity(t *testing.T, n int) product.Quantity {
	t.Helper()
	q, err := product.NewQuantity(n)
	if err != nil {
		t.Fatalf("quantity %d: %v", n, err)
	}
	return q
}
