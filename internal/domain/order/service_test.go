package order

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimus-erp/procure-api/internal/domain/event"
	"github.com/optimus-erp/procure-api/internal/domain/money"
	"github.com/optimus-erp/procure-api/internal/domain/product"
	"github.com/optimus-erp/procure-api/internal/domain/supplier"
)

// --- Mock implementations ---

type mockProductRepo struct {
	byID    map[int64]*product.Product
	updated []*product.Product
	getErr  error
}

func (m *mockProductRepo) NextID(_ context.Context) (int64, error) { return 0, nil }

func (m *mockProductRepo) List(_ context.Context) ([]*product.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []int64) ([]*product.Product, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []*product.Product
	for _, id := range ids {
		if p, ok := m.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Create(_ context.Context, _ *product.Product) error { return nil }

func (m *mockProductRepo) Update(_ context.Context, p *product.Product) error {
	m.updated = append(m.updated, p)
	return nil
}

type mockSupplierRepo struct {
	byID map[int64]*supplier.Supplier
}

func (m *mockSupplierRepo) NextID(_ context.Context) (int64, error) { return 0, nil }

func (m *mockSupplierRepo) List(_ context.Context) ([]*supplier.Supplier, error) { return nil, nil }

func (m *mockSupplierRepo) GetByID(_ context.Context, id int64) (*supplier.Supplier, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, supplier.ErrNotFound
	}
	return s, nil
}

func (m *mockSupplierRepo) Create(_ context.Context, _ *supplier.Supplier) error { return nil }
func (m *mockSupplierRepo) Update(_ context.Context, _ *supplier.Supplier) error { return nil }

type mockOrderRepo struct {
	byID      map[int64]*Order
	created   *Order
	updated   *Order
	createErr error
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	m.created = o
	return m.createErr
}

func (m *mockOrderRepo) GetByID(_ context.Context, id int64) (*Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

func (m *mockOrderRepo) List(_ context.Context) ([]*Order, error) { return nil, nil }

func (m *mockOrderRepo) Update(_ context.Context, o *Order) error {
	m.updated = o
	return nil
}

type staticIDs struct {
	next int64
}

func (s *staticIDs) NextOrderID(_ context.Context) (int64, error) {
	s.next++
	return s.next, nil
}

// --- Helpers ---

func newCatalog(t *testing.T) *mockProductRepo {
	t.Helper()
	salmon, err := product.New(product.CreateParams{
		ID: 1, Name: "Saumon Atlantique", PriceCents: 1599, Stock: 50, SupplierID: 30, Unit: "kg",
	})
	require.NoError(t, err)
	rice, err := product.New(product.CreateParams{
		ID: 2, Name: "Riz Basmati", PriceCents: 250, Stock: 12, SupplierID: 30, Unit: "kg",
	})
	require.NoError(t, err)

	return &mockProductRepo{byID: map[int64]*product.Product{1: salmon, 2: rice}}
}

func approvedSupplier(id int64) *supplier.Supplier {
	return supplier.New(supplier.CreateParams{ID: id, Name: "Metro Cash & Carry"}).Approve()
}

func newTestService(t *testing.T) (*Service, *mockProductRepo, *mockOrderRepo, *event.MemoryLog) {
	t.Helper()
	products := newCatalog(t)
	suppliers := &mockSupplierRepo{byID: map[int64]*supplier.Supplier{
		30: approvedSupplier(30),
		31: supplier.New(supplier.CreateParams{ID: 31, Name: "Pomona"}), // not yet approved
	}}
	orders := &mockOrderRepo{byID: map[int64]*Order{}}
	log := event.NewMemoryLog()

	svc := NewService(products, suppliers, orders, &staticIDs{}, log, product.DefaultLowStockThreshold)
	return svc, products, orders, log
}

// --- Tests ---

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path reserves stock and records events", func(t *testing.T) {
		svc, products, orders, log := newTestService(t)

		result, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
			TenantID:     10,
			SiteID:       20,
			SupplierID:   30,
			Items:        []ItemRequest{{ProductID: 1, Quantity: 3}, {ProductID: 2, Quantity: 4}},
			DeliveryDate: time.Now().AddDate(0, 0, 7),
		})
		require.NoError(t, err)

		o := result.Order
		assert.Equal(t, StatusDraft, o.Status())
		assert.Equal(t, int64(30), o.SupplierID())
		require.Len(t, o.Items(), 2)
		// snapshots carry product name and price at creation time
		assert.Equal(t, "Saumon Atlantique", o.Items()[0].ProductName)
		assert.Equal(t, int64(1599), o.Items()[0].UnitPrice.Cents())

		total, err := o.TotalAmount()
		require.NoError(t, err)
		assert.Equal(t, int64(3*1599+4*250), total.Cents())

		// stock was reserved and persisted
		require.Len(t, result.Products, 2)
		assert.Equal(t, 47, result.Products[0].Stock().Value())
		assert.Equal(t, 8, result.Products[1].Stock().Value())
		assert.Len(t, products.updated, 2)
		assert.NotNil(t, orders.created)

		// OrderCreated + two StockUpdated + one LowStockAlert (rice fell to 8)
		assert.Len(t, log.OfType(event.TypeOrderCreated), 1)
		assert.Len(t, log.OfType(event.TypeStockUpdated), 2)
		alerts := log.OfType(event.TypeLowStockAlert)
		require.Len(t, alerts, 1)
		alert := alerts[0].(event.LowStockAlert)
		assert.Equal(t, int64(2), alert.ProductID)
		assert.Equal(t, 8, alert.CurrentStock)
	})

	t.Run("empty items rejected", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, err := svc.PlaceOrder(ctx, PlaceOrderRequest{SupplierID: 30})
		assert.ErrorIs(t, err, ErrEmptyItems)
	})

	t.Run("unapproved supplier rejected", func(t *testing.T) {
		svc, products, orders, _ := newTestService(t)
		_, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
			SupplierID: 31,
			Items:      []ItemRequest{{ProductID: 1, Quantity: 1}},
		})
		var elig *SupplierNotEligibleError
		require.ErrorAs(t, err, &elig)
		assert.Equal(t, int64(31), elig.SupplierID)
		assert.Empty(t, products.updated)
		assert.Nil(t, orders.created)
	})

	t.Run("unknown supplier", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
			SupplierID: 99,
			Items:      []ItemRequest{{ProductID: 1, Quantity: 1}},
		})
		assert.ErrorIs(t, err, supplier.ErrNotFound)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
			SupplierID: 30,
			Items:      []ItemRequest{{ProductID: 77, Quantity: 1}},
		})
		var nf *ProductNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, int64(77), nf.ProductID)
	})

	t.Run("mixed currency line rejected before persisting", func(t *testing.T) {
		svc, products, orders, log := newTestService(t)
		truffle, err := product.New(product.CreateParams{
			ID: 3, Name: "Truffe Noire", PriceCents: 9900, Currency: "USD", Stock: 4, SupplierID: 30,
		})
		require.NoError(t, err)
		products.byID[3] = truffle

		_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{
			SupplierID: 30,
			Items:      []ItemRequest{{ProductID: 1, Quantity: 1}, {ProductID: 3, Quantity: 1}},
		})
		var mismatch *money.CurrencyMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "EUR", mismatch.Left)
		assert.Equal(t, "USD", mismatch.Right)
		assert.Empty(t, products.updated)
		assert.Nil(t, orders.created)
		assert.Zero(t, log.Len())
	})

	t.Run("oversell aborts before persisting", func(t *testing.T) {
		svc, products, orders, log := newTestService(t)
		_, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
			SupplierID: 30,
			Items:      []ItemRequest{{ProductID: 2, Quantity: 13}},
		})
		var oos *product.OutOfStockError
		require.ErrorAs(t, err, &oos)
		assert.Equal(t, 13, oos.Requested)
		assert.Equal(t, 12, oos.Available)
		assert.Empty(t, products.updated)
		assert.Nil(t, orders.created)
		assert.Zero(t, log.Len())
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
			SupplierID: 30,
			Items:      []ItemRequest{{ProductID: 1, Quantity: -1}},
		})
		var qtyErr *product.InvalidQuantityError
		assert.ErrorAs(t, err, &qtyErr)
	})

	t.Run("repository failure wrapped", func(t *testing.T) {
		svc, products, _, _ := newTestService(t)
		products.getErr = errors.New("db down")
		_, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
			SupplierID: 30,
			Items:      []ItemRequest{{ProductID: 1, Quantity: 1}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "get products")
	})
}

func TestServiceTransitions(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, svc *Service, orders *mockOrderRepo) *Order {
		t.Helper()
		result, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
			SupplierID: 30,
			Items:      []ItemRequest{{ProductID: 1, Quantity: 1}},
		})
		require.NoError(t, err)
		orders.byID[result.Order.ID()] = result.Order
		return result.Order
	}

	t.Run("submit", func(t *testing.T) {
		svc, _, orders, log := newTestService(t)
		o := seed(t, svc, orders)

		pending, err := svc.Submit(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, StatusPending, pending.Status())
		assert.Equal(t, pending, orders.updated)
		assert.Len(t, log.OfType(event.TypeOrderSubmitted), 1)

		orders.byID[o.ID()] = pending
		_, err = svc.Submit(ctx, o.ID())
		var trErr *StatusTransitionError
		require.ErrorAs(t, err, &trErr)
	})

	t.Run("confirm", func(t *testing.T) {
		svc, _, orders, log := newTestService(t)
		o := seed(t, svc, orders)

		confirmed, err := svc.Confirm(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, confirmed.Status())
		assert.Equal(t, confirmed, orders.updated)
		assert.Len(t, log.OfType(event.TypeOrderConfirmed), 1)
	})

	t.Run("deliver requires confirmed", func(t *testing.T) {
		svc, _, orders, log := newTestService(t)
		o := seed(t, svc, orders)

		_, err := svc.MarkDelivered(ctx, o.ID())
		var trErr *StatusTransitionError
		require.ErrorAs(t, err, &trErr)
		assert.Empty(t, log.OfType(event.TypeOrderDelivered))

		confirmed, err := svc.Confirm(ctx, o.ID())
		require.NoError(t, err)
		orders.byID[o.ID()] = confirmed

		delivered, err := svc.MarkDelivered(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, StatusDelivered, delivered.Status())
		assert.Len(t, log.OfType(event.TypeOrderDelivered), 1)
	})

	t.Run("cancel", func(t *testing.T) {
		svc, _, orders, log := newTestService(t)
		o := seed(t, svc, orders)

		cancelled, err := svc.Cancel(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status())
		assert.Len(t, log.OfType(event.TypeOrderCancelled), 1)
	})

	t.Run("unknown order", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, err := svc.Confirm(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
