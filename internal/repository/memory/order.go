package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/optimus-erp/procure-api/internal/domain/order"
)

var (
	_ order.Repository = (*OrderRepository)(nil)
	_ order.IDSource   = (*OrderRepository)(nil)
)

// OrderRepository stores orders in a map guarded by a mutex.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[int64]*order.Order
	nextID int64
}

// NewOrderRepository returns an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[int64]*order.Order),
		nextID: 1,
	}
}

// NextOrderID allocates the next order identifier.
func (r *OrderRepository) NextOrderID(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	return id, nil
}

// Create stores a new order.
func (r *OrderRepository) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[o.ID()] = o
	if o.ID() >= r.nextID {
		r.nextID = o.ID() + 1
	}
	return nil
}

// GetByID returns an order by its identifier.
func (r *OrderRepository) GetByID(_ context.Context, id int64) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}

// List returns all orders, most recently created first.
func (r *OrderRepository) List(_ context.Context) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].ID() > out[j].ID()
		}
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

// Update replaces the stored state of an existing order.
func (r *OrderRepository) Update(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID()]; !ok {
		return order.ErrNotFound
	}
	r.orders[o.ID()] = o
	return nil
}
