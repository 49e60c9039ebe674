package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/optimus-erp/procure-api/internal/domain/supplier"
)

var _ supplier.Repository = (*SupplierRepository)(nil)

// SupplierRepository stores suppliers in a map guarded by a mutex.
type SupplierRepository struct {
	mu        sync.RWMutex
	suppliers map[int64]*supplier.Supplier
	nextID    int64
}

// NewSupplierRepository returns an empty in-memory supplier repository.
func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{
		suppliers: make(map[int64]*supplier.Supplier),
		nextID:    1,
	}
}

// NextID allocates the next supplier identifier.
func (r *SupplierRepository) NextID(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	return id, nil
}

// List returns all suppliers ordered by ID.
func (r *SupplierRepository) List(_ context.Context) ([]*supplier.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*supplier.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// GetByID returns a supplier by its identifier.
func (r *SupplierRepository) GetByID(_ context.Context, id int64) (*supplier.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.suppliers[id]
	if !ok {
		return nil, supplier.ErrNotFound
	}
	return s, nil
}

// Create stores a new supplier.
func (r *SupplierRepository) Create(_ context.Context, s *supplier.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.suppliers[s.ID()] = s
	if s.ID() >= r.nextID {
		r.nextID = s.ID() + 1
	}
	return nil
}

// Update replaces the stored state of an existing supplier.
func (r *SupplierRepository) Update(_ context.Context, s *supplier.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.suppliers[s.ID()]; !ok {
		return supplier.ErrNotFound
	}
	r.suppliers[s.ID()] = s
	return nil
}
