// Package memory provides in-memory repository implementations used for
// local development and tests, seeded with a small demo catalog.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/optimus-erp/procure-api/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository stores products in a map guarded by a mutex.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int64]*product.Product
	nextID   int64
}

// NewProductRepository returns an empty in-memory product repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[int64]*product.Product),
		nextID:   1,
	}
}

// NextID allocates the next product identifier.
func (r *ProductRepository) NextID(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	return id, nil
}

// List returns all products ordered by ID.
func (r *ProductRepository) List(_ context.Context) ([]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*product.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// GetByID returns a product by its identifier.
func (r *ProductRepository) GetByID(_ context.Context, id int64) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

// GetByIDs returns the products matching the given identifiers. Missing IDs
// are silently skipped; callers detect gaps by comparing lengths.
func (r *ProductRepository) GetByIDs(_ context.Context, ids []int64) ([]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Create stores a new product.
func (r *ProductRepository) Create(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID()] = p
	if p.ID() >= r.nextID {
		r.nextID = p.ID() + 1
	}
	return nil
}

// Update replaces the stored state of an existing product.
func (r *ProductRepository) Update(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[p.ID()]; !ok {
		return product.ErrNotFound
	}
	r.products[p.ID()] = p
	return nil
}
