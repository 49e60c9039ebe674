// Package product holds the product aggregate and its value objects:
// validated names, non-negative quantities, and the stock-reservation rules.
package product

import (
	"context"
	"time"

	"github.com/optimus-erp/procure-api/internal/domain/money"
)

// DefaultUnit is the stock-keeping unit label used when none is given.
const DefaultUnit = "unité"

// Product is an immutable catalog item. Identity is the numeric id; every
// state transition returns a new Product and leaves the receiver untouched.
type Product struct {
	id         int64
	name       Name
	price      money.Money
	stock      Quantity
	categoryID int64
	supplierID int64
	sku        string
	unit       string
	createdAt  time.Time
	updatedAt  time.Time
}

// CreateParams holds the raw input for creating a Product. CategoryID and
// SupplierID are optional; zero means unset.
type CreateParams struct {
	ID         int64
	Name       string
	PriceCents int64
	Currency   string
	Stock      int
	CategoryID int64
	SupplierID int64
	SKU        string
	Unit       string
}

// New validates params through the value-object constructors and returns a
// Product with both timestamps set to now.
func New(params CreateParams) (*Product, error) {
	name, err := NewName(params.Name)
	if err != nil {
		return nil, err
	}
	price, err := money.New(params.PriceCents, params.Currency)
	if err != nil {
		return nil, err
	}
	stock, err := NewQuantity(params.Stock)
	if err != nil {
		return nil, err
	}

	unit := params.Unit
	if unit == "" {
		unit = DefaultUnit
	}

	now := time.Now()
	return &Product{
		id:         params.ID,
		name:       name,
		price:      price,
		stock:      stock,
		categoryID: params.CategoryID,
		supplierID: params.SupplierID,
		sku:        params.SKU,
		unit:       unit,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Props is the full internal state of a Product, used for rehydration from
// storage.
type Props struct {
	ID         int64
	Name       Name
	Price      money.Money
	Stock      Quantity
	CategoryID int64
	SupplierID int64
	SKU        string
	Unit       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Rehydrate reconstructs a Product from previously valid stored state.
// It is a trust boundary: no validation is re-run.
func Rehydrate(props Props) *Product {
	unit := props.Unit
	if unit == "" {
		unit = DefaultUnit
	}
	return &Product{
		id:         props.ID,
		name:       props.Name,
		price:      props.Price,
		stock:      props.Stock,
		categoryID: props.CategoryID,
		supplierID: props.SupplierID,
		sku:        props.SKU,
		unit:       unit,
		createdAt:  props.CreatedAt,
		updatedAt:  props.UpdatedAt,
	}
}

func (p *Product) ID() int64            { return p.id }
func (p *Product) Name() Name           { return p.name }
func (p *Product) Price() money.Money   { return p.price }
func (p *Product) Stock() Quantity      { return p.stock }
func (p *Product) CategoryID() int64    { return p.categoryID }
func (p *Product) SupplierID() int64    { return p.supplierID }
func (p *Product) SKU() string          { return p.sku }
func (p *Product) Unit() string         { return p.unit }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// CanFulfill reports whether current stock covers the requested quantity.
func (p *Product) CanFulfill(requested Quantity) bool {
	return p.stock.IsSufficientFor(requested)
}

// ReserveStock returns a copy of the product with the quantity removed from
// stock. Reserving more than is available fails with *OutOfStockError; the
// sufficiency check runs before subtraction, so the subtraction itself
// cannot go negative.
func (p *Product) ReserveStock(quantity Quantity) (*Product, error) {
	if !p.CanFulfill(quantity) {
		return nil, &OutOfStockError{
			ProductID: p.id,
			Requested: quantity.Value(),
			Available: p.stock.Value(),
		}
	}

	stock, err := p.stock.Sub(quantity)
	if err != nil {
		return nil, err
	}

	next := *p
	next.stock = stock
	next.updatedAt = time.Now()
	return &next, nil
}

// Restock returns a copy of the product with the quantity added to stock.
func (p *Product) Restock(quantity Quantity) (*Product, error) {
	stock, err := p.stock.Add(quantity)
	if err != nil {
		return nil, err
	}

	next := *p
	next.stock = stock
	next.updatedAt = time.Now()
	return &next, nil
}

// UpdatePrice returns a copy of the product with the new price.
func (p *Product) UpdatePrice(newPrice money.Money) *Product {
	next := *p
	next.price = newPrice
	next.updatedAt = time.Now()
	return &next
}

// IsLowStock reports whether stock is below threshold (see Quantity.IsLowStock).
func (p *Product) IsLowStock(threshold int) bool {
	return p.stock.IsLowStock(threshold)
}

// Equal compares by identity only.
func (p *Product) Equal(other *Product) bool {
	return other != nil && p.id == other.id
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	NextID(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
}
