package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/optimus-erp/procure-api/internal/domain/money"
	"github.com/optimus-erp/procure-api/internal/domain/product"
)

const (
	productColumns = `id, name, price, currency, stock, category_id, supplier_id, sku, unit, created_at, updated_at`

	listProductsSQL = `SELECT ` + productColumns + ` FROM products ORDER BY id`

	getProductByIDSQL = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	getProductsByIDsSQL = `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1) ORDER BY id`

	insertProductSQL = `INSERT INTO products (id, name, price, currency, stock, category_id, supplier_id, sku, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	updateProductSQL = `UPDATE products
		SET name = $2, price = $3, currency = $4, stock = $5, category_id = $6, supplier_id = $7, sku = $8, unit = $9, updated_at = $10
		WHERE id = $1`

	nextProductIDSQL = `SELECT nextval(pg_get_serial_sequence('products', 'id'))`
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
// Prices live in a NUMERIC(12,2) column and cross the boundary as
// shopspring decimals.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// NextID allocates a fresh product identifier from the table sequence.
func (r *ProductRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.pool.QueryRow(ctx, nextProductIDSQL).Scan(&id); err != nil {
		return 0, fmt.Errorf("allocating product id: %w", err)
	}
	return id, nil
}

// List returns the whole catalog ordered by ID.
func (r *ProductRepository) List(ctx context.Context) ([]*product.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// GetByID returns a single product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	rows, err := r.pool.Query(ctx, getProductByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}
	return p, nil
}

// GetByIDs returns products matching any of the given IDs.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]*product.Product, error) {
	rows, err := r.pool.Query(ctx, getProductsByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("getting products by ids: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// Create persists a new product.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.pool.Exec(ctx, insertProductSQL,
		p.ID(), p.Name().Value(), p.Price().Decimal(), p.Price().Currency(), p.Stock().Value(),
		p.CategoryID(), p.SupplierID(), p.SKU(), p.Unit(), p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("creating product %d: %w", p.ID(), err)
	}
	return nil
}

// Update persists the current state of an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	tag, err := r.pool.Exec(ctx, updateProductSQL,
		p.ID(), p.Name().Value(), p.Price().Decimal(), p.Price().Currency(), p.Stock().Value(),
		p.CategoryID(), p.SupplierID(), p.SKU(), p.Unit(), p.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("updating product %d: %w", p.ID(), err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (*product.Product, error) {
	var (
		id         int64
		name       string
		price      decimal.Decimal
		currency   string
		stock      int
		categoryID int64
		supplierID int64
		sku        string
		unit       string
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(&id, &name, &price, &currency, &stock,
		&categoryID, &supplierID, &sku, &unit, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return rehydrateProduct(id, name, price, currency, stock, categoryID, supplierID, sku, unit, createdAt, updatedAt)
}

// rehydrateProduct rebuilds the entity from a stored row. Value objects go
// back through their constructors, so a corrupted row surfaces as an error
// instead of an invalid entity.
func rehydrateProduct(
	id int64, name string, price decimal.Decimal, currency string, stock int,
	categoryID, supplierID int64, sku, unit string, createdAt, updatedAt time.Time,
) (*product.Product, error) {
	n, err := product.NewName(name)
	if err != nil {
		return nil, errors.Wrapf(err, "product %d: stored name", id)
	}
	m, err := money.FromDecimal(price, currency)
	if err != nil {
		return nil, errors.Wrapf(err, "product %d: stored price", id)
	}
	q, err := product.NewQuantity(stock)
	if err != nil {
		return nil, errors.Wrapf(err, "product %d: stored stock", id)
	}

	return product.Rehydrate(product.Props{
		ID:         id,
		Name:       n,
		Price:      m,
		Stock:      q,
		CategoryID: categoryID,
		SupplierID: supplierID,
		SKU:        sku,
		Unit:       unit,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}), nil
}
