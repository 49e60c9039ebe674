package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/optimus-erp/procure-api/internal/domain/money"
	"github.com/optimus-erp/procure-api/internal/domain/order"
	"github.com/optimus-erp/procure-api/internal/domain/product"
)

const (
	orderColumns = `id, order_number, tenant_id, site_id, supplier_id, items, status, currency, delivery_date, notes, created_at, updated_at`

	insertOrderSQL = `INSERT INTO orders (id, order_number, tenant_id, site_id, supplier_id, items, status, currency, delivery_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	getOrderByIDSQL = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	listOrdersSQL = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	updateOrderSQL = `UPDATE orders SET status = $2, notes = $3, delivery_date = $4, updated_at = $5 WHERE id = $1`

	nextOrderIDSQL = `SELECT nextval(pg_get_serial_sequence('orders', 'id'))`
)

var (
	_ order.Repository = (*OrderRepository)(nil)
	_ order.IDSource   = (*OrderRepository)(nil)
)

// itemRow is the JSONB shape of one order line.
type itemRow struct {
	ProductID      int64  `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Currency       string `json:"currency"`
}

// OrderRepository implements order.Repository backed by PostgreSQL. Line
// items are serialized to a JSONB column; the UNIQUE constraint on
// order_number backstops the best-effort number generator.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// NextOrderID allocates a fresh order identifier from the table sequence.
func (r *OrderRepository) NextOrderID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.pool.QueryRow(ctx, nextOrderIDSQL).Scan(&id); err != nil {
		return 0, fmt.Errorf("allocating order id: %w", err)
	}
	return id, nil
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, err := marshalItems(o)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	_, err = r.pool.Exec(ctx, insertOrderSQL,
		o.ID(), o.OrderNumber(), o.TenantID(), o.SiteID(), o.SupplierID(),
		itemsJSON, string(o.Status()), o.Currency(), o.DeliveryDate(), o.Notes(),
		o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("creating order %d: %w", o.ID(), err)
	}
	return nil
}

// GetByID returns a single order by its identifier.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}
	return o, nil
}

// List returns all orders, most recent first.
func (r *OrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

// Update persists the mutable state of an existing order.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	tag, err := r.pool.Exec(ctx, updateOrderSQL,
		o.ID(), string(o.Status()), o.Notes(), o.DeliveryDate(), o.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("updating order %d: %w", o.ID(), err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func marshalItems(o *order.Order) ([]byte, error) {
	items := o.Items()
	rows := make([]itemRow, len(items))
	for i, it := range items {
		rows[i] = itemRow{
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			Quantity:       it.Quantity.Value(),
			UnitPriceCents: it.UnitPrice.Cents(),
			Currency:       it.UnitPrice.Currency(),
		}
	}
	return json.Marshal(rows)
}

func scanOrder(row pgx.CollectableRow) (*order.Order, error) {
	var (
		id           int64
		orderNumber  string
		tenantID     int64
		siteID       int64
		supplierID   int64
		itemsJSON    []byte
		status       string
		currency     string
		deliveryDate time.Time
		notes        string
		createdAt    time.Time
		updatedAt    time.Time
	)
	if err := row.Scan(&id, &orderNumber, &tenantID, &siteID, &supplierID,
		&itemsJSON, &status, &currency, &deliveryDate, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	items, err := unmarshalItems(id, itemsJSON)
	if err != nil {
		return nil, err
	}

	return order.Rehydrate(order.Props{
		ID:           id,
		OrderNumber:  orderNumber,
		TenantID:     tenantID,
		SiteID:       siteID,
		SupplierID:   supplierID,
		Items:        items,
		Status:       order.Status(status),
		Currency:     currency,
		DeliveryDate: deliveryDate,
		Notes:        notes,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}), nil
}

func unmarshalItems(orderID int64, itemsJSON []byte) ([]order.Item, error) {
	var rows []itemRow
	if err := json.Unmarshal(itemsJSON, &rows); err != nil {
		return nil, errors.Wrapf(err, "order %d: stored items", orderID)
	}

	items := make([]order.Item, len(rows))
	for i, r := range rows {
		qty, err := product.NewQuantity(r.Quantity)
		if err != nil {
			return nil, errors.Wrapf(err, "order %d: stored item quantity", orderID)
		}
		price, err := money.New(r.UnitPriceCents, r.Currency)
		if err != nil {
			return nil, errors.Wrapf(err, "order %d: stored item price", orderID)
		}
		items[i] = order.Item{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Quantity:    qty,
			UnitPrice:   price,
		}
	}
	return items, nil
}
