// Package order holds the purchase order aggregate: line items with
// name/price snapshots, the status lifecycle, and the total computation.
package order

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/optimus-erp/procure-api/internal/domain/money"
	"github.com/optimus-erp/procure-api/internal/domain/product"
)

// Item is a single order line. ProductName and UnitPrice are snapshots taken
// at order creation; later product changes never touch existing orders.
type Item struct {
	ProductID   int64
	ProductName string
	Quantity    product.Quantity
	UnitPrice   money.Money
}

// Order is an immutable purchase order. Identity is the numeric id; every
// state transition returns a new Order and leaves the receiver untouched.
type Order struct {
	id           int64
	orderNumber  string
	tenantID     int64
	siteID       int64
	supplierID   int64
	items        []Item
	status       Status
	currency     string
	deliveryDate time.Time
	notes        string
	createdAt    time.Time
	updatedAt    time.Time
}

// ItemParams is the raw input for one order line.
type ItemParams struct {
	ProductID      int64
	ProductName    string
	Quantity       int
	UnitPriceCents int64
}

// CreateParams holds the raw input for creating an Order.
type CreateParams struct {
	ID           int64
	TenantID     int64
	SiteID       int64
	SupplierID   int64
	Items        []ItemParams
	Currency     string
	DeliveryDate time.Time
	Notes        string
}

// New validates the line items through the value-object constructors,
// generates an order number, and returns a DRAFT order.
func New(params CreateParams) (*Order, error) {
	currency := strings.ToUpper(params.Currency)
	if currency == "" {
		currency = money.DefaultCurrency
	}

	items := make([]Item, len(params.Items))
	for i, it := range params.Items {
		qty, err := product.NewQuantity(it.Quantity)
		if err != nil {
			return nil, err
		}
		unitPrice, err := money.New(it.UnitPriceCents, currency)
		if err != nil {
			return nil, err
		}
		items[i] = Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    qty,
			UnitPrice:   unitPrice,
		}
	}

	now := time.Now()
	return &Order{
		id:           params.ID,
		orderNumber:  generateOrderNumber(now),
		tenantID:     params.TenantID,
		siteID:       params.SiteID,
		supplierID:   params.SupplierID,
		items:        items,
		status:       StatusDraft,
		currency:     currency,
		deliveryDate: params.DeliveryDate,
		notes:        params.Notes,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Props is the full internal state of an Order, used for rehydration from
// storage.
type Props struct {
	ID           int64
	OrderNumber  string
	TenantID     int64
	SiteID       int64
	SupplierID   int64
	Items        []Item
	Status       Status
	Currency     string
	DeliveryDate time.Time
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Rehydrate reconstructs an Order from previously valid stored state.
// It is a trust boundary: no validation is re-run.
func Rehydrate(props Props) *Order {
	currency := props.Currency
	if currency == "" {
		currency = money.DefaultCurrency
	}
	return &Order{
		id:           props.ID,
		orderNumber:  props.OrderNumber,
		tenantID:     props.TenantID,
		siteID:       props.SiteID,
		supplierID:   props.SupplierID,
		items:        props.Items,
		status:       props.Status,
		currency:     currency,
		deliveryDate: props.DeliveryDate,
		notes:        props.Notes,
		createdAt:    props.CreatedAt,
		updatedAt:    props.UpdatedAt,
	}
}

const numberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateOrderNumber builds a human-readable order number from a base-36
// timestamp and a random suffix. Uniqueness is best-effort; the persistence
// layer enforces it with a unique constraint.
func generateOrderNumber(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = numberAlphabet[rand.IntN(len(numberAlphabet))]
	}
	return "ORD-" + ts + "-" + string(suffix)
}

func (o *Order) ID() int64               { return o.id }
func (o *Order) OrderNumber() string     { return o.orderNumber }
func (o *Order) TenantID() int64         { return o.tenantID }
func (o *Order) SiteID() int64           { return o.siteID }
func (o *Order) SupplierID() int64       { return o.supplierID }
func (o *Order) Status() Status          { return o.status }
func (o *Order) Currency() string        { return o.currency }
func (o *Order) DeliveryDate() time.Time { return o.deliveryDate }
func (o *Order) Notes() string           { return o.notes }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount computes the order total on demand: the sum of
// unit price times quantity over all lines, starting from the zero amount of
// the order currency. Lines in a different currency (only reachable through
// Rehydrate) make the fold fail with *money.CurrencyMismatchError.
func (o *Order) TotalAmount() (money.Money, error) {
	total := money.Zero(o.currency)
	for _, item := range o.items {
		line, err := item.UnitPrice.MulInt(int64(item.Quantity.Value()))
		if err != nil {
			return money.Money{}, err
		}
		total, err = total.Add(line)
		if err != nil {
			return money.Money{}, err
		}
	}
	return total, nil
}

// Submit moves a DRAFT order to PENDING.
func (o *Order) Submit() (*Order, error) {
	if o.status != StatusDraft {
		return nil, &StatusTransitionError{
			From:    o.status,
			Message: "Cannot submit order that is not in DRAFT status",
		}
	}
	return o.withStatus(StatusPending), nil
}

// Confirm moves a DRAFT or PENDING order to CONFIRMED.
func (o *Order) Confirm() (*Order, error) {
	if o.status != StatusDraft && o.status != StatusPending {
		return nil, &StatusTransitionError{
			From:    o.status,
			Message: "Cannot confirm order that is not in DRAFT or PENDING status",
		}
	}
	return o.withStatus(StatusConfirmed), nil
}

// MarkAsDelivered moves a CONFIRMED order to DELIVERED.
func (o *Order) MarkAsDelivered() (*Order, error) {
	if o.status != StatusConfirmed {
		return nil, &StatusTransitionError{
			From:    o.status,
			Message: "Cannot deliver order that is not confirmed",
		}
	}
	return o.withStatus(StatusDelivered), nil
}

// Cancel moves any non-DELIVERED order to CANCELLED. Cancelling an already
// cancelled order is a no-op transition.
func (o *Order) Cancel() (*Order, error) {
	if o.status == StatusDelivered {
		return nil, &StatusTransitionError{
			From:    o.status,
			Message: "Cannot cancel delivered order",
		}
	}
	return o.withStatus(StatusCancelled), nil
}

func (o *Order) withStatus(s Status) *Order {
	next := *o
	next.items = o.Items()
	next.status = s
	next.updatedAt = time.Now()
	return &next
}

// Equal compares by identity only.
func (o *Order) Equal(other *Order) bool {
	return other != nil && o.id == other.id
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	Update(ctx context.Context, o *Order) error
}
