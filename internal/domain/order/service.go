package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/optimus-erp/procure-api/internal/domain/domainerr"
	"github.com/optimus-erp/procure-api/internal/domain/event"
	"github.com/optimus-erp/procure-api/internal/domain/money"
	"github.com/optimus-erp/procure-api/internal/domain/product"
	"github.com/optimus-erp/procure-api/internal/domain/supplier"
)

// ErrEmptyItems is returned when an order is placed without line items.
var ErrEmptyItems = errors.New("items required")

// ProductNotFoundError indicates a requested product does not exist.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// CodeSupplierNotEligible is carried by SupplierNotEligibleError.
const CodeSupplierNotEligible = "SUPPLIER_NOT_ELIGIBLE"

var _ domainerr.Error = (*SupplierNotEligibleError)(nil)

// SupplierNotEligibleError indicates the supplier is inactive or not yet
// approved and therefore cannot receive orders.
type SupplierNotEligibleError struct {
	SupplierID int64
}

func (e *SupplierNotEligibleError) Error() string {
	return fmt.Sprintf("supplier %d cannot receive orders: inactive or not approved", e.SupplierID)
}

func (e *SupplierNotEligibleError) Code() string         { return CodeSupplierNotEligible }
func (e *SupplierNotEligibleError) Kind() domainerr.Kind { return domainerr.KindBusinessRule }

// ItemRequest is one requested order line.
type ItemRequest struct {
	ProductID int64
	Quantity  int
}

// PlaceOrderRequest holds the input for placing an order.
type PlaceOrderRequest struct {
	TenantID     int64
	SiteID       int64
	SupplierID   int64
	Items        []ItemRequest
	DeliveryDate time.Time
	Notes        string
}

// PlaceOrderResult holds the output of a successfully placed order.
type PlaceOrderResult struct {
	Order *Order
	// Products are the post-reservation product states, in request order.
	Products []*product.Product
}

// IDSource allocates identifiers for new orders.
type IDSource interface {
	NextOrderID(ctx context.Context) (int64, error)
}

// Service encapsulates order lifecycle business logic: placement with stock
// reservation, and the confirm/deliver/cancel transitions.
type Service struct {
	products  product.Repository
	suppliers supplier.Repository
	orders    Repository
	ids       IDSource
	events    event.Recorder

	lowStockThreshold int
}

// NewService creates an order Service with the required domain dependencies.
// A nil recorder discards events.
func NewService(
	products product.Repository,
	suppliers supplier.Repository,
	orders Repository,
	ids IDSource,
	events event.Recorder,
	lowStockThreshold int,
) *Service {
	if events == nil {
		events = event.Discard{}
	}
	if lowStockThreshold <= 0 {
		lowStockThreshold = product.DefaultLowStockThreshold
	}
	return &Service{
		products:          products,
		suppliers:         suppliers,
		orders:            orders,
		ids:               ids,
		events:            events,
		lowStockThreshold: lowStockThreshold,
	}
}

// PlaceOrder checks supplier eligibility, reserves stock on every requested
// product, creates the order with name/price snapshots, persists both sides,
// and records the resulting domain events. Every line must share the currency
// of the first product; a mismatch fails with *money.CurrencyMismatchError.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	sup, err := s.suppliers.GetByID(ctx, req.SupplierID)
	if err != nil {
		return nil, errors.Wrap(err, "get supplier")
	}
	if !sup.CanReceiveOrders() {
		return nil, &SupplierNotEligibleError{SupplierID: req.SupplierID}
	}

	ids := make([]int64, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.ProductID
	}

	fetched, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get products")
	}

	byID := make(map[int64]*product.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID()] = p
	}

	// Reserve stock per line. Each reservation returns a new product state;
	// validation and out-of-stock failures abort before anything persists.
	reserved := make([]*product.Product, len(req.Items))
	itemParams := make([]ItemParams, len(req.Items))
	stockEvents := make([]event.Event, 0, len(req.Items))
	currency := ""
	for i, item := range req.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}

		// The order adopts the currency of its first line; a product priced
		// in another currency fails hard instead of being re-denominated.
		if currency == "" {
			currency = p.Price().Currency()
		} else if c := p.Price().Currency(); c != currency {
			return nil, &money.CurrencyMismatchError{Left: currency, Right: c}
		}

		qty, err := product.NewQuantity(item.Quantity)
		if err != nil {
			return nil, err
		}

		next, err := p.ReserveStock(qty)
		if err != nil {
			return nil, err
		}
		reserved[i] = next
		byID[item.ProductID] = next

		stockEvents = append(stockEvents,
			event.NewStockUpdated(p.ID(), p.Stock().Value(), next.Stock().Value()))
		if next.IsLowStock(s.lowStockThreshold) {
			stockEvents = append(stockEvents,
				event.NewLowStockAlert(next.ID(), next.Name().Value(), next.Stock().Value(), s.lowStockThreshold))
		}

		itemParams[i] = ItemParams{
			ProductID:      p.ID(),
			ProductName:    p.Name().Value(),
			Quantity:       item.Quantity,
			UnitPriceCents: p.Price().Cents(),
		}
	}

	orderID, err := s.ids.NextOrderID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "allocate order id")
	}

	o, err := New(CreateParams{
		ID:           orderID,
		TenantID:     req.TenantID,
		SiteID:       req.SiteID,
		SupplierID:   req.SupplierID,
		Items:        itemParams,
		Currency:     currency,
		DeliveryDate: req.DeliveryDate,
		Notes:        req.Notes,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "persist order")
	}
	for _, p := range reserved {
		if err := s.products.Update(ctx, p); err != nil {
			return nil, errors.Wrapf(err, "persist product %d", p.ID())
		}
	}

	total, err := o.TotalAmount()
	if err != nil {
		return nil, errors.Wrap(err, "total amount")
	}
	s.events.Record(event.NewOrderCreated(
		o.ID(), o.OrderNumber(), o.TenantID(), o.SupplierID(), total.Cents(), len(o.Items())))
	for _, e := range stockEvents {
		s.events.Record(e)
	}

	return &PlaceOrderResult{Order: o, Products: reserved}, nil
}

// Submit loads the order, applies the PENDING transition, persists it, and
// records an OrderSubmitted event.
func (s *Service) Submit(ctx context.Context, orderID int64) (*Order, error) {
	return s.transition(ctx, orderID,
		func(o *Order) (*Order, error) { return o.Submit() },
		func(o *Order) event.Event {
			return event.NewOrderSubmitted(o.ID(), o.OrderNumber(), o.UpdatedAt())
		})
}

// Confirm loads the order, applies the CONFIRMED transition, persists it,
// and records an OrderConfirmed event.
func (s *Service) Confirm(ctx context.Context, orderID int64) (*Order, error) {
	return s.transition(ctx, orderID,
		func(o *Order) (*Order, error) { return o.Confirm() },
		func(o *Order) event.Event {
			return event.NewOrderConfirmed(o.ID(), o.OrderNumber(), o.UpdatedAt())
		})
}

// MarkDelivered loads the order, applies the DELIVERED transition, persists
// it, and records an OrderDelivered event.
func (s *Service) MarkDelivered(ctx context.Context, orderID int64) (*Order, error) {
	return s.transition(ctx, orderID,
		func(o *Order) (*Order, error) { return o.MarkAsDelivered() },
		func(o *Order) event.Event {
			return event.NewOrderDelivered(o.ID(), o.OrderNumber(), o.UpdatedAt())
		})
}

// Cancel loads the order, applies the CANCELLED transition, persists it, and
// records an OrderCancelled event.
func (s *Service) Cancel(ctx context.Context, orderID int64) (*Order, error) {
	return s.transition(ctx, orderID,
		func(o *Order) (*Order, error) { return o.Cancel() },
		func(o *Order) event.Event {
			return event.NewOrderCancelled(o.ID(), o.OrderNumber(), o.UpdatedAt())
		})
}

func (s *Service) transition(
	ctx context.Context,
	orderID int64,
	apply func(*Order) (*Order, error),
	mkEvent func(*Order) event.Event,
) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "get order")
	}

	next, err := apply(o)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Update(ctx, next); err != nil {
		return nil, errors.Wrap(err, "persist order")
	}

	s.events.Record(mkEvent(next))
	return next, nil
}
