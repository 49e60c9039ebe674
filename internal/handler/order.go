package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/jx"

	"github.com/optimus-erp/procure-api/internal/domain/order"
)

// ListOrders returns all orders, most recent first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ArrStart()
		for _, o := range orders {
			h.encodeOrder(e, o)
		}
		e.ArrEnd()
	})
}

// GetOrder returns a single order by ID.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "order id must be a positive integer")
		return
	}

	o, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeOrder(e, o) })
}

type orderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type placeOrderRequest struct {
	TenantID     int64              `json:"tenant_id"`
	SiteID       int64              `json:"site_id"`
	SupplierID   int64              `json:"supplier_id"`
	Items        []orderItemRequest `json:"items"`
	DeliveryDate string             `json:"delivery_date"`
	Notes        string             `json:"notes"`
}

// PlaceOrder creates a purchase order, reserving stock on every line.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	var deliveryDate time.Time
	if req.DeliveryDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DeliveryDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", "delivery_date must be RFC 3339")
			return
		}
		deliveryDate = parsed
	}

	items := make([]order.ItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = order.ItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	result, err := h.orderService.PlaceOrder(r.Context(), order.PlaceOrderRequest{
		TenantID:     req.TenantID,
		SiteID:       req.SiteID,
		SupplierID:   req.SupplierID,
		Items:        items,
		DeliveryDate: deliveryDate,
		Notes:        req.Notes,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("order")
		h.encodeOrder(e, result.Order)
		e.FieldStart("products")
		e.ArrStart()
		for _, p := range result.Products {
			h.encodeProduct(e, p)
		}
		e.ArrEnd()
		e.ObjEnd()
	})
}

// SubmitOrder moves a DRAFT order to PENDING.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	h.transitionOrder(w, r, h.orderService.Submit)
}

// ConfirmOrder moves an order to CONFIRMED.
func (h *Handler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	h.transitionOrder(w, r, h.orderService.Confirm)
}

// DeliverOrder moves an order to DELIVERED.
func (h *Handler) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	h.transitionOrder(w, r, h.orderService.MarkDelivered)
}

// CancelOrder moves an order to CANCELLED.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	h.transitionOrder(w, r, h.orderService.Cancel)
}

func (h *Handler) transitionOrder(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, id int64) (*order.Order, error),
) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "order id must be a positive integer")
		return
	}

	o, err := apply(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeOrder(e, o) })
}
