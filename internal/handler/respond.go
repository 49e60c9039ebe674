package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/optimus-erp/procure-api/internal/domain/domainerr"
	"github.com/optimus-erp/procure-api/internal/domain/order"
	"github.com/optimus-erp/procure-api/internal/domain/product"
	"github.com/optimus-erp/procure-api/internal/domain/supplier"
)

// writeJSON encodes a response body with jx and writes it with the given
// status code.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	e := &jx.Encoder{}
	encode(e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes the standard error envelope: {"code": ..., "message": ...}.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("code")
		e.Str(code)
		e.FieldStart("message")
		e.Str(message)
		e.ObjEnd()
	})
}

// writeDomainError maps domain errors to HTTP status codes: validation
// failures to 400, broken business rules to 409, missing lookups to 404 and
// missing order lines to 422. Anything unrecognized is logged and reported
// as a 500.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
		return
	case errors.Is(err, order.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "order not found")
		return
	case errors.Is(err, supplier.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "supplier not found")
		return
	case errors.Is(err, order.ErrEmptyItems):
		writeError(w, http.StatusBadRequest, domainerr.CodeValidation, err.Error())
		return
	}

	var pnf *order.ProductNotFoundError
	if errors.As(err, &pnf) {
		writeError(w, http.StatusUnprocessableEntity, "PRODUCT_NOT_FOUND", pnf.Error())
		return
	}

	if derr, ok := domainerr.As(err); ok {
		status := http.StatusConflict
		if derr.Kind() == domainerr.KindValidation {
			status = http.StatusBadRequest
		}
		writeError(w, status, derr.Code(), derr.Error())
		return
	}

	zctx.From(r.Context()).Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(err, "decode request body")
	}
	return nil
}

// pathID parses the {id} path segment as an int64.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func (h *Handler) encodeProduct(e *jx.Encoder, p *product.Product) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(p.ID())
	e.FieldStart("name")
	e.Str(p.Name().Value())
	e.FieldStart("price_cents")
	e.Int64(p.Price().Cents())
	e.FieldStart("currency")
	e.Str(p.Price().Currency())
	e.FieldStart("formatted_price")
	e.Str(p.Price().Format(h.locale))
	e.FieldStart("stock")
	e.Int(p.Stock().Value())
	e.FieldStart("low_stock")
	e.Bool(p.IsLowStock(h.lowStockThreshold))
	e.FieldStart("category_id")
	e.Int64(p.CategoryID())
	e.FieldStart("supplier_id")
	e.Int64(p.SupplierID())
	e.FieldStart("sku")
	e.Str(p.SKU())
	e.FieldStart("unit")
	e.Str(p.Unit())
	e.FieldStart("created_at")
	e.Str(p.CreatedAt().Format(time.RFC3339))
	e.FieldStart("updated_at")
	e.Str(p.UpdatedAt().Format(time.RFC3339))
	e.ObjEnd()
}

func (h *Handler) encodeSupplier(e *jx.Encoder, s *supplier.Supplier) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(s.ID())
	e.FieldStart("name")
	e.Str(s.Name())
	e.FieldStart("email")
	e.Str(s.Email())
	e.FieldStart("phone")
	e.Str(s.Phone())
	e.FieldStart("address")
	e.Str(s.Address())
	e.FieldStart("is_active")
	e.Bool(s.IsActive())
	e.FieldStart("is_approved")
	e.Bool(s.IsApproved())
	e.FieldStart("can_receive_orders")
	e.Bool(s.CanReceiveOrders())
	e.FieldStart("created_at")
	e.Str(s.CreatedAt().Format(time.RFC3339))
	e.FieldStart("updated_at")
	e.Str(s.UpdatedAt().Format(time.RFC3339))
	e.ObjEnd()
}

func (h *Handler) encodeOrder(e *jx.Encoder, o *order.Order) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(o.ID())
	e.FieldStart("order_number")
	e.Str(o.OrderNumber())
	e.FieldStart("tenant_id")
	e.Int64(o.TenantID())
	e.FieldStart("site_id")
	e.Int64(o.SiteID())
	e.FieldStart("supplier_id")
	e.Int64(o.SupplierID())
	e.FieldStart("status")
	e.Str(string(o.Status()))
	e.FieldStart("currency")
	e.Str(o.Currency())

	e.FieldStart("items")
	e.ArrStart()
	for _, item := range o.Items() {
		e.ObjStart()
		e.FieldStart("product_id")
		e.Int64(item.ProductID)
		e.FieldStart("product_name")
		e.Str(item.ProductName)
		e.FieldStart("quantity")
		e.Int(item.Quantity.Value())
		e.FieldStart("unit_price_cents")
		e.Int64(item.UnitPrice.Cents())
		e.ObjEnd()
	}
	e.ArrEnd()

	// A mixed-currency total is unreachable for orders built through the
	// service; fall back to zero rather than failing the whole response.
	if total, err := o.TotalAmount(); err == nil {
		e.FieldStart("total_cents")
		e.Int64(total.Cents())
		e.FieldStart("formatted_total")
		e.Str(total.Format(h.locale))
	}

	if !o.DeliveryDate().IsZero() {
		e.FieldStart("delivery_date")
		e.Str(o.DeliveryDate().Format(time.RFC3339))
	}
	if o.Notes() != "" {
		e.FieldStart("notes")
		e.Str(o.Notes())
	}
	e.FieldStart("created_at")
	e.Str(o.CreatedAt().Format(time.RFC3339))
	e.FieldStart("updated_at")
	e.Str(o.UpdatedAt().Format(time.RFC3339))
	e.ObjEnd()
}
