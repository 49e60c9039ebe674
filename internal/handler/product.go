package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/optimus-erp/procure-api/internal/domain/event"
	"github.com/optimus-erp/procure-api/internal/domain/money"
	"github.com/optimus-erp/procure-api/internal/domain/product"
)

// ListProducts returns the full catalog.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ArrStart()
		for _, p := range products {
			h.encodeProduct(e, p)
		}
		e.ArrEnd()
	})
}

// GetProduct returns a single product by ID.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "product id must be a positive integer")
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeProduct(e, p) })
}

type createProductRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
	Stock      int    `json:"stock"`
	CategoryID int64  `json:"category_id"`
	SupplierID int64  `json:"supplier_id"`
	SKU        string `json:"sku"`
	Unit       string `json:"unit"`
}

// CreateProduct validates the payload through the domain constructors and
// stores a new catalog entry.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	ctx := r.Context()
	id, err := h.products.NextID(ctx)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	p, err := product.New(product.CreateParams{
		ID:         id,
		Name:       req.Name,
		PriceCents: req.PriceCents,
		Currency:   req.Currency,
		Stock:      req.Stock,
		CategoryID: req.CategoryID,
		SupplierID: req.SupplierID,
		SKU:        req.SKU,
		Unit:       req.Unit,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	if err := h.products.Create(ctx, p); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.events.Record(event.NewProductCreated(p.ID(), p.Name().Value(), p.Price().Cents(), p.Stock().Value()))

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) { h.encodeProduct(e, p) })
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

// RestockProduct adds the given quantity to a product's stock.
func (h *Handler) RestockProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "product id must be a positive integer")
		return
	}

	var req restockRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	qty, err := product.NewQuantity(req.Quantity)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	ctx := r.Context()
	p, err := h.products.GetByID(ctx, id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	next, err := p.Restock(qty)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := h.products.Update(ctx, next); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeProduct(e, next) })
}

type updatePriceRequest struct {
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
}

// UpdateProductPrice replaces a product's unit price.
func (h *Handler) UpdateProductPrice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "product id must be a positive integer")
		return
	}

	var req updatePriceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	ctx := r.Context()
	p, err := h.products.GetByID(ctx, id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = p.Price().Currency()
	}
	price, err := money.New(req.PriceCents, currency)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	next := p.UpdatePrice(price)
	if err := h.products.Update(ctx, next); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeProduct(e, next) })
}
