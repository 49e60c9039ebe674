// Package handler exposes the procurement domain over HTTP: product catalog,
// supplier registry, and the purchase order lifecycle.
package handler

import (
	"net/http"

	"github.com/optimus-erp/procure-api/internal/domain/event"
	"github.com/optimus-erp/procure-api/internal/domain/order"
	"github.com/optimus-erp/procure-api/internal/domain/product"
	"github.com/optimus-erp/procure-api/internal/domain/supplier"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// Locale selects the currency formatting of the formatted_price field in
	// product and order responses. Empty means the default locale.
	Locale string
	// LowStockThreshold drives the low_stock flag in product responses.
	// Zero or negative means the domain default.
	LowStockThreshold int
}

// Handler serves the HTTP API, delegating business logic to the order service
// and the domain repositories.
type Handler struct {
	products     product.Repository
	suppliers    supplier.Repository
	orders       order.Repository
	orderService *order.Service
	events       event.Recorder

	locale            string
	lowStockThreshold int
}

// NewHandler constructs a Handler with the required domain dependencies.
// A nil recorder discards events.
func NewHandler(
	cfg Config,
	products product.Repository,
	suppliers supplier.Repository,
	orders order.Repository,
	orderService *order.Service,
	events event.Recorder,
) *Handler {
	threshold := cfg.LowStockThreshold
	if threshold <= 0 {
		threshold = product.DefaultLowStockThreshold
	}
	if events == nil {
		events = event.Discard{}
	}
	return &Handler{
		products:          products,
		suppliers:         suppliers,
		orders:            orders,
		orderService:      orderService,
		events:            events,
		locale:            cfg.Locale,
		lowStockThreshold: threshold,
	}
}

// Routes registers all API routes on a new mux. Mutating routes are wrapped
// with the auth middleware; reads are open.
func (h *Handler) Routes(auth func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	protect := func(fn http.HandlerFunc) http.Handler {
		return auth(fn)
	}

	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.Handle("POST /api/products", protect(h.CreateProduct))
	mux.Handle("POST /api/products/{id}/restock", protect(h.RestockProduct))
	mux.Handle("PUT /api/products/{id}/price", protect(h.UpdateProductPrice))

	mux.HandleFunc("GET /api/orders", h.ListOrders)
	mux.HandleFunc("GET /api/orders/{id}", h.GetOrder)
	mux.Handle("POST /api/orders", protect(h.PlaceOrder))
	mux.Handle("POST /api/orders/{id}/submit", protect(h.SubmitOrder))
	mux.Handle("POST /api/orders/{id}/confirm", protect(h.ConfirmOrder))
	mux.Handle("POST /api/orders/{id}/deliver", protect(h.DeliverOrder))
	mux.Handle("POST /api/orders/{id}/cancel", protect(h.CancelOrder))

	mux.HandleFunc("GET /api/suppliers", h.ListSuppliers)
	mux.HandleFunc("GET /api/suppliers/{id}", h.GetSupplier)
	mux.Handle("POST /api/suppliers", protect(h.CreateSupplier))
	mux.Handle("POST /api/suppliers/{id}/approve", protect(h.ApproveSupplier))
	mux.Handle("POST /api/suppliers/{id}/deactivate", protect(h.DeactivateSupplier))
	mux.Handle("POST /api/suppliers/{id}/reactivate", protect(h.ReactivateSupplier))

	return mux
}
