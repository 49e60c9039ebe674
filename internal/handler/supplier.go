package handler

import (
	"net/http"
	"strings"

	"github.com/go-faster/jx"

	"github.com/optimus-erp/procure-api/internal/domain/supplier"
)

// ListSuppliers returns the full supplier registry.
func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.suppliers.List(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ArrStart()
		for _, s := range suppliers {
			h.encodeSupplier(e, s)
		}
		e.ArrEnd()
	})
}

// GetSupplier returns a single supplier by ID.
func (h *Handler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "supplier id must be a positive integer")
		return
	}

	s, err := h.suppliers.GetByID(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeSupplier(e, s) })
}

type createSupplierRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateSupplier registers a new supplier. New suppliers start active and
// unapproved; an explicit approval is needed before they can receive orders.
func (h *Handler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req createSupplierRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "name is required")
		return
	}

	ctx := r.Context()
	id, err := h.suppliers.NextID(ctx)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	s := supplier.New(supplier.CreateParams{
		ID:      id,
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err := h.suppliers.Create(ctx, s); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) { h.encodeSupplier(e, s) })
}

// ApproveSupplier marks a supplier as approved for ordering.
func (h *Handler) ApproveSupplier(w http.ResponseWriter, r *http.Request) {
	h.transitionSupplier(w, r, (*supplier.Supplier).Approve)
}

// DeactivateSupplier takes a supplier out of service.
func (h *Handler) DeactivateSupplier(w http.ResponseWriter, r *http.Request) {
	h.transitionSupplier(w, r, (*supplier.Supplier).Deactivate)
}

// ReactivateSupplier puts a deactivated supplier back in service.
func (h *Handler) ReactivateSupplier(w http.ResponseWriter, r *http.Request) {
	h.transitionSupplier(w, r, (*supplier.Supplier).Reactivate)
}

func (h *Handler) transitionSupplier(
	w http.ResponseWriter,
	r *http.Request,
	apply func(*supplier.Supplier) *supplier.Supplier,
) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "supplier id must be a positive integer")
		return
	}

	ctx := r.Context()
	s, err := h.suppliers.GetByID(ctx, id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	next := apply(s)
	if err := h.suppliers.Update(ctx, next); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { h.encodeSupplier(e, next) })
}
