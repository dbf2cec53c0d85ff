package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"obramat/go_backend/internal/infra/db/postgres"
)

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if products == nil {
		products = []postgres.Product{}
	}
	h.writeJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	p, err := h.Products.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p postgres.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if p.Name == "" {
		h.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if p.Price.IsNegative() {
		h.writeError(w, http.StatusBadRequest, "price cannot be negative")
		return
	}
	id, err := h.Products.Create(r.Context(), p)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	p.ID = id
	h.writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var p postgres.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if p.Price.IsNegative() {
		h.writeError(w, http.StatusBadRequest, "price cannot be negative")
		return
	}
	p.ID = id
	if err := h.Products.Update(r.Context(), p); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := h.Products.Delete(r.Context(), id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": id})
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
