package handlers

import (
	"encoding/json"
	"net/http"

	"obramat/go_backend/internal/infra/db/postgres"
)

func (h *Handlers) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Clients.List(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if clients == nil {
		clients = []postgres.Client{}
	}
	h.writeJSON(w, http.StatusOK, clients)
}

func (h *Handlers) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	c, err := h.Clients.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) CreateClient(w http.ResponseWriter, r *http.Request) {
	var c postgres.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if c.Name == "" {
		h.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	id, err := h.Clients.Create(r.Context(), c)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	c.ID = id
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	var c postgres.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	c.ID = id
	if err := h.Clients.Update(r.Context(), c); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	if err := h.Clients.Delete(r.Context(), id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "id": id})
}
