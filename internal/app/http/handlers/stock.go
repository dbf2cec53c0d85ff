package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"obramat/go_backend/internal/domain/stock"
)

type stockMovementRequest struct {
	ProductID int64  `json:"product_id"`
	Direction string `json:"direction"`
	Quantity  int    `json:"quantity"`
}

func (h *Handlers) RegisterStockMovement(w http.ResponseWriter, r *http.Request) {
	var req stockMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	dir := stock.Direction(req.Direction)
	if dir != stock.In && dir != stock.Out {
		h.writeError(w, http.StatusBadRequest, `direction must be "in" or "out"`)
		return
	}
	if req.Quantity <= 0 {
		h.writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	next, err := h.Stock.RegisterMovement(r.Context(), stock.Movement{
		ProductID: req.ProductID,
		Direction: dir,
		Quantity:  req.Quantity,
	})
	if err != nil {
		if errors.Is(err, stock.ErrInsufficientStock) {
			h.writeError(w, http.StatusConflict, err.Error())
			return
		}
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": req.ProductID,
		"stock":      next,
	})
}
