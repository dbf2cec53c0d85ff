package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"obramat/go_backend/internal/app/config"
	"obramat/go_backend/internal/domain/quote"
	"obramat/go_backend/internal/infra/db/postgres"
)

type Handlers struct {
	Cfg config.Config
	Log zerolog.Logger

	Products *postgres.ProductRepo
	Clients  *postgres.ClientRepo
	Stock    *postgres.StockRepo
	Quotes   *postgres.QuoteRepo
	Builder  *quote.Builder
}

func New(db *postgres.DB, cfg config.Config, log zerolog.Logger, renderer quote.Renderer) *Handlers {
	quotes := postgres.NewQuoteRepo(db)
	clients := postgres.NewClientRepo(db)
	return &Handlers{
		Cfg:      cfg,
		Log:      log,
		Products: postgres.NewProductRepo(db),
		Clients:  clients,
		Stock:    postgres.NewStockRepo(db),
		Quotes:   quotes,
		Builder:  quote.NewBuilder(quotes, clients, renderer),
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Error().Err(err).Msg("write response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps the error taxonomy onto HTTP statuses: validation
// failures are the caller's to fix; gateway failures surface as a single
// message and leave nothing partially applied on the caller's side.
func (h *Handlers) writeDomainError(w http.ResponseWriter, err error) {
	var verr *quote.ValidationError
	if errors.As(err, &verr) {
		h.writeError(w, http.StatusBadRequest, verr.Reason)
		return
	}
	if errors.Is(err, postgres.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "not found")
		return
	}
	h.Log.Error().Err(err).Msg("request failed")
	h.writeError(w, http.StatusBadGateway, "request failed")
}
