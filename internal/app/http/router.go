package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"obramat/go_backend/internal/app/config"
	"obramat/go_backend/internal/app/http/handlers"
	"obramat/go_backend/internal/app/http/middleware"
	"obramat/go_backend/internal/domain/quote"
	"obramat/go_backend/internal/infra/db/postgres"
)

func NewRouter(cfg config.Config, db *postgres.DB, log zerolog.Logger, renderer quote.Renderer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(log))
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	h := handlers.New(db, cfg, log, renderer)

	r.Get("/health", h.Health)

	// Document links are handed to clients; no internal token here.
	fileServer := http.StripPrefix(cfg.DocumentBaseURL, http.FileServer(http.Dir(cfg.DocumentDir)))
	r.Get(cfg.DocumentBaseURL+"/*", fileServer.ServeHTTP)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.InternalAuth(cfg.InternalToken))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Get("/{id}", h.GetProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.ListClients)
			r.Post("/", h.CreateClient)
			r.Get("/{id}", h.GetClient)
			r.Put("/{id}", h.UpdateClient)
			r.Delete("/{id}", h.DeleteClient)
		})

		r.Post("/stock/movements", h.RegisterStockMovement)

		r.Route("/quotes", func(r chi.Router) {
			r.Post("/", h.CreateQuote)
			r.Post("/labor", h.CreateLaborQuote)
			r.Get("/{id}", h.GetQuote)
			r.Get("/{id}/pdf", h.QuotePDF)
		})
	})

	return r
}
