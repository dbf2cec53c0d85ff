package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"obramat/go_backend/internal/app/config"
	apphttp "obramat/go_backend/internal/app/http"
	pdfgen "obramat/go_backend/internal/domain/quote/pdf/gofpdf"
	"obramat/go_backend/internal/infra/db/postgres"
	"obramat/go_backend/internal/infra/docstore"
)

func Run() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.MustLoad()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer db.Close()

	renderer := docstore.New(cfg.DocumentDir, cfg.DocumentBaseURL, pdfgen.New())
	router := apphttp.NewRouter(cfg, db, log, renderer)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("serve")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
