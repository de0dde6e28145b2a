package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Simplici0/printquote/internal/catalog"
	"github.com/Simplici0/printquote/internal/config"
	"github.com/Simplici0/printquote/internal/constraints"
	"github.com/Simplici0/printquote/internal/db"
	"github.com/Simplici0/printquote/internal/logging"
	"github.com/Simplici0/printquote/internal/migrations"
	"github.com/Simplici0/printquote/internal/quote"
	"github.com/Simplici0/printquote/internal/seed"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	store     *catalog.Store
	cache     *constraints.Cache
	assembler *quote.Assembler
	log       zerolog.Logger
	workers   int
}

func newServer(database *sql.DB, log zerolog.Logger, workers int) *server {
	return &server{
		store:     catalog.NewStore(database),
		cache:     constraints.NewCache(log),
		assembler: quote.NewAssembler(),
		log:       log,
		workers:   workers,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(logging.Middleware(s.log))
	r.Get("/healthz", s.handleHealth)
	r.Route("/products/{id}", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Post("/options/select", s.handleSelect)
		r.Post("/quote", s.handleCreateQuote)
		r.Get("/completeness", s.handleCompleteness)
		r.Post("/publish", s.handlePublish)
		r.Post("/simulate", s.handleSimulate)
	})
	r.Get("/quotes", s.handleQuotesList)
	r.Get("/quotes/{id}", s.handleQuoteDetail)
	return r
}

func main() {
	cfg := config.Load()
	log := logging.New(cfg.IsDev())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	if _, err := migrations.Up(ctx, database, cfg.MigrationsDir, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run database migrations")
	}

	if cfg.SeedDemo {
		fixture, err := seed.Demo()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load demo catalog")
		}
		stats, err := seed.Run(ctx, database, fixture)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo catalog")
		}
		log.Info().Int("inserts", stats.Inserts).Int("skipped", stats.Skipped).Msg("demo catalog seeded")
	}

	srv := newServer(database, log, cfg.SimulationWorkers)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("addr", httpServer.Addr).Str("env", cfg.AppEnv).Msg("listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
