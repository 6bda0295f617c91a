package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/dannyatorres/fcs-analyzer/pkg/handlers/analysis"
	fcsmiddleware "github.com/dannyatorres/fcs-analyzer/pkg/server/middleware"
	"github.com/dannyatorres/fcs-analyzer/pkg/services/fcs"
	"github.com/dannyatorres/fcs-analyzer/pkg/services/lender"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Analyzer fcs.Analyzer
	Lenders  lender.Directory
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config.Dependencies)

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

// ConfigureRouter wires the analysis endpoints. CORS stays permissive because
// the report frontend is served from a different origin.
func ConfigureRouter(logger zerolog.Logger, deps Dependencies) *chi.Mux {
	handler := handlers.NewHandler(deps.Analyzer, deps.Lenders)

	router := chi.NewRouter()
	router.Use(fcsmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	router.Get("/", handler.Health)
	router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", handler.Analyze)
		r.Post("/reload-profiles", handler.ReloadProfiles)
		r.Get("/lenders", handler.ListLenders)
	})

	return router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
