package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	recordshandlers "github.com/premiummedi/labreport/pkg/handlers/records"
	reportshandlers "github.com/premiummedi/labreport/pkg/handlers/reports"
	labreportmiddleware "github.com/premiummedi/labreport/pkg/server/middleware"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Reports *reportshandlers.Handler
	Records *recordshandlers.Handler
}

type Config struct {
	Addr         string
	Dependencies Dependencies
}

// ConfigureRouter wires the full route table. The per-test routes are
// registered last so fixed paths like /search keep precedence.
func ConfigureRouter(logger zerolog.Logger, config Config) *chi.Mux {
	router := chi.NewRouter()

	router.Use(labreportmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/", config.Dependencies.Records.Index)
	router.Get("/search", config.Dependencies.Records.Search)
	router.Get("/download/{filename}", config.Dependencies.Records.Download)
	router.Post("/delete/{id}", config.Dependencies.Records.Delete)

	router.Get("/{test}", config.Dependencies.Reports.Form)
	router.Post("/{test}/print", config.Dependencies.Reports.Print)
	router.Post("/{test}/doc", config.Dependencies.Reports.Document)
	router.Post("/{test}/pdf", config.Dependencies.Reports.PDF)

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config)

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
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
