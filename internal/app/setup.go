// Package app contains the application setup for the catalog service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nostruffes/catalog/internal/config"
	"github.com/nostruffes/catalog/internal/payment"
	"github.com/nostruffes/catalog/internal/service"
	"github.com/nostruffes/catalog/internal/store"
	"github.com/nostruffes/catalog/internal/transport/rest"
	"github.com/nostruffes/catalog/pkg/server"
)

type Dependencies struct {
	CatalogService service.CatalogService
	Logger         *slog.Logger
}

// SetupDependencies constructs the store, the payment registrar and the
// catalog service from the process-level resources.
func SetupDependencies(dbPool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) *Dependencies {
	registrar := payment.NewClient(cfg.Payment.URL, cfg.Payment.Timeout, logger)
	cService := service.NewService(store.NewPgStore(dbPool), registrar, logger)

	return &Dependencies{
		CatalogService: cService,
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the catalog service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the catalog service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	catalogHandler := rest.NewHandler(deps.CatalogService, deps.Logger)
	catalogHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the catalog service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
