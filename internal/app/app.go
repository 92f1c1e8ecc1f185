package app

import (
	"context"
	"net/http"
	"time"

	"github.com/dersplan/dersplan/internal/config"
	"github.com/dersplan/dersplan/internal/database"
	"github.com/dersplan/dersplan/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(db, cfg)

	// Validation pass over the loaded store: malformed legacy records are
	// dropped silently, matching the cleanup on the periodic schedule.
	if removed, err := deps.ScheduleService.CleanupMalformed(context.Background()); err != nil {
		log.Warnf("startup cleanup failed: %v", err)
	} else if removed > 0 {
		log.Infof("Startup cleanup removed %d malformed records", removed)
	}

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	// Frontend
	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler("frontend", "index.html")
		r.PathPrefix("/").Handler(frontend)
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":8181",
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}, nil
}

// Run starts the cleanup schedule and the HTTP server and blocks.
func (a *Application) Run() error {
	if err := a.deps.CleanupJob.Start(); err != nil {
		return err
	}
	defer a.deps.CleanupJob.Stop()

	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
