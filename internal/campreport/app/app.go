package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/Nicholas-Fearon/camp-report-app/internal/campreport/http"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/identity"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/service"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store/drivers/sqlite"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/cryptox"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/idx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/jwtx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the camp report service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   *jwtx.EdDSASigner
	verifier *jwtx.EdDSAVerifier
	identity identity.Provider

	// Services
	authService   *service.AuthService
	inviteService *service.InviteService
	rosterService *service.RosterService
	reportService *service.ReportService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "campreport",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	// Session tokens are signed with a per-process Ed25519 key. Sessions
	// are short-lived, so losing them across restarts is acceptable.
	signer, err := jwtx.NewEphemeralSigner(idx.New().String())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session signer: %w", err)
	}
	app.signer = signer
	app.verifier = jwtx.NewVerifier(cfg.Issuer, signer)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("camp report service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down camp report service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("camp report service stopped")
	return nil
}

// Handler exposes the HTTP surface, mainly for in-process tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.identity = identity.NewService(app.db)

	app.authService = &service.AuthService{
		Store:    app.db,
		Identity: app.identity,
		Signer:   app.signer,
		Issuer:   app.cfg.Issuer,
	}
	app.inviteService = &service.InviteService{
		Store:    app.db,
		Identity: app.identity,
		BaseURL:  app.cfg.BaseURL,
		Validity: app.cfg.InviteValidity,
	}
	app.rosterService = &service.RosterService{Store: app.db}
	app.reportService = &service.ReportService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.InviteService = app.inviteService
	router.RosterService = app.rosterService
	router.ReportService = app.reportService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
