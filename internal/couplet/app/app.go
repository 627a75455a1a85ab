package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/couplet/internal/couplet/blob"
	"github.com/aussiebroadwan/couplet/internal/couplet/events"
	httpapi "github.com/aussiebroadwan/couplet/internal/couplet/http"
	"github.com/aussiebroadwan/couplet/internal/couplet/service"
	"github.com/aussiebroadwan/couplet/internal/couplet/store"
	"github.com/aussiebroadwan/couplet/internal/couplet/store/drivers/sqlite"
	"github.com/aussiebroadwan/couplet/pkg/cryptox"
	"github.com/aussiebroadwan/couplet/pkg/httpx"
	"github.com/aussiebroadwan/couplet/pkg/jwtx"
	"github.com/aussiebroadwan/couplet/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

const serviceName = "couplet"

// Application owns every long-lived dependency of the service.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	blobs      *blob.Store
	keyManager *jwtx.KeyManager
	hub        *events.Hub

	accountService       *service.AccountService
	pairingService       *service.PairingService
	partnerInviteService *service.PartnerInviteService
	profileService       *service.ProfileService
	housekeepingService  *service.HousekeepingService

	shutdownTracing func(context.Context) error

	server *http.Server
	router *httpapi.Router
}

// New builds the application. Nothing is listening until Run.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	httpx.TrustProxyHeaders = cfg.TrustProxyHeaders

	shutdown, err := setupTracing(context.Background(), cfg.OTelEndpoint, serviceName, BuildVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise tracing: %w", err)
	}
	app.shutdownTracing = shutdown

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initBlobs(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:   cfg.Issuer,
		Audience: []string{serviceName},
	})
	if err != nil {
		app.closeStores()
		return nil, fmt.Errorf("failed to initialise signing keys: %w", err)
	}
	app.keyManager = keyManager

	if err := app.initServices(); err != nil {
		app.closeStores()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the configured router, mainly for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves HTTP until SIGINT/SIGTERM or a server failure.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("couplet service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			app.hub.Shutdown()
			app.closeStores()
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

// Shutdown drains HTTP, ends event streams, stops background work and
// closes the stores.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down couplet service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Streams never finish on their own, so release them before draining.
	app.hub.Shutdown()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.shutdownTracing(ctx); err != nil {
		app.logger.Error("error flushing traces", "error", err)
	}

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("couplet service stopped")
	return nil
}

func (app *Application) closeStores() error {
	var errs []error
	if app.blobs != nil {
		if err := app.blobs.Close(); err != nil {
			app.logger.Error("error closing blob store", "error", err)
			errs = append(errs, err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialise database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initBlobs() error {
	blobs, err := blob.Open(blob.Options{
		Dir:           app.cfg.BlobDir,
		InMemory:      app.cfg.BlobDir == "",
		PublicBaseURL: app.cfg.PublicURL + "/media",
		Logger:        app.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open blob store: %w", err)
	}
	app.blobs = blobs
	return nil
}

func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	app.hub = events.NewHub(app.logger)
	linker := &service.Linker{Store: app.db}

	app.accountService = &service.AccountService{
		Store:     app.db,
		Hasher:    cryptox.NewPasswordHasher(pepper),
		Keys:      app.keyManager,
		Issuer:    app.cfg.Issuer,
		Audience:  []string{serviceName},
		AccessTTL: app.cfg.AccessTTL,
	}
	app.pairingService = &service.PairingService{
		Store:  app.db,
		Linker: linker,
		Events: app.hub,
	}
	app.partnerInviteService = &service.PartnerInviteService{
		Store:  app.db,
		Linker: linker,
		Events: app.hub,
	}
	app.profileService = &service.ProfileService{
		Store: app.db,
		Blobs: app.blobs,
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.InviteCodeRetention,
	)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AccountService = app.accountService
	router.PairingService = app.pairingService
	router.PartnerInviteService = app.partnerInviteService
	router.ProfileService = app.profileService
	router.Hub = app.hub
	router.Blobs = app.blobs
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
