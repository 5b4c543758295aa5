// filepath: internal/cli/server.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkhub/internal/api"
	"inkhub/internal/api/handlers"
	"inkhub/internal/audit"
	"inkhub/internal/config"
	"inkhub/internal/logging"
	"inkhub/internal/media"
	"inkhub/internal/repository"
	"inkhub/internal/services"
	"inkhub/internal/services/auth"
)

// ShutdownTimeout bounds how long in-flight requests get on shutdown.
const ShutdownTimeout = 30 * time.Second

// app is the wired server without its listener.
type app struct {
	Handler      http.Handler
	Housekeeping services.HousekeepingService
	Repo         *repository.Repository
}

func (a *app) Close() {
	if a.Repo != nil {
		a.Repo.Close()
	}
}

// buildApp opens the database and wires services, handlers and router.
func buildApp(cfg *config.Config) (*app, error) {
	if !cfg.AuthConfigured() {
		logging.Log.Warn("Authentication is not configured: every login will be rejected. Run 'inkhub setup' first.")
	}

	media.Initialize(cfg.Media.FFmpegPath)

	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	// --- Conditional Auto-migrate on startup ---
	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		repo.Close()
		logging.Log.Errorf("Failed to bootstrap database: %v", err)
		return nil, err
	}

	if err := repo.ValidateSchema(); err != nil {
		repo.Close()
		logging.Log.Error("---------------------------------------------------------------")
		logging.Log.Errorf("CRITICAL DATABASE ERROR: %v", err)
		logging.Log.Error("---------------------------------------------------------------")
		return nil, err
	}

	newsStore, err := newNewsStore(cfg, repo)
	if err != nil {
		repo.Close()
		return nil, err
	}

	// Service Initialization
	loggerAuditor := audit.NewLoggerAuditor(cfg.Logging.AuditEnabled, nil)
	infoService := services.NewInfoService(Version, StartTime, media.IsFFmpegAvailable(), cfg.AuthConfigured())
	tokenService := auth.NewTokenService(cfg, auth.NewCredentialChecker(cfg.Auth.PasswordHash))
	mediaStore := services.NewFileMediaStore(cfg.Storage.Root, cfg.Storage.Thumbnails)
	uploadService := services.NewUploadService(mediaStore, media.JPEGConverter{}, loggerAuditor, cfg)
	visitService := services.NewVisitService(repo)
	housekeepingService := services.NewHousekeepingService(cfg.Storage.Root, cfg.TempMaxAge, cfg.HousekeepingInterval)

	authMiddleware := auth.NewMiddleware(tokenService)

	h := handlers.NewHandlers(
		infoService,
		tokenService,
		uploadService,
		mediaStore,
		newsStore,
		visitService,
		housekeepingService,
		loggerAuditor,
		cfg,
	)

	return &app{
		Handler:      api.SetupRouter(h, authMiddleware, cfg),
		Housekeeping: housekeepingService,
		Repo:         repo,
	}, nil
}

func newNewsStore(cfg *config.Config, repo *repository.Repository) (services.NewsStore, error) {
	switch cfg.News.Backend {
	case config.NewsBackendSQLite:
		logging.Log.Info("News backend: sqlite")
		return services.NewSQLNewsStore(repo), nil
	default:
		logging.Log.Infof("News backend: json (%s)", cfg.News.JSONPath)
		store, err := services.NewJSONNewsStore(cfg.News.JSONPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open news file: %w", err)
		}
		return store, nil
	}
}

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer() error {
	a, err := buildApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Housekeeping.Start()
	// No defer stop here, we stop explicitly during graceful shutdown

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Graceful Shutdown Setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logging.Log.Infof("Server starting on %s (Max Upload: %s)", serverAddr, cfg.Server.MaxUploadSize)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-stop:
	case err := <-serveErr:
		a.Housekeeping.Stop()
		return fmt.Errorf("server failed to start: %w", err)
	}
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	// Stop background services
	a.Housekeeping.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
