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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"andinabi/internal/config"
	"andinabi/internal/dataprocessing"
	apierrors "andinabi/internal/errors"
	"andinabi/internal/exporter"
	"andinabi/internal/infrastructure"
	custommw "andinabi/internal/middleware"
	"andinabi/internal/services"
	handlers "andinabi/internal/transport/http"
)

const AppName = "andinabi"

// Application is the dependency container for the dashboard server.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   *infrastructure.Metrics
	Dashboard *services.DashboardService
	Health    *services.HealthService
	Router    *chi.Mux
	Server    *http.Server
}

// NewApplication builds the application from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig builds the application from a prepared
// configuration. Split out so tests can inject their own.
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", services.Version),
		slog.String("data_dir", cfg.Paths.DataDir))

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	metrics, err := infrastructure.NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("initialize metrics: %w", err)
	}

	loader := dataprocessing.NewLoader(cfg.Paths.DataDir, logger)
	dashboard := services.NewDashboardService(loader, metrics, logger)
	health := services.NewHealthService(cfg.Paths.DataDir)

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Dashboard: dashboard,
		Health:    health,
	}
	app.setupRouter()

	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)

	r.Group(func(r chi.Router) {
		r.Use(custommw.Metrics(a.Metrics))
		r.Use(custommw.StructuredLogger(a.Logger))
		r.Use(custommw.Recoverer(a.Logger))
		r.Use(custommw.SecurityHeaders)
		r.Use(custommw.CORS(custommw.DefaultCORSConfig()))
		if a.Config.Server.RateLimit.Enabled {
			r.Use(custommw.NewRateLimiter(
				a.Config.Server.RateLimit.RPS,
				a.Config.Server.RateLimit.Burst,
				a.Logger,
			).Handler)
		}
		r.Use(chimiddleware.Timeout(a.Config.Server.WriteTimeout))

		a.setupAPIRoutes(r)
	})

	// Outside the middleware group: scrape traffic stays out of the
	// request logs and rate limits.
	if a.Metrics != nil && a.Metrics.Handler != nil {
		r.Handle("/metrics", a.Metrics.Handler)
	}

	a.Router = r
}

// setupAPIRoutes configures the API endpoints.
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger)
	excelWriter := exporter.NewExcelWriter(a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := handlers.NewHealthHandler(a.Health, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)

		dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, excelWriter, a.Logger, errorHandler)
		r.Mount("/dashboard", dashboardHandler.Routes())
	})
}

// Run starts the server and blocks until the context is cancelled or a
// termination signal arrives, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening",
			slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Warm the dataset cache in the background so the first request
	// doesn't pay the load cost. Failure is logged, not fatal: the next
	// request retries.
	go func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := a.Dashboard.Dataset(warmCtx); err != nil {
			a.Logger.Warn("dataset warm-up failed",
				slog.String("error", err.Error()))
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.Info("shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := a.Metrics.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warn("metrics shutdown failed", slog.String("error", err.Error()))
	}

	a.Logger.Info("application stopped")
	return nil
}
