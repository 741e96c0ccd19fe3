package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/mergington/activities/internal/adapters/http/api"
	"github.com/mergington/activities/internal/adapters/http/site"
	"github.com/mergington/activities/internal/adapters/http/swagger"
	repository "github.com/mergington/activities/internal/adapters/repository"
	app "github.com/mergington/activities/internal/app"
	"github.com/mergington/activities/internal/config"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// HTTP server and background loop constants.
const (
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := setupLogging(ctx, cfg); err != nil {
		os.Stderr.WriteString("failed to configure logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	svc, err := newService(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to build activity directory", logger.Error(err))
		os.Exit(1)
	}

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc),
		ReadTimeout:       cfg.ReadTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	log.Info(shutdownCtx, "server stopped")
}

// setupLogging applies the configured format and level to the global logger.
// An invalid level falls back to info.
func setupLogging(ctx context.Context, cfg *config.Config) error {
	if err := logger.InitWithOptions(logger.Options{Format: cfg.LogFormat}); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

// newService seeds the directory from cfg.SeedFile, or the built-in
// catalogue when unset, and publishes its initial gauges.
func newService(ctx context.Context, cfg *config.Config) (*app.Service, error) {
	seed := model.DefaultActivities()
	if cfg.SeedFile != "" {
		loaded, err := config.LoadSeed(ctx, cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		seed = loaded
	}

	store, err := repository.NewMemoryStore(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("seeding directory: %w", err)
	}
	svc := app.New(store, app.WithLogger(logger.Named("directory")))
	svc.RefreshMetrics(ctx)

	logger.Get().Info(ctx, "activity directory ready",
		logger.Int("activities", len(seed)),
		logger.String("seed_file", cfg.SeedFile))
	return svc, nil
}

// newHandler builds the full route table behind request-id tagging.
func newHandler(ctx context.Context, svc *app.Service) http.Handler {
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	return api.RequestID(mux, logger.Named("http"))
}

// startSystemMetricsUpdater periodically records runtime figures.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater periodically republishes roster gauges.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.RefreshMetrics(ctx)
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var avgPauseMs float64
	if m.NumGC > 0 {
		avgPauseMs = float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
	}
	metrics.UpdateSystem(m.Alloc, runtime.NumGoroutine(), avgPauseMs)
}
