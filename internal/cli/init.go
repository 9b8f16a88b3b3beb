// Package cli provides the process bootstrap shared by the binaries:
// environment loading, logging, configuration and wiring of the tracker.
package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"kakei/internal/backend"
	"kakei/internal/config"
	applog "kakei/internal/log"
	"kakei/internal/services"
	"kakei/internal/store"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the application logger from the raw level and format
// settings and installs it as the slog default.
func SetupLogger(level, format string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(level)
	if format != "" {
		cfg.Format = format
	}
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// App is the wired application.
type App struct {
	Tracker *services.Tracker
	Store   *store.RecordStore
	cleanup []backend.CleanupFunc
}

// Build opens the slot backend and connects the optional integrations.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, err
	}
	app := &App{Store: store.New(res.Slot, cfg.StorageKey)}
	if res.Cleanup != nil {
		app.cleanup = append(app.cleanup, res.Cleanup)
	}

	exporter, err := backend.NewExporter(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	notifier, err := backend.NewNotifier(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	publisher, closePublishers := backend.NewPublisher(ctx, cfg, logger)
	app.cleanup = append(app.cleanup, closePublishers)

	opts := []services.Option{}
	if exporter != nil {
		opts = append(opts, services.WithExporter(exporter))
	}
	if notifier != nil {
		opts = append(opts, services.WithNotifier(notifier, backend.Identity(cfg)))
	}
	if publisher != nil {
		opts = append(opts, services.WithPublisher(publisher))
	}
	app.Tracker = services.NewTracker(app.Store, opts...)

	logger.Info("Application wired",
		applog.FieldBackend, cfg.DataBackend,
		"storage_key", cfg.StorageKey,
		"sync_enabled", exporter != nil,
		"sync_target", cfg.SyncTarget,
		"notify_enabled", notifier != nil,
		"notify_channel", cfg.NotifyChannel,
		"events_enabled", publisher != nil)
	return app, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		if err := a.cleanup[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
