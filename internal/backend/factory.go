package backend

import (
	"context"
	"fmt"
	"log/slog"

	"kakei/internal/storage"
	"kakei/internal/store/memcache"
	"kakei/internal/store/memory"
	"kakei/internal/store/postgres"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case PostgresBackend:
		return f.createPostgresBackend(ctx, config)
	case MemcacheBackend:
		return f.createMemcacheBackend(config)
	default:
		return f.createMemoryBackend(config)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Slot:    repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createPostgresBackend(ctx context.Context, config Config) (*BackendResult, error) {
	slots, err := postgres.New(ctx, postgres.Config{
		Host:     config.PostgresHost,
		Port:     config.PostgresPort,
		Database: config.PostgresDatabase,
		User:     config.PostgresUser,
		Password: config.PostgresPassword,
		SSLMode:  config.PostgresSSLMode,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL backend: %w", err)
	}

	f.logger.Info("Initialized PostgreSQL backend",
		"host", config.PostgresHost,
		"database", config.PostgresDatabase)

	return &BackendResult{
		Slot:    slots,
		Cleanup: slots.Close,
	}, nil
}

func (f *DefaultFactory) createMemcacheBackend(config Config) (*BackendResult, error) {
	slots, err := memcache.New(config.MemcacheHosts, config.MemcachePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memcache backend: %w", err)
	}

	f.logger.Info("Initialized memcache backend", "hosts", config.MemcacheHosts)

	return &BackendResult{Slot: slots}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	var slots *memory.Slots
	if config.SeedDirectory != "" {
		slots = memory.NewFromDir(config.SeedDirectory)
	} else {
		slots = memory.New()
	}

	f.logger.Info("Initialized memory backend", "seed_directory", config.SeedDirectory)

	return &BackendResult{Slot: slots}, nil
}
