// Package postgres implements the slot port on a PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const migrationSQL = `
CREATE TABLE IF NOT EXISTS kv_slots (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Config holds PostgreSQL connection configuration.
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	// MaxPoolSize defaults to 4; the store issues one statement at a time.
	MaxPoolSize int
}

// Slots stores named slots in the kv_slots table.
type Slots struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New connects, pings and creates the table if needed.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Slots, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Port == 0 {
		cfg.Port = 5432
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	if cfg.MaxPoolSize == 0 {
		cfg.MaxPoolSize = 4
	}

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxPoolSize)
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := pool.Exec(ctx, migrationSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("executing migration: %w", err)
	}

	logger.Info("connected to PostgreSQL",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Database,
	)

	return &Slots{pool: pool, logger: logger}, nil
}

// Get implements store.Slot
func (s *Slots) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := psql.Select("value::text").
		From("kv_slots").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("building select: %w", err)
	}

	var value string
	err = s.pool.QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select slot: %w", err)
	}
	return []byte(value), true, nil
}

// Set implements store.Slot
func (s *Slots) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := psql.Insert("kv_slots").
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building upsert: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	s.logger.Debug("slot saved to PostgreSQL", "key", key, "size", len(value))
	return nil
}

// Close releases the pool.
func (s *Slots) Close() error {
	s.pool.Close()
	return nil
}
