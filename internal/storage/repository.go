package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"

	_ "modernc.org/sqlite"

	applog "kakei/internal/log"
)

const slotsTable = "kv_slots"

// SQLiteRepository stores named slots in a single sqlite table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Get implements store.Slot
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := sq.Select("value").
		From(slotsTable).
		Where(sq.Eq{"key": key}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select slot: %w", err)
	}
	return []byte(value), true, nil
}

// Set implements store.Slot
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	now := time.Now().UTC()
	_, err := sq.Insert(slotsTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), now).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}

	applog.ForComponent(ctx, applog.ComponentStorage).DebugContext(ctx, "Slot saved to SQLite", "key", key, "size", len(value))
	return nil
}
