package backend

import (
	"context"

	"kakei/internal/store"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the slot instance and optional cleanup function
type BackendResult struct {
	Slot    store.Slot
	Cleanup CleanupFunc
}

// Factory creates slot backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// Memory specific
	SeedDirectory string

	// SQLite specific
	SQLiteDBPath string

	// Postgres specific
	PostgresHost     string
	PostgresPort     int
	PostgresDatabase string
	PostgresUser     string
	PostgresPassword string
	PostgresSSLMode  string

	// Memcache specific
	MemcacheHosts  []string
	MemcachePrefix string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend   BackendType = "memory"
	SQLiteBackend   BackendType = "sqlite"
	PostgresBackend BackendType = "postgres"
	MemcacheBackend BackendType = "memcache"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, PostgresBackend, MemcacheBackend:
		return true
	default:
		return false
	}
}
