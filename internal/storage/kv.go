package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv store closed")
)

// KV is a minimal key/value store.
//
// Implementations must be safe for concurrent use. Reads and writes are
// synchronous from the caller's point of view.
type KV interface {
	// Get retrieves a value by key.
	// Returns ErrKeyNotFound if key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a key-value pair, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases underlying resources.
	Close() error
}

// Config configures the persistent store.
type Config struct {
	// Dir is the storage directory.
	Dir string `koanf:"dir" yaml:"dir"`

	// GCInterval is the interval between value log GC runs.
	// Default: 10m
	GCInterval string `koanf:"gc_interval" yaml:"gc_interval"`

	// GCThreshold is the GC discard ratio threshold (0.0-1.0).
	// Default: 0.5
	GCThreshold float64 `koanf:"gc_threshold" yaml:"gc_threshold"`

	// SyncWrites enables fsync after each write.
	// Default: true (a lost token write means an unexpected logout)
	SyncWrites bool `koanf:"sync_writes" yaml:"sync_writes"`
}

// DefaultDir returns the default storage directory.
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".mitaina", "storage")
}

// DefaultConfig returns the default storage configuration.
func DefaultConfig() Config {
	return Config{
		Dir:         DefaultDir(),
		GCInterval:  "10m",
		GCThreshold: 0.5,
		SyncWrites:  true,
	}
}
