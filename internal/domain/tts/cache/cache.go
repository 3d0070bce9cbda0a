// Package cache provides the TTL byte store backing synthesized preamble
// audio. Backends are interchangeable: Redis when reachable, a process-local
// map otherwise, and optionally SQLite when a persistent cache is wanted.
package cache

import (
	"context"
	"time"
)

// Store is a key -> payload cache with per-entry TTL. Implementations must be
// safe for concurrent use. A miss is never an error; errors report backend
// trouble the caller is expected to absorb as a miss.
type Store interface {
	// Get returns the payload for key, or ok=false when the key is absent or
	// expired.
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)

	// Put stores payload under key for ttl, overwriting any prior entry.
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Len reports the number of live entries, used by the readiness endpoint.
	Len(ctx context.Context) (int, error)

	// Backend names the active implementation ("redis", "memory", "sqlite").
	Backend() string

	Close() error
}

// Driver identifiers supported by the cache.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Config describes the store selection parameters.
type Config struct {
	Driver string
	Redis  *RedisConfig
	SQLite *SQLiteConfig
}

// RedisConfig captures connection options for the distributed backend.
type RedisConfig struct {
	URL    string
	Prefix string
}

// SQLiteConfig provides the database source for the persistent backend.
type SQLiteConfig struct {
	DSN string
}
