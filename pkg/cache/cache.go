// Package cache provides caching backends and key generation for solve
// results and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: filesystem-backed, used by the CLI
//   - [RedisCache]: Redis-backed, used by the API server
//   - [MemoryCache]: in-process, used in tests
//   - [NullCache]: no-op, used when caching is disabled
//
// All backends implement the [Cache] interface and store opaque byte
// payloads under string keys with an optional TTL.
//
// # Keys
//
// Keys are derived from content hashes so identical inputs share entries
// regardless of where they came from. A [Keyer] builds the keys; wrap one in
// a [ScopedKeyer] to namespace entries per tenant or deployment.
package cache

import (
	"context"
	"time"
)

// TTLs for the cached value classes. Solve results are pure functions of
// their inputs and never go stale; the TTLs bound disk and Redis growth, not
// correctness.
const (
	// TTLSolve is the lifetime of cached solve results.
	TTLSolve = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte payloads under string keys.
//
// Get returns (nil, false, nil) on a miss; errors are reserved for backend
// failures. A ttl of zero means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
