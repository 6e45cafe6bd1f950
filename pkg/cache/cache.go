// Package cache stores computed layouts and rendered artifacts.
//
// # Overview
//
// Levels, layouts and artifacts are pure functions of a graph and a handful
// of options, so the pipeline caches them by content hash. A [Cache] is a
// byte store with per-entry expiry; a [Keyer] turns a hash plus options into
// a key.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: document store with a TTL index
//
// [Open] picks a backend from a [Config], which is how the CLI and the
// server wire caching from flags and the config file.
//
// # Errors
//
// Backends report a miss as (nil, false, nil). Transient network failures
// are wrapped with [Retryable] and retried by [RetryWithBackoff] where the
// backend dials.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Entry lifetimes.
const (
	// TTLLevels is how long level tables are kept.
	TTLLevels = 7 * 24 * time.Hour

	// TTLLayout is how long computed layouts are kept.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered outputs are kept. Artifacts are
	// cheap to rebuild from a cached layout.
	TTLArtifact = 24 * time.Hour
)
