// Package cache provides content-addressed caching for grid layouts and
// rendered artifacts.
//
// Layouts are keyed by a hash of the tile list plus every configuration
// value the engine reads, so a cached layout is returned only when a fresh
// pass would produce the same geometry. Artifacts are keyed by the layout
// hash plus render options.
//
// Backends:
//   - [FileCache]: one file per entry under ~/.cache/quicktiles (CLI)
//   - [RedisCache]: shared cache for API deployments
//   - [MongoCache]: persistent shared cache with a TTL index
//   - [NullCache]: caching disabled
//
// Cache errors never fail a pipeline run: callers treat a failed Get as a
// miss and ignore a failed Set.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key. hit is false on a miss.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
