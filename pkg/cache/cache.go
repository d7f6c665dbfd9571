// Package cache stores rendered artifacts keyed by content hash.
//
// Graphviz layout and rsvg conversion dominate regionviz's runtime, and
// both are pure functions of the DOT text and the output format. The CLI
// therefore caches artifacts under a key derived from those inputs and
// replays them on subsequent runs.
//
// Three backends are provided:
//   - [FileCache]: directory of JSON entries, the CLI default
//   - [RedisCache]: shared cache for multi-machine setups
//   - [NullCache]: no-op, for tests and --no-cache runs
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
// Implementations must treat a missing key as (nil, false, nil), not as
// an error.
type Cache interface {
	// Get retrieves the value for key. The second return value reports
	// whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
