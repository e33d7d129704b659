// Package cache stores encoded layout results and rendered anchor graphs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for several API server instances
//   - [MongoCache]: document store with a TTL index, for API servers that
//     already run MongoDB
//   - [NullCache]: stores nothing, used by --no-cache
//
// [Open] picks a backend from a single configuration string.
//
// # Keys
//
// A [Keyer] derives keys from the hash of a scene's canonical encoding, so
// two files that declare the same container share an entry. Keys embed
// [SchemaVersion]; bump it when the encoded result changes shape.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil). A ttl of zero stores the entry
// without expiry. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	// TTLResult bounds how long a layout result is reused.
	TTLResult = 7 * 24 * time.Hour

	// TTLGraph bounds how long a rendered anchor graph is reused.
	TTLGraph = 24 * time.Hour
)

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
