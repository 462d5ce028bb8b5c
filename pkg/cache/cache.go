// Package cache stores conversion results keyed by document content and
// options.
//
// Three backends implement [Cache]: [NullCache] disables caching,
// [FileCache] keeps entries under a local directory for CLI use, and
// [RedisCache] shares entries between server replicas. Keys come from a
// [Keyer], so a converted model is reused whenever the same bytes are
// converted with the same options.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry until it is
	// deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
