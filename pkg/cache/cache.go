// Package cache provides pluggable result caching for the lint pipeline.
//
// Lint results are keyed by a hash of the source content and the effective
// configuration, so a cache entry is only ever reused for byte-identical
// input under identical settings. The analysis core itself is stateless;
// caching is a convenience of the CLI and serve shells around it.
//
// Three backends are provided: FileCache for CLI usage (XDG cache dir),
// RedisCache for serve deployments, and NullCache to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache is the backend contract. Implementations must be safe for
// concurrent use: the lint runner calls Get/Set from parallel workers.
type Cache interface {
	// Get retrieves the value for key. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the value for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
