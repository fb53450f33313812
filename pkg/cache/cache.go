// Package cache stores computed code tables keyed by their inputs.
//
// Fano codes are a pure function of the alphabet and the options that
// affect output, so a result computed once can be served again without
// touching the partition engine. The pipeline consults a [Cache] before
// computing and stores the encoded result afterwards.
//
// # Backends
//
//   - [FileCache]: JSON files under the user cache directory (CLI default)
//   - [RedisCache]: shared cache for several API servers
//   - [MemoryCache]: in-process map, used by a single server or tests
//   - [NullCache]: disables caching
//
// # Keys
//
// A [Keyer] turns an input and its options into a key. [DefaultKeyer]
// hashes the JSON form of both, so two requests share a key exactly when
// they produce the same codes. [ScopedKeyer] adds a prefix to every key,
// which lets several deployments share one redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired key is reported
	// as a miss (false) with a nil error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// CodesKeyOpts holds the options that change a computed result.
// Options that only affect how the result is computed, such as
// parallelism, are not part of the key.
type CodesKeyOpts struct {
	Places  int  `json:"places"`
	Lenient bool `json:"lenient"`
	Steps   bool `json:"steps"`
}

// Keyer generates cache keys.
type Keyer interface {
	// CodesKey returns the key for computing codes of input taken from the
	// named source ("symbols" or "text"). An empty key means the input
	// cannot be keyed and must not be cached.
	CodesKey(source string, input any, opts CodesKeyOpts) string
}

// NullCache stores nothing; every Get is a miss. It stands in for a cache
// when caching is disabled.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
