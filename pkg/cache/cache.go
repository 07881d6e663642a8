// Package cache provides caching for rendered diagrams and concept
// explanations.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for API server instances
//   - [MemoryCache]: in-process LRU for a single server without Redis
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are built by a [Keyer] so CLI and server agree on the layout.
// Artifact keys hash the converter input together with every option that
// affects the output; concept keys hash the normalized topic.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash([]byte(src)), cache.ArtifactKeyOpts{
//	    Format:   "svg",
//	    Directed: true,
//	})
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads with an optional TTL.
// A Get miss is reported as (nil, false, nil); errors are reserved for
// backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
