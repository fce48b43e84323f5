// Package cache implements the side-cache used to memoize aggregate
// statistics. The cache is never the system of record: every value in it
// can be recomputed from the review ledger, and correctness must hold
// with the cache entirely disabled. Implementations therefore never
// surface errors; any internal failure degrades to a miss.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cache is the contract for the statistics side-cache. Get returns the
// stored value and whether it was present and unexpired. Set stores a
// value with the given TTL; the TTL is a safety net bounding staleness
// if an explicit invalidation is ever missed. Invalidate removes every
// entry for one entity, and Flush empties the cache entirely.
type Cache interface {
	Get(ctx context.Context, key Key) ([]byte, bool)
	Set(ctx context.Context, key Key, value []byte, ttl time.Duration)
	Invalidate(ctx context.Context, kind Kind, id uuid.UUID)
	Flush(ctx context.Context)
}
