package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NopCache is a Cache that stores nothing and always misses. It stands
// in for the real cache in tests and when caching is disabled; the study
// service must behave correctly with it installed.
type NopCache struct{}

// Ensure NopCache implements the Cache interface
var _ Cache = (*NopCache)(nil)

// NewNopCache creates a cache that never hits.
func NewNopCache() *NopCache {
	return &NopCache{}
}

// Get always reports a miss.
func (c *NopCache) Get(ctx context.Context, key Key) ([]byte, bool) {
	return nil, false
}

// Set discards the value.
func (c *NopCache) Set(ctx context.Context, key Key, value []byte, ttl time.Duration) {}

// Invalidate does nothing.
func (c *NopCache) Invalidate(ctx context.Context, kind Kind, id uuid.UUID) {}

// Flush does nothing.
func (c *NopCache) Flush(ctx context.Context) {}
