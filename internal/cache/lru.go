package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// entry wraps a cached value with its own deadline. The backing LRU has
// a single cache-wide TTL; per-entry deadlines let callers request a
// shorter bound, and the LRU's TTL remains the outer safety net.
type entry struct {
	value     []byte
	expiresAt time.Time
}

// LRUCache is an in-process statistics cache backed by an expirable LRU.
// It is safe for concurrent use by all request handlers.
type LRUCache struct {
	lru        *expirable.LRU[string, entry]
	defaultTTL time.Duration
	logger     *slog.Logger
}

// Ensure LRUCache implements the Cache interface
var _ Cache = (*LRUCache)(nil)

// NewLRUCache creates a statistics cache holding at most maxEntries
// values, each expiring after defaultTTL unless a Set requests a shorter
// lifetime. If logger is nil, a default logger will be used.
func NewLRUCache(maxEntries int, defaultTTL time.Duration, logger *slog.Logger) *LRUCache {
	if maxEntries < 1 {
		panic("maxEntries must be positive")
	}
	if defaultTTL <= 0 {
		panic("defaultTTL must be positive")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &LRUCache{
		lru:        expirable.NewLRU[string, entry](maxEntries, nil, defaultTTL),
		defaultTTL: defaultTTL,
		logger:     logger.With(slog.String("component", "stats_cache")),
	}
}

// Get returns the cached value for the key, reporting a miss for absent
// or expired entries.
func (c *LRUCache) Get(ctx context.Context, key Key) ([]byte, bool) {
	e, ok := c.lru.Get(key.String())
	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		c.lru.Remove(key.String())
		return nil, false
	}

	return e.value, true
}

// Set stores the value under the key. A non-positive ttl falls back to
// the cache's default; a ttl longer than the default is clamped to it so
// the cache-wide staleness bound always holds.
func (c *LRUCache) Set(ctx context.Context, key Key, value []byte, ttl time.Duration) {
	if ttl <= 0 || ttl > c.defaultTTL {
		ttl = c.defaultTTL
	}

	c.lru.Add(key.String(), entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
}

// Invalidate removes every cached statistic for the given entity.
func (c *LRUCache) Invalidate(ctx context.Context, kind Kind, id uuid.UUID) {
	prefix := entityPrefix(kind, id)

	removed := 0
	for _, k := range c.lru.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.lru.Remove(k)
			removed++
		}
	}

	if removed > 0 {
		c.logger.Debug("invalidated cache entries",
			slog.String("kind", string(kind)),
			slog.String("id", id.String()),
			slog.Int("removed", removed))
	}
}

// Flush empties the cache entirely.
func (c *LRUCache) Flush(ctx context.Context) {
	c.lru.Purge()
	c.logger.Debug("flushed statistics cache")
}
