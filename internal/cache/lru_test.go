package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUCacheGetSet(t *testing.T) {
	t.Parallel() // Enable parallel execution
	c := NewLRUCache(16, time.Minute, nil)
	ctx := context.Background()

	key := Key{Kind: KindWord, ID: uuid.New(), Stat: StatWordStats}

	_, ok := c.Get(ctx, key)
	assert.False(t, ok, "fresh cache should miss")

	c.Set(ctx, key, []byte(`{"success_rate":0.75,"study_count":4}`), time.Minute)

	value, ok := c.Get(ctx, key)
	require.True(t, ok, "expected hit after set")
	assert.Equal(t, `{"success_rate":0.75,"study_count":4}`, string(value))
}

func TestLRUCacheEntryTTL(t *testing.T) {
	t.Parallel() // Enable parallel execution
	c := NewLRUCache(16, time.Minute, nil)
	ctx := context.Background()

	key := Key{Kind: KindSession, ID: uuid.New(), Stat: StatSummary}
	c.Set(ctx, key, []byte("soon gone"), 10*time.Millisecond)

	_, ok := c.Get(ctx, key)
	assert.True(t, ok, "entry should be live immediately after set")

	time.Sleep(30 * time.Millisecond)

	_, ok = c.Get(ctx, key)
	assert.False(t, ok, "entry should expire after its own TTL, before the cache-wide TTL")
}

func TestLRUCacheInvalidateByEntity(t *testing.T) {
	t.Parallel() // Enable parallel execution
	c := NewLRUCache(16, time.Minute, nil)
	ctx := context.Background()

	wordID := uuid.New()
	otherID := uuid.New()

	c.Set(ctx, Key{Kind: KindWord, ID: wordID, Stat: StatWordStats}, []byte("a"), 0)
	c.Set(ctx, Key{Kind: KindWord, ID: wordID, Stat: StatSuccessRate}, []byte("b"), 0)
	c.Set(ctx, Key{Kind: KindWord, ID: otherID, Stat: StatWordStats}, []byte("c"), 0)
	c.Set(ctx, Key{Kind: KindGroup, ID: wordID, Stat: StatGroupStats}, []byte("d"), 0)

	c.Invalidate(ctx, KindWord, wordID)

	_, ok := c.Get(ctx, Key{Kind: KindWord, ID: wordID, Stat: StatWordStats})
	assert.False(t, ok, "invalidated statistic should miss")
	_, ok = c.Get(ctx, Key{Kind: KindWord, ID: wordID, Stat: StatSuccessRate})
	assert.False(t, ok, "every statistic of the entity should be invalidated")

	_, ok = c.Get(ctx, Key{Kind: KindWord, ID: otherID, Stat: StatWordStats})
	assert.True(t, ok, "other words should be untouched")
	_, ok = c.Get(ctx, Key{Kind: KindGroup, ID: wordID, Stat: StatGroupStats})
	assert.True(t, ok, "same id under a different kind is a different entity")
}

func TestLRUCacheFlush(t *testing.T) {
	t.Parallel() // Enable parallel execution
	c := NewLRUCache(16, time.Minute, nil)
	ctx := context.Background()

	key := Key{Kind: KindGroup, ID: uuid.New(), Stat: StatGroupStats}
	c.Set(ctx, key, []byte("x"), 0)

	c.Flush(ctx)

	_, ok := c.Get(ctx, key)
	assert.False(t, ok, "flush should empty the cache")
}

func TestKeyString(t *testing.T) {
	t.Parallel() // Enable parallel execution
	id := uuid.MustParse("4b7a6c6e-8a1f-4a2b-9c3d-5e6f7a8b9c0d")
	key := Key{Kind: KindSession, ID: id, Stat: StatSummary}
	assert.Equal(t, "session:4b7a6c6e-8a1f-4a2b-9c3d-5e6f7a8b9c0d:summary", key.String())
}

func TestNopCacheAlwaysMisses(t *testing.T) {
	t.Parallel() // Enable parallel execution
	c := NewNopCache()
	ctx := context.Background()

	key := Key{Kind: KindWord, ID: uuid.New(), Stat: StatWordStats}
	c.Set(ctx, key, []byte("value"), time.Minute)

	_, ok := c.Get(ctx, key)
	assert.False(t, ok, "nop cache must never hit")
}
