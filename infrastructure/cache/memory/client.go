// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Expiry is lazy: expired entries read as misses and are only dropped by Clear

package memory

import (
	"context"
	"time"

	"feedmedia/core/interfaces"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements the Cache interface using in-memory storage.
// go-cache guards its map with a RWMutex, so MemoryCache is goroutine-safe.
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache instance. No janitor
// goroutine is started; expired entries stay counted in TotalEntries until
// the cache is cleared.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: gocache.New(gocache.NoExpiration, 0)}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, found := c.items.Get(key)
	if !found {
		return nil, interfaces.ErrCacheMiss
	}

	stored, ok := v.([]byte)
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}

	// Return a copy so callers cannot mutate the cached bytes
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value in the cache with the given TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.items.Set(key, valueCopy, ttl)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.items.Delete(key)
	return nil
}

// Clear drops every entry
func (c *MemoryCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.items.Flush()
	return nil
}

// Stats reports the raw entry count and the count of unexpired entries
func (c *MemoryCache) Stats(ctx context.Context) (interfaces.CacheStats, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.CacheStats{}, err
	}

	return interfaces.CacheStats{
		TotalEntries: c.items.ItemCount(),
		ValidEntries: len(c.items.Items()),
	}, nil
}
