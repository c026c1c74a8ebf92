// Package interfaces defines the contracts the core packages depend on.
// Concrete implementations live under infrastructure/ and are wired in by
// cmd/feedmedia, which keeps the core testable with small hand-written mocks.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// CacheStats is a point-in-time view of a cache backend.
type CacheStats struct {
	// TotalEntries is the raw number of stored entries, expired ones included
	// when the backend keeps them around until read.
	TotalEntries int

	// ValidEntries counts only entries that have not expired yet.
	ValidEntries int
}

// Cache stores opaque byte values under string keys with a TTL.
//
// Example usage:
//
//	err := cache.Set(ctx, "head_https://example.com/a.jpg", data, 5*time.Minute)
//
//	data, err := cache.Get(ctx, "head_https://example.com/a.jpg")
//	if errors.Is(err, interfaces.ErrCacheMiss) {
//		// fetch and Set again
//	}
type Cache interface {
	// Get returns the value for key, or ErrCacheMiss when it is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl of 0 stores it without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear drops every entry owned by the cache.
	Clear(ctx context.Context) error

	// Stats reports entry counts without evicting anything.
	Stats(ctx context.Context) (CacheStats, error)
}
