package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"feedmedia/core/interfaces"
)

func TestNewMemoryCache(t *testing.T) {
	cache := NewMemoryCache()

	if cache == nil {
		t.Error("NewMemoryCache returned nil")
	}
}

func TestMemoryCache_Get_ExistingKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := "head_https://example.com/a.jpg"
	value := []byte(`{"accessible":true}`)
	if err := cache.Set(ctx, key, value, time.Hour); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get returned %s, want %s", string(got), string(value))
	}
}

func TestMemoryCache_Get_NonExistentKey(t *testing.T) {
	cache := NewMemoryCache()

	got, err := cache.Get(context.Background(), "non-existent")

	if !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get error = %v, want ErrCacheMiss", err)
	}
	if got != nil {
		t.Error("Get should return nil value for non-existent key")
	}
}

func TestMemoryCache_Get_ExpiredKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	got, err := cache.Get(ctx, "key")
	if !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get error = %v, want ErrCacheMiss for expired key", err)
	}
	if got != nil {
		t.Error("Get should return nil value for expired key")
	}
}

func TestMemoryCache_Set_WithZeroTTL(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	got, err := cache.Get(ctx, "key")
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get returned %s, want value", string(got))
	}
}

func TestMemoryCache_ValueIsCopied(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	value := []byte("original")
	_ = cache.Set(ctx, "key", value, time.Hour)
	value[0] = 'X'

	got, _ := cache.Get(ctx, "key")
	if string(got) != "original" {
		t.Errorf("cached value changed through caller slice: %s", got)
	}

	got[0] = 'Y'
	again, _ := cache.Get(ctx, "key")
	if string(again) != "original" {
		t.Errorf("cached value changed through returned slice: %s", again)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_ = cache.Set(ctx, "key", []byte("value"), time.Hour)
	if err := cache.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete returned error: %v", err)
	}
	if _, err := cache.Get(ctx, "key"); err == nil {
		t.Error("Get should fail after Delete")
	}
	if err := cache.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of missing key returned error: %v", err)
	}
}

func TestMemoryCache_StatsCountExpiredUntilClear(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_ = cache.Set(ctx, "short", []byte("1"), 10*time.Millisecond)
	_ = cache.Set(ctx, "long", []byte("2"), time.Hour)

	time.Sleep(20 * time.Millisecond)

	stats, err := cache.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, want 2 (expired entries are not swept)", stats.TotalEntries)
	}
	if stats.ValidEntries != 1 {
		t.Errorf("ValidEntries = %d, want 1", stats.ValidEntries)
	}

	// reading the expired key must not change the raw count either
	_, _ = cache.Get(ctx, "short")
	stats, _ = cache.Stats(ctx)
	if stats.TotalEntries != 2 {
		t.Errorf("TotalEntries after read = %d, want 2", stats.TotalEntries)
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	stats, _ = cache.Stats(ctx)
	if stats.TotalEntries != 0 || stats.ValidEntries != 0 {
		t.Errorf("Stats after Clear = %+v, want zero", stats)
	}
}

func TestMemoryCache_ContextCancelled(t *testing.T) {
	cache := NewMemoryCache()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cache.Set(ctx, "key", []byte("v"), time.Hour); err == nil {
		t.Error("Set should fail with cancelled context")
	}
	if _, err := cache.Get(ctx, "key"); err == nil {
		t.Error("Get should fail with cancelled context")
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "key"
			if i%2 == 0 {
				_ = cache.Set(ctx, key, []byte("v"), time.Hour)
			} else {
				_, _ = cache.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	stats, _ := cache.Stats(ctx)
	if stats.TotalEntries != 1 {
		t.Errorf("TotalEntries = %d, want 1", stats.TotalEntries)
	}
}
