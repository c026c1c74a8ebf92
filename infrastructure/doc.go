// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// - cache/memory: in-process cache backed by go-cache
// - cache/redis: Redis cache with a key prefix per deployment
// - cache/sqlite: single-file cache that survives restarts
// - http/standard: net/http client with the retry policy
// - logger/structured: logrus-backed structured logger
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 5*time.Minute)
//	value, err := cache.Get(ctx, "key")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address:   "localhost:6379",
//	    KeyPrefix: "feedmedia:",
//	})
//
//	cache, err := sqlite.NewSQLiteCache("feedmedia-cache.db", logger)
//
// # HTTP Client
//
// Retryable statuses and transport failures are retried with exponential
// backoff for HEAD, GET and OPTIONS:
//
//	policy := standard.NewRetryPolicy(3, 1.5, time.Second)
//	client := standard.NewStandardHTTPClient(policy, standard.WithUserAgent(ua))
//	resp, err := client.Get(ctx, "https://example.com/feed.xml", 30*time.Second)
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "info", Format: "json"})
//	logger.Info("Extracted media", map[string]interface{}{
//	    "url":   url,
//	    "count": 3,
//	})
package infrastructure
