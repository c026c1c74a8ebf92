// ABOUTME: Wires configuration, logger, cache backend, transport and services together
// ABOUTME: Shared by every CLI command and the API server

package main

import (
	"io"
	"net/http"

	"feedmedia/api/middleware"
	"feedmedia/core/access"
	"feedmedia/core/feed"
	"feedmedia/core/interfaces"
	"feedmedia/core/markup"
	"feedmedia/core/media"
	"feedmedia/infrastructure/cache/memory"
	"feedmedia/infrastructure/cache/redis"
	"feedmedia/infrastructure/cache/sqlite"
	"feedmedia/infrastructure/http/standard"
	"feedmedia/infrastructure/logger/structured"
	"feedmedia/pkg/config"
)

// app holds the constructed services for one process
type app struct {
	cfg      *config.Config
	logger   *structured.Logger
	cache    interfaces.Cache
	access   *access.Service
	parser   *markup.Parser
	pipeline *media.Pipeline
	feeds    *feed.FeedService
	closer   io.Closer
}

func newApp(cfg *config.Config, logger *structured.Logger, verbose bool) *app {
	cache, closer := newCache(cfg.Cache, logger)

	opts := []standard.Option{
		standard.WithUserAgent(cfg.Access.UserAgent),
		standard.WithHeaders(cfg.Access.Headers),
	}
	if verbose {
		opts = append(opts, standard.WithTransport(&middleware.LoggingRoundTripper{
			Transport: http.DefaultTransport,
			Logger:    logger,
		}))
	}
	policy := standard.NewRetryPolicy(cfg.Access.MaxAttempts, cfg.Access.BackoffFactor, cfg.Access.BackoffUnit)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: standard.NewStandardHTTPClient(policy, opts...),
		Logger:     logger,
	}

	accessSvc := access.NewService(deps, cfg)
	parser := markup.NewParser(logger, cfg.Media.DecorativeKeywords)

	return &app{
		cfg:      cfg,
		logger:   logger,
		cache:    cache,
		access:   accessSvc,
		parser:   parser,
		pipeline: media.NewPipeline(accessSvc, parser, logger, cfg.Media),
		feeds:    feed.NewFeedService(accessSvc, parser, logger),
		closer:   closer,
	}
}

// Close releases the cache backend
func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// newCache selects the configured backend and falls back to memory when it
// cannot be opened
func newCache(cfg config.CacheConfig, logger interfaces.Logger) (interfaces.Cache, io.Closer) {
	switch cfg.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		logger.Debug("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return redisCache, redisCache

	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.SQLite.Path, logger)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		logger.Debug("Using SQLite cache", map[string]interface{}{
			"path": sqliteCache.FilePath(),
		})
		return sqliteCache, sqliteCache
	}

	logger.Debug("Using memory cache", nil)
	return memory.NewMemoryCache(), nil
}
