package handlers

import (
	"context"

	"feedmedia/core/domain"
)

type mockAccess struct {
	lastURL   string
	lastCache bool
	result    domain.AccessResult
	stats     domain.CacheStats
	clearErr  error
	cleared   bool
}

func (m *mockAccess) CheckAccessibility(ctx context.Context, url string, useCache bool) domain.AccessResult {
	m.lastURL = url
	m.lastCache = useCache
	return m.result
}

func (m *mockAccess) ClearCache(ctx context.Context) error {
	m.cleared = true
	return m.clearErr
}

func (m *mockAccess) CacheStats(ctx context.Context) domain.CacheStats {
	return m.stats
}

type mockMedia struct {
	media []domain.MediaDescriptor
}

func (m *mockMedia) FetchAndExtractMedia(ctx context.Context, url string) []domain.MediaDescriptor {
	return m.media
}

type mockFeeds struct {
	items []domain.FeedItem
	err   error
}

func (m *mockFeeds) Fetch(ctx context.Context, url string) ([]domain.FeedItem, error) {
	return m.items, m.err
}

// mockLogger discards everything
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (mockLogger) Info(msg string, fields map[string]interface{})  {}
func (mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (mockLogger) Error(msg string, fields map[string]interface{}) {}
