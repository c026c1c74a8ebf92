package media

import (
	"context"
	"sync"

	"feedmedia/core/domain"
)

// mockAccessor is a mock implementation of the Accessor interface
type mockAccessor struct {
	mu     sync.Mutex
	feeds  map[string]domain.FeedResult
	probes map[string]domain.AccessResult
	calls  []string
}

func (m *mockAccessor) DownloadFeed(ctx context.Context, url string, useCache bool) domain.FeedResult {
	m.record(url)
	if r, ok := m.feeds[url]; ok {
		return r
	}
	return domain.FeedResult{Error: "HTTP 404"}
}

func (m *mockAccessor) CheckAccessibility(ctx context.Context, url string, useCache bool) domain.AccessResult {
	m.record(url)
	if r, ok := m.probes[url]; ok {
		return r
	}
	return domain.AccessResult{Error: "HTTP 404"}
}

func (m *mockAccessor) record(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, url)
}
