package feed

import (
	"context"

	"feedmedia/core/domain"
)

// mockDownloader is a mock implementation of the Downloader interface
type mockDownloader struct {
	downloadFunc func(ctx context.Context, url string, useCache bool) domain.FeedResult
}

func (m *mockDownloader) DownloadFeed(ctx context.Context, url string, useCache bool) domain.FeedResult {
	if m.downloadFunc != nil {
		return m.downloadFunc(ctx, url, useCache)
	}
	return domain.FeedResult{Error: "HTTP 404"}
}
