package access

import (
	"context"
	"io"
	"strings"
	"time"

	"feedmedia/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	headFunc func(ctx context.Context, url string, timeout time.Duration) (interfaces.Response, error)
	getFunc  func(ctx context.Context, url string, timeout time.Duration) (interfaces.Response, error)
}

func (m *mockHTTPClient) Head(ctx context.Context, url string, timeout time.Duration) (interfaces.Response, error) {
	if m.headFunc != nil {
		return m.headFunc(ctx, url, timeout)
	}
	return &mockResponse{statusCode: 200}, nil
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, timeout time.Duration) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url, timeout)
	}
	return &mockResponse{statusCode: 200}, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// mockCache is a cache whose every call fails
type mockCache struct {
	err error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, m.err
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.err
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.err
}

func (m *mockCache) Clear(ctx context.Context) error {
	return m.err
}

func (m *mockCache) Stats(ctx context.Context) (interfaces.CacheStats, error) {
	return interfaces.CacheStats{}, m.err
}
