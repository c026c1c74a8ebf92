package interfaces

import (
	"context"
	"io"
	"time"
)

// HTTPClient issues idempotent requests with a per-call timeout.
// Implementations own the retry policy; callers only see the final outcome.
type HTTPClient interface {
	// Head performs a HEAD request, following redirects.
	Head(ctx context.Context, url string, timeout time.Duration) (Response, error)

	// Get performs a GET request. The timeout covers reading the body too,
	// so callers must finish with the body before the deadline.
	Get(ctx context.Context, url string, timeout time.Duration) (Response, error)
}

// Response is the subset of an HTTP response the core needs.
type Response interface {
	// StatusCode returns the HTTP status code of the final attempt.
	StatusCode() int

	// Body returns the response body. The caller must close it; closing it
	// also releases the per-call timeout.
	Body() io.ReadCloser

	// Header returns the value of the named header, or "" when absent.
	Header(key string) string
}
