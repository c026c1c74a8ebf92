// ABOUTME: Standard HTTP client implementation with retry policy and per-call timeouts
// ABOUTME: Retries transient failures with exponential backoff for idempotent methods only

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "feedmedia/core/errors"
	"feedmedia/core/interfaces"
)

const defaultUserAgent = "feedmedia/1.0"

// StandardHTTPClient implements the HTTPClient interface using net/http
type StandardHTTPClient struct {
	client    *http.Client
	policy    RetryPolicy
	userAgent string
	headers   map[string]string
}

// Option configures a StandardHTTPClient
type Option func(*StandardHTTPClient)

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *StandardHTTPClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHeaders adds headers sent with every request
func WithHeaders(headers map[string]string) Option {
	return func(c *StandardHTTPClient) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithTransport replaces the underlying round tripper
func WithTransport(rt http.RoundTripper) Option {
	return func(c *StandardHTTPClient) {
		c.client.Transport = rt
	}
}

// NewStandardHTTPClient creates a client that applies policy to every request.
// Timeouts are supplied per call, so the underlying http.Client has none.
func NewStandardHTTPClient(policy RetryPolicy, opts ...Option) *StandardHTTPClient {
	c := &StandardHTTPClient{
		client:    &http.Client{},
		policy:    policy,
		userAgent: defaultUserAgent,
		headers:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the client's retry policy
func (c *StandardHTTPClient) Policy() RetryPolicy {
	return c.policy
}

// Head performs an HTTP HEAD request, following redirects
func (c *StandardHTTPClient) Head(ctx context.Context, url string, timeout time.Duration) (interfaces.Response, error) {
	return c.Do(ctx, http.MethodHead, url, timeout)
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string, timeout time.Duration) (interfaces.Response, error) {
	return c.Do(ctx, http.MethodGet, url, timeout)
}

// Do performs a request with the retry policy. Each attempt gets its own
// timeout. A response with a retryable status is returned as is once the
// attempts run out, so callers can report the status. Transport failures
// that outlast the attempts are returned as *errors.TransportError.
func (c *StandardHTTPClient) Do(ctx context.Context, method, rawURL string, timeout time.Duration) (interfaces.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &apperrors.ValidationError{Field: "url", Message: fmt.Sprintf("not an http(s) URL: %q", rawURL)}
	}

	attempts := c.policy.AttemptsFor(method)
	for attempt := 1; ; attempt++ {
		resp, err := c.once(ctx, method, rawURL, timeout)
		if err == nil && !c.policy.RetriesStatus(resp.StatusCode()) {
			return resp, nil
		}

		if attempt >= attempts || ctx.Err() != nil {
			if err != nil {
				return nil, err
			}
			return resp, nil
		}

		if resp != nil {
			// Drain so the connection can be reused
			_, _ = io.Copy(io.Discard, resp.Body())
			resp.Body().Close()
		}

		select {
		case <-time.After(c.policy.Backoff(attempt)):
		case <-ctx.Done():
			return nil, &apperrors.TransportError{URL: rawURL, Err: ctx.Err()}
		}
	}
}

func (c *StandardHTTPClient) once(ctx context.Context, method, rawURL string, timeout time.Duration) (*httpResponse, error) {
	var attemptCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		attemptCtx, cancel = context.WithCancel(ctx)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, rawURL, nil)
	if err != nil {
		cancel()
		return nil, &apperrors.TransportError{URL: rawURL, Err: err}
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		cancel()
		return nil, &apperrors.TransportError{URL: rawURL, Err: err}
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       &cancelOnClose{ReadCloser: resp.Body, cancel: cancel},
		headers:    resp.Header,
	}, nil
}

// cancelOnClose releases the attempt's timeout when the body is closed
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
