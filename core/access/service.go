// ABOUTME: Access layer for remote feeds and media with response caching
// ABOUTME: Probes accessibility with HEAD, downloads feeds as text and streams binaries to disk

package access

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"feedmedia/core/domain"
	apperrors "feedmedia/core/errors"
	"feedmedia/core/interfaces"
	"feedmedia/pkg/config"
	"golang.org/x/sync/singleflight"
)

const (
	headKeyPrefix = "head_"
	feedKeyPrefix = "feed_"

	// chunkSize bounds the memory used while streaming a download
	chunkSize = 8 * 1024

	bytesPerMB = 1024 * 1024
)

// Service is the access layer. It owns its cache and client through the
// injected dependencies; construct one per process and share it.
type Service struct {
	deps              interfaces.Dependencies
	requestTimeout    time.Duration
	mediaCheckTimeout time.Duration
	ttl               time.Duration
	group             singleflight.Group
}

// NewService creates an access layer from dependencies and configuration
func NewService(deps interfaces.Dependencies, cfg *config.Config) *Service {
	return &Service{
		deps:              deps,
		requestTimeout:    cfg.Access.RequestTimeout,
		mediaCheckTimeout: cfg.Access.MediaCheckTimeout,
		ttl:               cfg.Cache.TTL,
	}
}

// TTL returns how long cached results stay valid
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// CheckAccessibility probes url with a HEAD request. Failures are cached
// as well as successes, so an exhausted retry is not repeated within the TTL.
func (s *Service) CheckAccessibility(ctx context.Context, url string, useCache bool) domain.AccessResult {
	if !useCache {
		return s.probe(ctx, url)
	}

	key := headKeyPrefix + url
	var cached domain.AccessResult
	if s.readCache(ctx, key, &cached) {
		return cached
	}

	v, err := s.shared(ctx, key, func(ctx context.Context) interface{} {
		result := s.probe(ctx, url)
		s.writeCache(ctx, key, result)
		return result
	})
	if err != nil {
		return domain.AccessResult{Error: failureMessage(&apperrors.TransportError{URL: url, Err: err})}
	}
	return v.(domain.AccessResult)
}

// shared runs fn once per key for all concurrent callers. fn runs detached
// from the caller's cancellation, bounded by the per-attempt timeouts, so
// one caller giving up never changes the result the others receive. Each
// caller stops waiting when its own ctx is done.
func (s *Service) shared(ctx context.Context, key string, fn func(context.Context) interface{}) (interface{}, error) {
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return fn(detached), nil
	})

	select {
	case res := <-ch:
		return res.Val, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Service) probe(ctx context.Context, url string) domain.AccessResult {
	resp, err := s.deps.HTTPClient.Head(ctx, url, s.mediaCheckTimeout)
	if err != nil {
		s.deps.Logger.Warn("Accessibility check failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return domain.AccessResult{Error: failureMessage(err)}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return domain.AccessResult{Error: statusMessage(resp.StatusCode())}
	}

	length, err := strconv.ParseInt(resp.Header("Content-Length"), 10, 64)
	if err != nil || length < 0 {
		return domain.AccessResult{Accessible: true, Error: domain.SizeUnknown}
	}

	return domain.AccessResult{Accessible: true, SizeMB: float64(length) / bytesPerMB}
}

// DownloadFeed fetches url and decodes the body to UTF-8 text using the
// declared or detected encoding. Only successful downloads are cached, and only when
// useCache is set.
func (s *Service) DownloadFeed(ctx context.Context, url string, useCache bool) domain.FeedResult {
	if !useCache {
		return s.fetch(ctx, url)
	}

	key := feedKeyPrefix + url
	var cached domain.FeedResult
	if s.readCache(ctx, key, &cached) {
		return cached
	}

	v, err := s.shared(ctx, key, func(ctx context.Context) interface{} {
		result := s.fetch(ctx, url)
		if result.OK {
			s.writeCache(ctx, key, result)
		}
		return result
	})
	if err != nil {
		return domain.FeedResult{Error: failureMessage(&apperrors.TransportError{URL: url, Err: err})}
	}
	return v.(domain.FeedResult)
}

func (s *Service) fetch(ctx context.Context, url string) domain.FeedResult {
	resp, err := s.deps.HTTPClient.Get(ctx, url, s.requestTimeout)
	if err != nil {
		s.deps.Logger.Warn("Feed download failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return domain.FeedResult{Error: failureMessage(err)}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return domain.FeedResult{Error: statusMessage(resp.StatusCode())}
	}

	data, err := io.ReadAll(resp.Body())
	if err != nil {
		return domain.FeedResult{Error: failureMessage(&apperrors.TransportError{URL: url, Err: err})}
	}

	contentType := resp.Header("Content-Type")
	text, encoding, err := decodeBody(data, contentType)
	if err != nil {
		s.deps.Logger.Warn("Unknown charset, reading body as is", map[string]interface{}{
			"url":          url,
			"content_type": contentType,
			"error":        err.Error(),
		})
	} else {
		s.deps.Logger.Debug("Decoded feed body", map[string]interface{}{
			"url":      url,
			"encoding": encoding,
			"bytes":    len(data),
		})
	}

	return domain.FeedResult{OK: true, Body: text}
}

// DownloadToFile streams url to dest in fixed-size chunks. The payload is
// written to a temporary file in dest's directory and renamed over dest
// only once complete; on failure the temporary file is removed and dest
// is left untouched.
func (s *Service) DownloadToFile(ctx context.Context, url, dest string) (bool, string) {
	resp, err := s.deps.HTTPClient.Get(ctx, url, s.requestTimeout)
	if err != nil {
		return false, failureMessage(err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return false, statusMessage(resp.StatusCode())
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return false, fmt.Sprintf("file error: %v", err)
	}
	tmpPath := tmp.Name()

	written, err := copyChunked(tmp, resp.Body())
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, dest)
	}
	if err != nil {
		os.Remove(tmpPath)
		s.deps.Logger.Warn("Download to file failed", map[string]interface{}{
			"url":   url,
			"dest":  dest,
			"error": err.Error(),
		})
		return false, fmt.Sprintf("download failed: %v", err)
	}

	s.deps.Logger.Debug("Downloaded file", map[string]interface{}{
		"url":   url,
		"dest":  dest,
		"bytes": written,
	})
	return true, ""
}

func copyChunked(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, chunkSize)
	var written int64
	for {
		n, err := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return written, werr
			}
		}
		if errors.Is(err, io.EOF) {
			return written, nil
		}
		if err != nil {
			return written, err
		}
	}
}

// ClearCache drops every cached result
func (s *Service) ClearCache(ctx context.Context) error {
	if err := s.deps.Cache.Clear(ctx); err != nil {
		return apperrors.WrapError(err, "failed to clear cache")
	}
	return nil
}

// CacheStats reports the raw and still-valid entry counts with the TTL
func (s *Service) CacheStats(ctx context.Context) domain.CacheStats {
	stats := domain.CacheStats{TTL: s.ttl}

	raw, err := s.deps.Cache.Stats(ctx)
	if err != nil {
		s.deps.Logger.Error("Failed to read cache stats", map[string]interface{}{
			"error": err.Error(),
		})
		return stats
	}

	stats.TotalEntries = raw.TotalEntries
	stats.ValidEntries = raw.ValidEntries
	return stats
}

func (s *Service) readCache(ctx context.Context, key string, v interface{}) bool {
	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			s.deps.Logger.Warn("Cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.deps.Logger.Warn("Discarding undecodable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	return true
}

func (s *Service) writeCache(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, data, s.ttl); err != nil {
		s.deps.Logger.Warn("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func statusMessage(code int) string {
	return (&apperrors.StatusError{StatusCode: code}).Error()
}

// failureMessage renders a client error as a result message
func failureMessage(err error) string {
	var transportErr *apperrors.TransportError
	if errors.As(err, &transportErr) {
		return fmt.Sprintf("network error: %v", transportErr.Err)
	}
	return err.Error()
}
