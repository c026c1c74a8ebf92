// ABOUTME: Media extraction pipeline composing the access layer and markup parser
// ABOUTME: Fetches feeds, extracts media, probes it and groups it for delivery

package media

import (
	"context"
	"sync"

	"feedmedia/core/domain"
	"feedmedia/core/interfaces"
	"feedmedia/core/markup"
	"feedmedia/pkg/config"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Accessor is the part of the access layer the pipeline uses
type Accessor interface {
	DownloadFeed(ctx context.Context, url string, useCache bool) domain.FeedResult
	CheckAccessibility(ctx context.Context, url string, useCache bool) domain.AccessResult
}

// Pipeline turns feed URLs into media descriptor lists
type Pipeline struct {
	access               Accessor
	parser               *markup.Parser
	logger               interfaces.Logger
	maxConcurrentFeeds   int
	maxMediaPerBatch     int
	largeFileThresholdMB float64
}

// NewPipeline creates a pipeline
func NewPipeline(access Accessor, parser *markup.Parser, logger interfaces.Logger, cfg config.MediaConfig) *Pipeline {
	p := &Pipeline{
		access:               access,
		parser:               parser,
		logger:               logger,
		maxConcurrentFeeds:   cfg.MaxConcurrentFeeds,
		maxMediaPerBatch:     cfg.MaxMediaPerBatch,
		largeFileThresholdMB: cfg.LargeFileThresholdMB,
	}
	if p.maxConcurrentFeeds < 1 {
		p.maxConcurrentFeeds = 1
	}
	if p.maxMediaPerBatch < 1 {
		p.maxMediaPerBatch = 1
	}
	return p
}

// FetchAndExtractMedia downloads url and extracts its media. A failed
// download is logged and yields an empty list, same as a page with no media.
func (p *Pipeline) FetchAndExtractMedia(ctx context.Context, url string) []domain.MediaDescriptor {
	result := p.access.DownloadFeed(ctx, url, false)
	if !result.OK {
		p.logger.Warn("Feed fetch failed, no media extracted", map[string]interface{}{
			"url":   url,
			"error": result.Error,
		})
		return []domain.MediaDescriptor{}
	}

	media := p.parser.ExtractMedia(result.Body)
	p.logger.Info("Extracted media", map[string]interface{}{
		"url":   url,
		"count": len(media),
	})
	return media
}

// FetchAll runs FetchAndExtractMedia for each distinct url with at most
// MaxConcurrentFeeds in flight.
func (p *Pipeline) FetchAll(ctx context.Context, urls []string) map[string][]domain.MediaDescriptor {
	var (
		mu      sync.Mutex
		results = make(map[string][]domain.MediaDescriptor, len(urls))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrentFeeds)

	for _, url := range lo.Uniq(urls) {
		url := url
		g.Go(func() error {
			media := p.FetchAndExtractMedia(gctx, url)
			mu.Lock()
			results[url] = media
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return results
}
