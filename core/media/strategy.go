package media

import (
	"context"

	"feedmedia/core/domain"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Analyze probes every descriptor and picks how it should be delivered.
// Results keep the input order.
func (p *Pipeline) Analyze(ctx context.Context, media []domain.MediaDescriptor) []domain.AnalyzedMedia {
	analyzed := make([]domain.AnalyzedMedia, len(media))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrentFeeds)

	for i, m := range media {
		i, m := i, m
		g.Go(func() error {
			probe := p.access.CheckAccessibility(gctx, m.URL, true)
			analyzed[i] = domain.AnalyzedMedia{
				Descriptor: m,
				Accessible: probe.Accessible,
				SizeMB:     probe.SizeMB,
				Error:      probe.Error,
				Strategy:   p.strategyFor(probe),
			}
			return nil
		})
	}

	_ = g.Wait()
	return analyzed
}

func (p *Pipeline) strategyFor(probe domain.AccessResult) domain.SendStrategy {
	switch {
	case !probe.Accessible:
		return domain.StrategyTextFallback
	case probe.SizeMB > p.largeFileThresholdMB:
		return domain.StrategyDownloadUpload
	default:
		return domain.StrategyURLDirect
	}
}

// Batch splits media into groups of at most MaxMediaPerBatch
func (p *Pipeline) Batch(media []domain.AnalyzedMedia) [][]domain.AnalyzedMedia {
	if len(media) == 0 {
		return nil
	}
	return lo.Chunk(media, p.maxMediaPerBatch)
}
