// ABOUTME: Feed service handles RSS/Atom feed parsing into items with their media
// ABOUTME: Provides new-entry detection between two fetches of the same feed

package feed

import (
	"context"
	"errors"
	"strings"

	"feedmedia/core/domain"
	apperrors "feedmedia/core/errors"
	"feedmedia/core/interfaces"
	"feedmedia/core/markup"
	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
)

// Downloader fetches a feed body as text
type Downloader interface {
	DownloadFeed(ctx context.Context, url string, useCache bool) domain.FeedResult
}

// FeedService parses whole feeds
type FeedService struct {
	access Downloader
	parser *markup.Parser
	logger interfaces.Logger
}

// NewFeedService creates a new feed service instance
func NewFeedService(access Downloader, parser *markup.Parser, logger interfaces.Logger) *FeedService {
	return &FeedService{
		access: access,
		parser: parser,
		logger: logger,
	}
}

// Fetch downloads and parses the feed at url
func (s *FeedService) Fetch(ctx context.Context, url string) ([]domain.FeedItem, error) {
	if url == "" {
		return nil, &apperrors.ValidationError{Field: "url", Message: "feed URL cannot be empty"}
	}

	result := s.access.DownloadFeed(ctx, url, false)
	if !result.OK {
		return nil, apperrors.WrapError(errors.New(result.Error), "failed to download feed")
	}

	items, err := s.Parse(result.Body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Parsed feed", map[string]interface{}{
		"url":   url,
		"items": len(items),
	})
	return items, nil
}

// Parse converts a feed document into items. Media is extracted from each
// item's content, or from its description when the content has none.
func (s *FeedService) Parse(body string) ([]domain.FeedItem, error) {
	if strings.TrimSpace(body) == "" {
		return nil, &apperrors.ParseError{Parser: "feed", Err: errors.New("empty feed content")}
	}

	parsed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, &apperrors.ParseError{Parser: "feed", Err: err}
	}

	format := domain.FormatRSS
	if parsed.FeedType == "atom" {
		format = domain.FormatAtom
	}

	items := make([]domain.FeedItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		items = append(items, domain.FeedItem{
			Entry: convertEntry(item, format),
			Media: s.itemMedia(item),
		})
	}
	return items, nil
}

func convertEntry(item *gofeed.Item, format domain.FeedFormat) domain.FeedEntry {
	entry := domain.NewFeedEntry(format)

	if title := strings.TrimSpace(item.Title); title != "" {
		entry.Title = title
	}

	entry.Link = strings.TrimSpace(item.Link)
	entry.ID = strings.TrimSpace(item.GUID)

	if item.Content != "" {
		entry.Description = item.Content
		entry.Summary = item.Description
	} else {
		entry.Description = item.Description
	}

	entry.Published = item.Published
	if entry.Published == "" {
		entry.Published = item.Updated
	}

	// iTunes author takes precedence, as podcast feeds often leave author empty
	if item.ITunesExt != nil && item.ITunesExt.Author != "" {
		entry.Author = item.ITunesExt.Author
	} else if item.Author != nil {
		entry.Author = item.Author.Name
	}

	return entry
}

func (s *FeedService) itemMedia(item *gofeed.Item) []domain.MediaDescriptor {
	media := s.parser.ExtractMedia(item.Content)
	if len(media) == 0 {
		media = s.parser.ExtractMedia(item.Description)
	}

	seen := lo.SliceToMap(media, func(m domain.MediaDescriptor) (string, struct{}) {
		return m.URL, struct{}{}
	})

	for _, enc := range item.Enclosures {
		if _, ok := seen[enc.URL]; ok {
			continue
		}

		var (
			d   domain.MediaDescriptor
			err error
		)
		switch {
		case strings.HasPrefix(enc.Type, "image/"):
			d, err = domain.NewImage(enc.URL)
		case strings.HasPrefix(enc.Type, "video/"):
			d, err = domain.NewVideo(enc.URL, "")
		default:
			continue
		}
		if err == nil {
			media = append(media, d)
			seen[enc.URL] = struct{}{}
		}
	}

	return media
}

// NewEntries returns the items of current whose key does not appear in
// previous, in their current order.
func NewEntries(current, previous []domain.FeedItem) []domain.FeedItem {
	seen := lo.SliceToMap(previous, func(item domain.FeedItem) (string, struct{}) {
		return item.Key(), struct{}{}
	})

	return lo.Filter(current, func(item domain.FeedItem, _ int) bool {
		_, ok := seen[item.Key()]
		return !ok
	})
}
