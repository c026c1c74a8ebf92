package markup

import (
	"strings"

	"feedmedia/core/domain"
	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

// ExtractMedia returns the images and videos referenced by htmlContent:
// every image in document order, then every video in document order.
// Unparseable content yields an empty list.
func (p *Parser) ExtractMedia(htmlContent string) []domain.MediaDescriptor {
	media := []domain.MediaDescriptor{}

	doc := p.ParseHTML(htmlContent)
	if doc == nil {
		return media
	}

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if p.isDecorative(src) {
			p.logger.Debug("Skipping decorative image", map[string]interface{}{
				"url": src,
			})
			return
		}
		if img, err := domain.NewImage(src); err == nil {
			media = append(media, img)
		}
	})

	doc.Find("video[src]").Each(func(_ int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		poster := strings.TrimSpace(s.AttrOr("poster", ""))
		if video, err := domain.NewVideo(src, poster); err == nil {
			media = append(media, video)
		}
	})

	return media
}

func (p *Parser) isDecorative(url string) bool {
	lower := strings.ToLower(url)
	return lo.SomeBy(p.decorativeKeywords, func(k string) bool {
		return strings.Contains(lower, k)
	})
}
