package markup

import (
	"strings"

	"feedmedia/core/domain"
)

// publishedElements are tried in order. The HTML fallback lowercases tag
// names, hence pubdate.
var publishedElements = []string{"pubDate", "pubdate", "published", "updated"}

// ExtractEntry reads the metadata of a single RSS item or Atom entry.
// It returns nil only when no parser accepts the fragment.
func (p *Parser) ExtractEntry(fragment string) *domain.FeedEntry {
	tree := p.ParseXMLFragment(fragment)
	if tree == nil {
		return nil
	}

	format := domain.FormatRSS
	if strings.HasPrefix(strings.TrimSpace(fragment), "<entry") {
		format = domain.FormatAtom
	}
	entry := domain.NewFeedEntry(format)

	if title := tree.Find("title"); title != nil {
		if text := title.Text(); text != "" {
			entry.Title = text
		}
	}

	body := tree.Find("content")
	if body == nil {
		body = tree.Find("description")
	}
	if body != nil {
		entry.Description = markupOrText(body)
	}

	if summary := tree.Find("summary"); summary != nil {
		entry.Summary = markupOrText(summary)
	}

	if link := tree.Find("link"); link != nil {
		if href, ok := link.Attr("href"); ok && strings.TrimSpace(href) != "" {
			entry.Link = strings.TrimSpace(href)
		} else {
			entry.Link = link.Text()
		}
	}

	for _, name := range publishedElements {
		if el := tree.Find(name); el != nil {
			entry.Published = el.Text()
			break
		}
	}

	if author := tree.Find("author"); author != nil {
		if name := author.Find("name"); name != nil {
			entry.Author = name.Text()
		} else {
			entry.Author = author.Text()
		}
	}

	if id := tree.Find("id"); id != nil {
		entry.ID = id.Text()
	} else if guid := tree.Find("guid"); guid != nil {
		entry.ID = guid.Text()
	}

	p.logger.Debug("Extracted entry", map[string]interface{}{
		"format": string(entry.Format),
		"parser": tree.Parser(),
		"title":  entry.Title,
	})
	return &entry
}

// markupOrText keeps embedded markup so inline media survive for ExtractMedia
func markupOrText(el Element) string {
	if el.HasChildElements() {
		return el.InnerMarkup()
	}
	return el.Text()
}
