// ABOUTME: Markup parser for HTML pages and RSS/Atom entry fragments
// ABOUTME: Lenient HTML parsing plus a strict-then-lenient fragment parser chain

package markup

import (
	"strings"

	"feedmedia/core/interfaces"
	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

// DefaultDecorativeKeywords mark image URLs that are UI chrome, not content
var DefaultDecorativeKeywords = []string{"icon", "logo", "avatar", "emoji", "button"}

// Parser extracts media and entry metadata from markup. It holds only its
// configuration and is safe for concurrent use.
type Parser struct {
	logger             interfaces.Logger
	decorativeKeywords []string
}

// NewParser creates a parser. A nil or empty keyword list selects
// DefaultDecorativeKeywords.
func NewParser(logger interfaces.Logger, decorativeKeywords []string) *Parser {
	if len(decorativeKeywords) == 0 {
		decorativeKeywords = DefaultDecorativeKeywords
	}

	keywords := lo.Uniq(lo.FilterMap(decorativeKeywords, func(k string, _ int) (string, bool) {
		k = strings.ToLower(strings.TrimSpace(k))
		return k, k != ""
	}))

	return &Parser{
		logger:             logger,
		decorativeKeywords: keywords,
	}
}

// DecorativeKeywords returns the normalised keyword list
func (p *Parser) DecorativeKeywords() []string {
	return append([]string(nil), p.decorativeKeywords...)
}

// ParseHTML parses content leniently. It returns nil on empty input or when
// the parser fails; the failure is logged, never retried.
func (p *Parser) ParseHTML(content string) *goquery.Document {
	if strings.TrimSpace(content) == "" {
		p.logger.Debug("Skipping empty HTML content", nil)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		p.logger.Warn("Failed to parse HTML", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return doc
}

// ParseXMLFragment parses an RSS item or Atom entry. Strict XML is tried
// first and lenient HTML second; nil means every parser rejected it.
func (p *Parser) ParseXMLFragment(content string) Tree {
	for _, strategy := range fragmentStrategies {
		tree, err := strategy.parse(content)
		if err == nil {
			return tree
		}
		p.logger.Debug("Fragment parser failed, trying next", map[string]interface{}{
			"parser": strategy.name,
			"error":  err.Error(),
		})
	}

	p.logger.Warn("No parser accepted fragment", map[string]interface{}{
		"length": len(content),
	})
	return nil
}
