package markup

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const htmlParserName = "html"

// htmlTree is a lenient parse backed by goquery. Tag names come out
// lowercased, so camel-cased feed elements such as pubDate are matched
// case-insensitively.
type htmlTree struct {
	doc *goquery.Document
}

func parseHTMLTree(content string) (Tree, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("empty document")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, err
	}
	return &htmlTree{doc: doc}, nil
}

func (t *htmlTree) Find(name string) Element {
	return findHTML(t.doc.Selection, name)
}

func (t *htmlTree) Parser() string {
	return htmlParserName
}

func findHTML(sel *goquery.Selection, name string) Element {
	found := sel.Find(name).First()
	if found.Length() == 0 {
		return nil
	}
	return &htmlElement{sel: found}
}

// htmlElement adapts a single-node goquery selection
type htmlElement struct {
	sel *goquery.Selection
}

func (e *htmlElement) Find(name string) Element {
	return findHTML(e.sel, name)
}

// Text returns the element's text. HTML treats link as a void element, so
// an RSS <link>url</link> leaves the address in the following text node.
func (e *htmlElement) Text() string {
	text := strings.TrimSpace(e.sel.Text())
	if text != "" || goquery.NodeName(e.sel) != "link" {
		return text
	}

	next := e.sel.Get(0).NextSibling
	if next != nil && next.Type == html.TextNode {
		return strings.TrimSpace(next.Data)
	}
	return ""
}

func (e *htmlElement) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *htmlElement) InnerMarkup() string {
	inner, err := e.sel.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(inner)
}

func (e *htmlElement) HasChildElements() bool {
	return e.sel.Children().Length() > 0
}
