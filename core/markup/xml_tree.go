package markup

import (
	"errors"
	"strings"

	"github.com/antchfx/xmlquery"
)

const xmlParserName = "xml"

// xmlTree is a strict XML parse backed by xmlquery
type xmlTree struct {
	root *xmlquery.Node
}

func parseXMLTree(content string) (Tree, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("empty document")
	}

	doc, err := xmlquery.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return &xmlTree{root: doc}, nil
		}
	}
	return nil, errors.New("no root element")
}

func (t *xmlTree) Find(name string) Element {
	return findXML(t.root, name)
}

func (t *xmlTree) Parser() string {
	return xmlParserName
}

// findXML walks descendants depth-first. Only unprefixed names match, so
// media:content or content:encoded never shadow an Atom content element.
func findXML(n *xmlquery.Node, name string) Element {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if c.Data == name && c.Prefix == "" {
			return &xmlElement{node: c}
		}
		if found := findXML(c, name); found != nil {
			return found
		}
	}
	return nil
}

// xmlElement adapts an xmlquery element node
type xmlElement struct {
	node *xmlquery.Node
}

func (e *xmlElement) Find(name string) Element {
	return findXML(e.node, name)
}

func (e *xmlElement) Text() string {
	return strings.TrimSpace(e.node.InnerText())
}

func (e *xmlElement) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value, true
		}
	}
	return "", false
}

func (e *xmlElement) InnerMarkup() string {
	return strings.TrimSpace(e.node.OutputXML(false))
}

func (e *xmlElement) HasChildElements() bool {
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}
