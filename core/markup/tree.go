package markup

// Element is a node of a parsed fragment. Implementations wrap the XML and
// HTML parser libraries so entry extraction does not care which one won.
type Element interface {
	// Find returns the first descendant named name in document order, or nil.
	Find(name string) Element

	// Text returns the trimmed text content, descendants included.
	Text() string

	// Attr returns the named attribute and whether it is present.
	Attr(name string) (string, bool)

	// InnerMarkup serialises the element's children, tags included.
	InnerMarkup() string

	// HasChildElements reports whether the element contains markup rather
	// than only text.
	HasChildElements() bool
}

// Tree is a parsed fragment
type Tree interface {
	// Find returns the first element named name in document order, or nil.
	Find(name string) Element

	// Parser names the strategy that produced the tree
	Parser() string
}

// fragmentStrategy is one parser in the fragment fallback chain
type fragmentStrategy struct {
	name  string
	parse func(content string) (Tree, error)
}

// fragmentStrategies are tried in order; the first success wins. Feed
// fragments are frequently not well-formed XML, so the lenient HTML parser
// comes second.
var fragmentStrategies = []fragmentStrategy{
	{name: xmlParserName, parse: parseXMLTree},
	{name: htmlParserName, parse: parseHTMLTree},
}
