package domain

// FeedFormat is the syndication format of an entry fragment
type FeedFormat string

const (
	FormatRSS  FeedFormat = "RSS"
	FormatAtom FeedFormat = "Atom"
)

// NoTitle is the title reported for entries without a title element
const NoTitle = "no title"

// FeedEntry holds the metadata pulled out of a single RSS item or Atom entry.
// It is used by inspection paths and never persisted.
type FeedEntry struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Summary     string     `json:"summary"`
	Link        string     `json:"link"`
	Published   string     `json:"published"`
	Author      string     `json:"author"`
	ID          string     `json:"id"`
	Format      FeedFormat `json:"format"`
}

// NewFeedEntry returns an entry with every field at its default
func NewFeedEntry(format FeedFormat) FeedEntry {
	return FeedEntry{Title: NoTitle, Format: format}
}

// FeedItem is a parsed feed item with the media referenced by its content
type FeedItem struct {
	Entry FeedEntry         `json:"entry"`
	Media []MediaDescriptor `json:"media"`
}

// Key identifies an item across two fetches of the same feed: the ID, then
// the link, then the title.
func (i FeedItem) Key() string {
	switch {
	case i.Entry.ID != "":
		return i.Entry.ID
	case i.Entry.Link != "":
		return i.Entry.Link
	default:
		return i.Entry.Title
	}
}
