package markup

import (
	"strings"
	"testing"

	"feedmedia/core/domain"
)

func TestExtractEntry_AtomScenario(t *testing.T) {
	p := newTestParser()

	got := p.ExtractEntry(`<entry><title>T</title><link href="https://x.com"/><author><name>A</name></author></entry>`)
	if got == nil {
		t.Fatal("ExtractEntry returned nil")
	}

	want := domain.FeedEntry{Title: "T", Link: "https://x.com", Author: "A", Format: domain.FormatAtom}
	if *got != want {
		t.Errorf("ExtractEntry = %+v, want %+v", *got, want)
	}
}

func TestExtractEntry_RSSItem(t *testing.T) {
	p := newTestParser()
	fragment := `
		<item>
			<title>  Hello world  </title>
			<link>https://x.com/post</link>
			<description>Plain text</description>
			<pubDate>Mon, 06 Jan 2025 10:00:00 GMT</pubDate>
			<author>jane@x.com (Jane)</author>
			<guid>post-1</guid>
		</item>`

	got := p.ExtractEntry(fragment)
	if got == nil {
		t.Fatal("ExtractEntry returned nil")
	}

	want := domain.FeedEntry{
		Title:       "Hello world",
		Description: "Plain text",
		Link:        "https://x.com/post",
		Published:   "Mon, 06 Jan 2025 10:00:00 GMT",
		Author:      "jane@x.com (Jane)",
		ID:          "post-1",
		Format:      domain.FormatRSS,
	}
	if *got != want {
		t.Errorf("ExtractEntry = %+v, want %+v", *got, want)
	}
}

func TestExtractEntry_Defaults(t *testing.T) {
	p := newTestParser()

	got := p.ExtractEntry(`<item><guid>1</guid></item>`)
	if got == nil {
		t.Fatal("ExtractEntry returned nil")
	}
	if got.Title != domain.NoTitle {
		t.Errorf("Title = %q, want %q", got.Title, domain.NoTitle)
	}
	if got.Link != "" || got.Description != "" || got.Published != "" || got.Author != "" {
		t.Errorf("expected empty defaults, got %+v", *got)
	}
}

func TestExtractEntry_ContentPreferredOverDescription(t *testing.T) {
	p := newTestParser()

	got := p.ExtractEntry(`<entry><description>short</description><content>long</content></entry>`)
	if got == nil || got.Description != "long" {
		t.Errorf("Description = %+v, want content text", got)
	}
}

func TestExtractEntry_KeepsInnerMarkup(t *testing.T) {
	p := newTestParser()
	fragment := `<entry><title>T</title><content type="xhtml"><div><img src="https://x.com/a.jpg"/><p>text</p></div></content></entry>`

	got := p.ExtractEntry(fragment)
	if got == nil {
		t.Fatal("ExtractEntry returned nil")
	}
	if !strings.Contains(got.Description, `<img src="https://x.com/a.jpg"`) {
		t.Errorf("Description lost markup: %q", got.Description)
	}

	media := p.ExtractMedia(got.Description)
	if len(media) != 1 || media[0].URL != "https://x.com/a.jpg" {
		t.Errorf("media from description = %+v", media)
	}
}

func TestExtractEntry_CDATADescription(t *testing.T) {
	p := newTestParser()
	fragment := `<item><title>T</title><description><![CDATA[<p>Hi <img src="https://x.com/b.jpg"></p>]]></description></item>`

	got := p.ExtractEntry(fragment)
	if got == nil {
		t.Fatal("ExtractEntry returned nil")
	}
	if got.Description != `<p>Hi <img src="https://x.com/b.jpg"></p>` {
		t.Errorf("Description = %q", got.Description)
	}
}

func TestExtractEntry_PublishedFallbacks(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{"pubDate", `<item><pubDate>A</pubDate><updated>B</updated></item>`, "A"},
		{"lowercase pubdate", `<item><pubdate>A</pubdate></item>`, "A"},
		{"published before updated", `<entry><updated>B</updated><published>A</published></entry>`, "A"},
		{"updated only", `<entry><updated>B</updated></entry>`, "B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ExtractEntry(tt.fragment)
			if got == nil || got.Published != tt.want {
				t.Errorf("Published = %+v, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractEntry_IDBeforeGUID(t *testing.T) {
	p := newTestParser()

	got := p.ExtractEntry(`<item><guid>g</guid><id>i</id></item>`)
	if got == nil || got.ID != "i" {
		t.Errorf("ID = %+v, want i", got)
	}
}

func TestExtractEntry_HTMLFallback(t *testing.T) {
	p := newTestParser()
	// Bare ampersand and an unclosed img make this invalid XML
	fragment := `<item><title>Tom & Jerry</title><pubDate>Tue</pubDate><link>https://x.com/tj</link><description>Look <img src="https://x.com/c.jpg"></description></item>`

	if tree := p.ParseXMLFragment(fragment); tree == nil || tree.Parser() != htmlParserName {
		t.Fatalf("expected the html parser to accept the fragment, got %v", tree)
	}

	got := p.ExtractEntry(fragment)
	if got == nil {
		t.Fatal("ExtractEntry returned nil")
	}
	if got.Title != "Tom & Jerry" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Published != "Tue" {
		t.Errorf("Published = %q", got.Published)
	}
	if got.Link != "https://x.com/tj" {
		t.Errorf("Link = %q", got.Link)
	}
	if !strings.Contains(got.Description, "https://x.com/c.jpg") {
		t.Errorf("Description = %q", got.Description)
	}
}

func TestParseXMLFragment(t *testing.T) {
	p := newTestParser()

	if tree := p.ParseXMLFragment(`<entry><title>T</title></entry>`); tree == nil || tree.Parser() != xmlParserName {
		t.Errorf("well-formed fragment should parse as xml, got %v", tree)
	}
	if tree := p.ParseXMLFragment("   "); tree != nil {
		t.Errorf("empty fragment should not parse, got %v", tree)
	}
	if got := p.ExtractEntry(""); got != nil {
		t.Errorf("ExtractEntry(\"\") = %+v, want nil", got)
	}
}

func TestExtractEntry_NamespacedElementsIgnored(t *testing.T) {
	p := newTestParser()
	fragment := `<item xmlns:media="http://search.yahoo.com/mrss/"><media:content url="https://x.com/m.jpg">m</media:content><description>d</description></item>`

	got := p.ExtractEntry(fragment)
	if got == nil || got.Description != "d" {
		t.Errorf("Description = %+v, want d", got)
	}
}
