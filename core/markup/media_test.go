package markup

import (
	"reflect"
	"testing"

	"feedmedia/core/domain"
	"feedmedia/infrastructure/logger/structured"
)

func newTestParser() *Parser {
	return NewParser(structured.NewDiscard(), nil)
}

func TestExtractMedia_Scenario(t *testing.T) {
	p := newTestParser()
	html := `<img src="https://x.com/a.jpg"><img src="https://x.com/logo.png"><video src="https://x.com/v.mp4" poster="https://x.com/p.jpg">`

	got := p.ExtractMedia(html)

	want := []domain.MediaDescriptor{
		{URL: "https://x.com/a.jpg", Kind: domain.MediaImage},
		{URL: "https://x.com/v.mp4", Kind: domain.MediaVideo, Poster: "https://x.com/p.jpg"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractMedia = %+v, want %+v", got, want)
	}
}

func TestExtractMedia_ImagesBeforeVideos(t *testing.T) {
	p := newTestParser()
	html := `
		<video src="https://x.com/v1.mp4"></video>
		<p><img src="https://x.com/i1.jpg"></p>
		<video src="https://x.com/v2.mp4"></video>
		<img src="https://x.com/i2.jpg">`

	got := p.ExtractMedia(html)

	var urls []string
	for _, m := range got {
		urls = append(urls, m.URL)
	}
	want := []string{
		"https://x.com/i1.jpg",
		"https://x.com/i2.jpg",
		"https://x.com/v1.mp4",
		"https://x.com/v2.mp4",
	}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("order = %v, want %v", urls, want)
	}
}

func TestExtractMedia_SchemeFilter(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name string
		html string
		want int
	}{
		{"relative image", `<img src="/a.jpg">`, 0},
		{"data uri", `<img src="data:image/png;base64,AAAA">`, 0},
		{"protocol relative", `<img src="//x.com/a.jpg">`, 0},
		{"ftp video", `<video src="ftp://x.com/v.mp4"></video>`, 0},
		{"javascript", `<img src="javascript:alert(1)">`, 0},
		{"uppercase scheme", `<img src="HTTPS://x.com/a.jpg">`, 0},
		{"http image", `<img src="http://x.com/a.jpg">`, 1},
		{"padded address", `<img src="  https://x.com/a.jpg  ">`, 1},
		{"empty src", `<img src="">`, 0},
		{"missing src", `<img alt="x">`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ExtractMedia(tt.html); len(got) != tt.want {
				t.Errorf("ExtractMedia(%q) = %+v, want %d items", tt.html, got, tt.want)
			}
		})
	}
}

func TestExtractMedia_TrimsAddresses(t *testing.T) {
	p := newTestParser()

	got := p.ExtractMedia(`<img src="  https://x.com/a.jpg  ">`)

	if len(got) != 1 || got[0].URL != "https://x.com/a.jpg" {
		t.Errorf("ExtractMedia = %+v", got)
	}
}

func TestExtractMedia_DecorativeKeywords(t *testing.T) {
	p := newTestParser()

	for _, src := range []string{
		"https://x.com/favicon.ico",
		"https://x.com/LOGO.png",
		"https://x.com/users/Avatar_1.jpg",
		"https://x.com/emoji/smile.png",
		"https://x.com/share-button.svg",
	} {
		if got := p.ExtractMedia(`<img src="` + src + `">`); len(got) != 0 {
			t.Errorf("decorative image %s kept: %+v", src, got)
		}
	}
}

func TestExtractMedia_KeywordsDoNotApplyToVideos(t *testing.T) {
	p := newTestParser()

	got := p.ExtractMedia(`<video src="https://x.com/logo-reveal.mp4"></video>`)

	if len(got) != 1 {
		t.Errorf("ExtractMedia = %+v, want the video kept", got)
	}
}

func TestExtractMedia_CustomKeywords(t *testing.T) {
	p := NewParser(structured.NewDiscard(), []string{" Banner ", "banner", ""})

	if got := p.DecorativeKeywords(); !reflect.DeepEqual(got, []string{"banner"}) {
		t.Errorf("DecorativeKeywords = %v", got)
	}

	got := p.ExtractMedia(`<img src="https://x.com/BANNER.jpg"><img src="https://x.com/logo.png">`)
	if len(got) != 1 || got[0].URL != "https://x.com/logo.png" {
		t.Errorf("ExtractMedia = %+v", got)
	}
}

func TestExtractMedia_Poster(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name   string
		html   string
		poster string
	}{
		{"valid poster", `<video src="https://x.com/v.mp4" poster="https://x.com/p.jpg"></video>`, "https://x.com/p.jpg"},
		{"relative poster", `<video src="https://x.com/v.mp4" poster="/p.jpg"></video>`, ""},
		{"no poster", `<video src="https://x.com/v.mp4"></video>`, ""},
		{"empty poster", `<video src="https://x.com/v.mp4" poster=""></video>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ExtractMedia(tt.html)
			if len(got) != 1 {
				t.Fatalf("ExtractMedia = %+v, want one video", got)
			}
			if got[0].Poster != tt.poster {
				t.Errorf("Poster = %q, want %q", got[0].Poster, tt.poster)
			}
		})
	}
}

func TestExtractMedia_Idempotent(t *testing.T) {
	p := newTestParser()
	html := `<img src="https://x.com/a.jpg"><video src="https://x.com/v.mp4" poster="https://x.com/p.jpg">`

	first := p.ExtractMedia(html)
	second := p.ExtractMedia(html)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestExtractMedia_EmptyInput(t *testing.T) {
	p := newTestParser()

	for _, html := range []string{"", "   ", "<p>no media here</p>"} {
		got := p.ExtractMedia(html)
		if got == nil || len(got) != 0 {
			t.Errorf("ExtractMedia(%q) = %#v, want empty non-nil list", html, got)
		}
	}
}

func TestParseHTML(t *testing.T) {
	p := newTestParser()

	if doc := p.ParseHTML(""); doc != nil {
		t.Error("ParseHTML should return nil for empty input")
	}

	doc := p.ParseHTML("<div><p>unclosed")
	if doc == nil {
		t.Fatal("ParseHTML should accept malformed HTML")
	}
	if got := doc.Find("p").Text(); got != "unclosed" {
		t.Errorf("p text = %q", got)
	}
}
