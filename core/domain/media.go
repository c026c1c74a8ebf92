// ABOUTME: Media descriptor domain model for images and videos found in markup
// ABOUTME: Provides constructors that enforce the http/https address invariant

package domain

import (
	"errors"
	"strings"
)

// MediaKind distinguishes the two media types the extractor recognises
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaDescriptor is one image or video reference extracted from markup.
// It is a value type; once built it is never mutated.
type MediaDescriptor struct {
	// URL is the absolute http(s) address of the media
	URL string `json:"url"`

	// Kind is image or video
	Kind MediaKind `json:"type"`

	// Poster is the video's cover image, empty when absent or for images
	Poster string `json:"poster,omitempty"`
}

// IsHTTPURL reports whether raw starts with an http:// or https:// scheme.
func IsHTTPURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

// NewImage creates an image descriptor
func NewImage(url string) (MediaDescriptor, error) {
	if !IsHTTPURL(url) {
		return MediaDescriptor{}, errors.New("media URL must use http or https")
	}
	return MediaDescriptor{URL: url, Kind: MediaImage}, nil
}

// NewVideo creates a video descriptor. An invalid poster is dropped rather
// than rejected, since the video itself is still usable.
func NewVideo(url, poster string) (MediaDescriptor, error) {
	if !IsHTTPURL(url) {
		return MediaDescriptor{}, errors.New("media URL must use http or https")
	}
	d := MediaDescriptor{URL: url, Kind: MediaVideo}
	if IsHTTPURL(poster) {
		d.Poster = poster
	}
	return d, nil
}

// HasPoster reports whether a cover image is attached
func (m MediaDescriptor) HasPoster() bool {
	return m.Poster != ""
}

// SendStrategy says how a media item should be delivered downstream
type SendStrategy string

const (
	// StrategyURLDirect hands the remote URL to the consumer as is
	StrategyURLDirect SendStrategy = "url_direct"
	// StrategyDownloadUpload downloads the file first because it is too large to pass by URL
	StrategyDownloadUpload SendStrategy = "download_upload"
	// StrategyTextFallback degrades to a text link because the media is unreachable
	StrategyTextFallback SendStrategy = "text_fallback"
)

// AnalyzedMedia is a descriptor together with its accessibility probe result
type AnalyzedMedia struct {
	Descriptor MediaDescriptor `json:"media"`
	Accessible bool            `json:"accessible"`
	SizeMB     float64         `json:"size_mb"`
	Error      string          `json:"error,omitempty"`
	Strategy   SendStrategy    `json:"strategy"`
}
