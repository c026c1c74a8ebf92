package domain

import "time"

// SizeUnknown is the AccessResult error reported when a reachable resource
// does not declare its length.
const SizeUnknown = "size unknown"

// AccessResult is the outcome of a HEAD accessibility probe.
// Accessible with a non-empty Error means the size could not be determined.
type AccessResult struct {
	Accessible bool    `json:"accessible"`
	Error      string  `json:"error,omitempty"`
	SizeMB     float64 `json:"size_mb"`
}

// FeedResult is the outcome of a feed download
type FeedResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Body  string `json:"body,omitempty"`
}

// CacheStats describes the access layer's response cache
type CacheStats struct {
	TotalEntries int           `json:"total_entries"`
	ValidEntries int           `json:"valid_entries"`
	TTL          time.Duration `json:"cache_ttl"`
}
