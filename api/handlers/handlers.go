// ABOUTME: HTTP handlers for the inspection API
// ABOUTME: Exposes accessibility probes, feed parsing, media and entry extraction, and cache control

package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"feedmedia/core/domain"
	apperrors "feedmedia/core/errors"
	"feedmedia/core/interfaces"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds markup posted for extraction
const maxBodyBytes = 5 << 20

// AccessService is the access layer as seen by the API
type AccessService interface {
	CheckAccessibility(ctx context.Context, url string, useCache bool) domain.AccessResult
	ClearCache(ctx context.Context) error
	CacheStats(ctx context.Context) domain.CacheStats
}

// MediaService fetches a page and extracts its media
type MediaService interface {
	FetchAndExtractMedia(ctx context.Context, url string) []domain.MediaDescriptor
}

// FeedService fetches and parses whole feeds
type FeedService interface {
	Fetch(ctx context.Context, url string) ([]domain.FeedItem, error)
}

// Extractor parses markup posted by clients
type Extractor interface {
	ExtractMedia(htmlContent string) []domain.MediaDescriptor
	ExtractEntry(fragment string) *domain.FeedEntry
}

// Handler serves every inspection route
type Handler struct {
	access    AccessService
	media     MediaService
	feeds     FeedService
	extractor Extractor
	logger    interfaces.Logger
}

// NewHandler creates a handler
func NewHandler(access AccessService, media MediaService, feeds FeedService, extractor Extractor, logger interfaces.Logger) *Handler {
	return &Handler{
		access:    access,
		media:     media,
		feeds:     feeds,
		extractor: extractor,
		logger:    logger,
	}
}

// RegisterRoutes registers all routes on r
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/access", h.CheckAccess)
		r.Get("/feed", h.Feed)
		r.Get("/media", h.Media)
		r.Post("/media/extract", h.ExtractMedia)
		r.Post("/entry", h.ExtractEntry)
		r.Get("/cache/stats", h.CacheStats)
		r.Delete("/cache", h.ClearCache)
	})
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CheckAccess handles GET /v1/access?url=&cache=
func (h *Handler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	target, err := requireURL(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	useCache := true
	if raw := r.URL.Query().Get("cache"); raw != "" {
		useCache, err = strconv.ParseBool(raw)
		if err != nil {
			writeErr(w, &apperrors.ValidationError{Field: "cache", Message: "must be a boolean"})
			return
		}
	}

	writeJSON(w, http.StatusOK, h.access.CheckAccessibility(r.Context(), target, useCache))
}

// FeedResponse is the body of GET /v1/feed
type FeedResponse struct {
	URL   string            `json:"url"`
	Count int               `json:"count"`
	Items []domain.FeedItem `json:"items"`
}

// Feed handles GET /v1/feed?url=
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	target, err := requireURL(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	items, err := h.feeds.Fetch(r.Context(), target)
	if err != nil {
		h.logger.Warn("Feed request failed", map[string]interface{}{
			"url":   target,
			"error": err.Error(),
		})
		// Anything unclassified here is an upstream download failure
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, FeedResponse{URL: target, Count: len(items), Items: items})
}

// MediaResponse is the body of the media routes
type MediaResponse struct {
	URL   string                   `json:"url,omitempty"`
	Count int                      `json:"count"`
	Media []domain.MediaDescriptor `json:"media"`
}

// Media handles GET /v1/media?url=
func (h *Handler) Media(w http.ResponseWriter, r *http.Request) {
	target, err := requireURL(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	media := h.media.FetchAndExtractMedia(r.Context(), target)
	writeJSON(w, http.StatusOK, MediaResponse{URL: target, Count: len(media), Media: media})
}

// ExtractMedia handles POST /v1/media/extract with an HTML body
func (h *Handler) ExtractMedia(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeErr(w, err)
		return
	}

	media := h.extractor.ExtractMedia(body)
	writeJSON(w, http.StatusOK, MediaResponse{Count: len(media), Media: media})
}

// ExtractEntry handles POST /v1/entry with an RSS item or Atom entry body
func (h *Handler) ExtractEntry(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeErr(w, err)
		return
	}

	entry := h.extractor.ExtractEntry(body)
	if entry == nil {
		writeErr(w, &apperrors.ParseError{Parser: "fragment", Err: errors.New("no parser accepted the fragment")})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// CacheStatsResponse is the body of GET /v1/cache/stats
type CacheStatsResponse struct {
	TotalEntries int     `json:"total_entries"`
	ValidEntries int     `json:"valid_entries"`
	TTLSeconds   float64 `json:"cache_ttl"`
}

// CacheStats handles GET /v1/cache/stats
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats := h.access.CacheStats(r.Context())
	writeJSON(w, http.StatusOK, CacheStatsResponse{
		TotalEntries: stats.TotalEntries,
		ValidEntries: stats.ValidEntries,
		TTLSeconds:   stats.TTL.Seconds(),
	})
}

// ClearCache handles DELETE /v1/cache
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.access.ClearCache(r.Context()); err != nil {
		h.logger.Error("Failed to clear cache", map[string]interface{}{
			"error": err.Error(),
		})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireURL reads and validates the url query parameter
func requireURL(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("url"))
	if raw == "" {
		return "", &apperrors.ValidationError{Field: "url", Message: "parameter is required"}
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", &apperrors.ValidationError{Field: "url", Message: "must be an absolute http(s) URL"}
	}
	return raw, nil
}

func readBody(w http.ResponseWriter, r *http.Request) (string, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return "", &apperrors.ValidationError{Field: "body", Message: err.Error()}
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", &apperrors.ValidationError{Field: "body", Message: "markup is required"}
	}
	return string(data), nil
}
