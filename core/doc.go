// Package core contains the feed access and media extraction logic.
// It has no knowledge of the HTTP server or CLI that drive it.
//
// The core package is organized into several sub-packages:
//
// - domain: value types (MediaDescriptor, FeedEntry, AccessResult, FeedItem)
// - access: HEAD probes, feed and file downloads behind a TTL response cache
// - markup: lenient HTML parsing, XML fragment parsing, media and entry extraction
// - media: fetch-then-extract pipeline, accessibility analysis and batching
// - feed: whole-feed parsing and new-entry detection
// - errors: typed errors for transport, status and parse failures
// - interfaces: contracts for external dependencies (cache, HTTP, logger)
//
// # Usage Example
//
//	import (
//	    "feedmedia/core/access"
//	    "feedmedia/core/interfaces"
//	    "feedmedia/core/markup"
//	    "feedmedia/core/media"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	accessSvc := access.NewService(deps, cfg)
//	parser := markup.NewParser(myLogger, cfg.Media.DecorativeKeywords)
//	pipeline := media.NewPipeline(accessSvc, parser, myLogger, cfg.Media)
//
//	found := pipeline.FetchAndExtractMedia(ctx, "https://example.com/post")
package core
