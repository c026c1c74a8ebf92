// Package api provides the HTTP inspection API over the access layer,
// markup parser and media pipeline.
//
// # Architecture
//
// - server.go: chi router, middleware chain and server lifecycle
// - handlers/: HTTP request handlers
// - middleware/: request logging and per-IP rate limiting
//
// # Routes
//
//	GET    /healthz
//	GET    /v1/access?url=&cache=
//	GET    /v1/feed?url=
//	GET    /v1/media?url=
//	POST   /v1/media/extract   (HTML body)
//	POST   /v1/entry           (RSS item or Atom entry body)
//	GET    /v1/cache/stats
//	DELETE /v1/cache
//
// # Usage Example
//
//	h := handlers.NewHandler(accessSvc, pipeline, feedSvc, parser, logger)
//	router := api.NewRouter(h, api.APIConfig{
//	    Logger:    logger,
//	    RateLimit: 5,
//	    RateBurst: 10,
//	})
//	server := api.NewServer(":8000", router, logger)
//	err := server.Run(ctx)
//
// # Error Handling
//
// Errors are returned as JSON:
//
//	{
//	    "error": "Bad Request",
//	    "message": "validation error on field 'url': parameter is required"
//	}
//
// Validation errors map to 400, parse errors to 422 and upstream failures
// to 502.
package api
