// ABOUTME: Chi router configuration and HTTP server lifecycle for the inspection API
// ABOUTME: Wires CORS, request logging, rate limiting and panic recovery around the handlers

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"feedmedia/api/handlers"
	"feedmedia/api/middleware"
	"feedmedia/core/interfaces"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 10 * time.Second

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger         interfaces.Logger
	RateLimit      float64 // requests per second per IP, 0 disables limiting
	RateBurst      int
	TrustedProxies []string
}

// NewRouter creates the router with middleware and all routes registered
func NewRouter(h *handlers.Handler, cfg APIConfig) chi.Router {
	router := chi.NewRouter()

	// CORS first so preflight requests are answered before anything else
	router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler)

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		if err := limiter.TrustProxies(cfg.TrustedProxies); err != nil && cfg.Logger != nil {
			cfg.Logger.Warn("Ignoring trusted proxies", map[string]interface{}{
				"error": err.Error(),
			})
		}
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	router.Use(chimiddleware.Recoverer)

	h.RegisterRoutes(router)
	return router
}

// Server runs the API until its context is cancelled
type Server struct {
	httpServer *http.Server
	logger     interfaces.Logger
}

// NewServer creates a server listening on addr
func NewServer(addr string, handler http.Handler, logger interfaces.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", map[string]interface{}{
			"addr": s.httpServer.Addr,
		})
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("Server stopped", nil)
	return nil
}
