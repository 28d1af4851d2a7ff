package server

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/yukikurage/items-api/internal/config"
	"github.com/yukikurage/items-api/internal/constants"
)

// WithCORS allows the configured browser origins to call the API with credentials.
// With no origins no CORS headers are sent, so browsers keep the same-origin policy.
func WithCORS(origins []string, next http.Handler) http.Handler {
	if len(origins) == 0 {
		return next
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constants.HeaderRequestID},
		ExposedHeaders:   []string{constants.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	})(next)
}

// NewHTTPServer wraps the router with CORS and server timeouts.
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           WithCORS(cfg.CORSOrigins, handler),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}
