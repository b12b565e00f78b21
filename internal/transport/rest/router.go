package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/alice-reader-backend/internal/auth"
	"github.com/heartmarshall/alice-reader-backend/internal/config"
	"github.com/heartmarshall/alice-reader-backend/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Identity, error)
}

type requestRecorder interface {
	HTTPRequest(method, code string)
}

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Logger      *slog.Logger
	CORS        config.CORSConfig
	Validator   tokenValidator
	Metrics     requestRecorder
	Gatherer    prometheus.Gatherer
	RateLimiter *middleware.RateLimiter
	// LookupRateLimit is the number of definition lookups allowed per caller per minute.
	LookupRateLimit int

	Health      *HealthHandler
	Definitions *DefinitionHandler
	Lookups     *LookupHandler
	Vocabulary  *VocabularyHandler
	Admin       *AdminHandler
	Auth        *AuthHandler
}

// NewRouter builds the HTTP handler: routes plus the middleware chain
// Recovery, RequestID, Logger, CORS, Auth.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)
	if d.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	var lookupLimit middleware.Middleware
	if d.RateLimiter != nil && d.LookupRateLimit > 0 {
		lookupLimit = d.RateLimiter.Limit(d.LookupRateLimit)
	}
	mux.Handle("GET /api/v1/books/{bookID}/definitions/{term}",
		middleware.Chain(lookupLimit)(http.HandlerFunc(d.Definitions.Get)))

	mux.HandleFunc("POST /api/v1/lookups", d.Lookups.Create)
	mux.HandleFunc("GET /api/v1/vocabulary", d.Vocabulary.List)
	mux.HandleFunc("PUT /api/v1/vocabulary", d.Vocabulary.Save)
	mux.HandleFunc("DELETE /api/v1/vocabulary/{term}", d.Vocabulary.Remove)
	mux.HandleFunc("DELETE /api/v1/admin/definitions/cache", d.Admin.ClearDefinitionCache)
	mux.HandleFunc("GET /api/v1/me", d.Auth.Me)

	return middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID,
		middleware.Logger(d.Logger, d.Metrics),
		middleware.CORS(d.CORS),
		middleware.Auth(d.Validator),
	)(mux)
}
