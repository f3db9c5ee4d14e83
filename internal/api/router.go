package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/time/rate"

	_ "github.com/joestump/ambient-prompt/docs/swagger"
	"github.com/joestump/ambient-prompt/internal/generator"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Generator generator.Generator
	Examples  []string
	// Limiter throttles /api routes; nil disables throttling.
	Limiter *rate.Limiter
}

// NewRouter assembles the chi router serving the generation API, its Swagger UI,
// health and metrics.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))

	r.Handle("/metrics", promhttp.Handler())

	prompts := &promptAPIHandler{generator: deps.Generator, examples: deps.Examples}
	r.Route("/api", func(r chi.Router) {
		r.Get("/docs/*", httpSwagger.WrapHandler)

		r.Group(func(r chi.Router) {
			r.Use(jsonContentType)
			r.Use(rateLimit(deps.Limiter))
			r.Get("/initial-prompt", prompts.InitialPrompt)
			r.Get("/examples", prompts.Examples)
		})
	})

	return r
}

// NewLimiter builds the token bucket for the API routes, or nil when rps is zero.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
