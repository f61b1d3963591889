package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/wonny/valuecalc/internal/api/handlers"
	"github.com/wonny/valuecalc/pkg/config"
	"github.com/wonny/valuecalc/pkg/logger"
)

// Handlers bundles every endpoint group
type Handlers struct {
	Calc     *handlers.CalcHandler
	Scenario *handlers.ScenarioHandler
	Live     *handlers.LiveHandler
}

// NewLimiter builds the API-wide token bucket. RPS <= 0 disables limiting.
func NewLimiter(cfg config.RateLimitConfig) *rate.Limiter {
	if cfg.RPS <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = cfg.RPS
	}
	return rate.NewLimiter(rate.Limit(cfg.RPS), burst)
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, limiter *rate.Limiter, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Calculator endpoints (POST /api/calc/{kind}, POST /api/grid/{kind})
	for _, kind := range handlers.Kinds() {
		api.HandleFunc(routePath(kind), h.Calc.Handle(kind)).Methods("POST")
	}
	api.HandleFunc("/cache/stats", h.Calc.CacheStats).Methods("GET")

	// Scenario endpoint
	api.HandleFunc("/scenario", h.Scenario.Evaluate).Methods("POST")

	// Live recalculation
	r.HandleFunc("/ws/calc", h.Live.Serve).Methods("GET")

	// Apply middleware
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	if limiter != nil {
		api.Use(rateLimitMiddleware(limiter, log))
	}

	return r
}

// routePath maps a calculation kind to its URL.
// grid/* 종류는 /api/grid/*, 나머지는 /api/calc/*
func routePath(kind string) string {
	if strings.HasPrefix(kind, "grid/") {
		return "/" + kind
	}
	return "/calc/" + kind
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "valuecalc-api",
	})
}

// requestIDMiddleware tags every response with X-Request-ID
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
// ResponseWriter를 감싸지 않음 (WebSocket Hijack 유지)
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Call next handler
			next.ServeHTTP(w, r)

			// Log request
			log.WithFields(map[string]interface{}{
				"method":     r.Method,
				"path":       r.URL.Path,
				"request_id": w.Header().Get("X-Request-ID"),
				"duration":   time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// rateLimitMiddleware rejects requests beyond the token bucket with 429
func rateLimitMiddleware(limiter *rate.Limiter, log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.WithField("path", r.URL.Path).Warn("Rate limit exceeded")

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "rate limit exceeded",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
