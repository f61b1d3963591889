package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/wonny/valuecalc/internal/api/cache"
	"github.com/wonny/valuecalc/internal/api/handlers"
	"github.com/wonny/valuecalc/pkg/config"
	"github.com/wonny/valuecalc/pkg/logger"
)

func newTestRouter(limiter *rate.Limiter) http.Handler {
	log := logger.NewWithWriter(io.Discard, "error")
	calcH := handlers.NewCalcHandler(cache.NewResultCache(time.Minute, 32, log), log)
	return NewRouter(Handlers{
		Calc:     calcH,
		Scenario: handlers.NewScenarioHandler(log),
		Live:     handlers.NewLiveHandler(calcH, log),
	}, limiter, log)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "valuecalc-api")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRoutePath(t *testing.T) {
	assert.Equal(t, "/calc/dcf", routePath(handlers.KindDCF))
	assert.Equal(t, "/calc/ddm/two-stage", routePath(handlers.KindDDMTwoStage))
	assert.Equal(t, "/grid/dcf", routePath(handlers.KindGridDCF))
}

func TestRouter_CalcRoutes(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/calc/ddm/gordon",
		strings.NewReader(`{"currentDividend":1000,"costOfEquity":8,"growthRate":3}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)

	req = httptest.NewRequest(http.MethodPost, "/api/grid/ddm",
		strings.NewReader(`{"base":{"currentDividend":1000,"costOfEquity":8,"growthRate":3},"rows":[8],"cols":[3]}`))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// GET은 허용되지 않음
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/calc/dcf", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequestIDPassthrough(t *testing.T) {
	r := newTestRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRouter_RateLimit(t *testing.T) {
	r := newTestRouter(rate.NewLimiter(rate.Every(time.Hour), 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/calc/kelly",
			strings.NewReader(`{"winProbability":60,"payoffRatio":1}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// /health는 제한 대상 아님
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, NewLimiter(config.RateLimitConfig{RPS: 0}))

	l := NewLimiter(config.RateLimitConfig{RPS: 5})
	require.NotNil(t, l)
	assert.Equal(t, 5, l.Burst())

	l = NewLimiter(config.RateLimitConfig{RPS: 5, Burst: 20})
	assert.Equal(t, 20, l.Burst())
}

func TestRecoveryMiddleware(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, "error")
	h := recoveryMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
