package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	limiter "github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/noah-isme/backend-mandi/internal/ratelimit"
)

func TestMiddlewareEnforcesLimit(t *testing.T) {
	l := limiter.New(limitermemory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 2})
	handler := ratelimit.Middleware(l)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/shipping/quote", nil)
		req.RemoteAddr = "10.1.2.3:5000"
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/shipping/quote", nil)
	req.RemoteAddr = "10.1.2.3:5000"
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	require.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))
}

func TestMiddlewareKeysByClientIP(t *testing.T) {
	l := limiter.New(limitermemory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 1})
	handler := ratelimit.Middleware(l)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodPost, "/api/shipping/quote", nil)
	first.RemoteAddr = "10.0.0.1:1111"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, first)
	require.Equal(t, http.StatusOK, rr.Code)

	other := httptest.NewRequest(http.MethodPost, "/api/shipping/quote", nil)
	other.RemoteAddr = "10.0.0.2:1111"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, other)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestMiddlewareNilLimiterPassesThrough(t *testing.T) {
	handler := ratelimit.Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}
