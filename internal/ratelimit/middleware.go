package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/noah-isme/backend-mandi/internal/common"
)

// NewRedisLimiter builds a fixed-window limiter backed by redis. Quote
// endpoints are the main consumer; the limit keeps scripted storefront
// traffic from hammering the rating engine.
func NewRedisLimiter(rdb *redis.Client, period time.Duration, max int64) (*limiter.Limiter, error) {
	store, err := limiterredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix: "ratelimit:mandi",
	})
	if err != nil {
		return nil, err
	}
	return limiter.New(store, limiter.Rate{Period: period, Limit: max}), nil
}

// Middleware enforces the limit per client IP and reports the standard
// rate-limit headers.
func Middleware(l *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := l.Get(r.Context(), common.ClientIP(r))
			if err != nil {
				// Limiter store trouble should not take the API down.
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))

			if ctx.Reached {
				common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
