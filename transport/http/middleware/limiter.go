package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"vietour/infras/metrics"
	"vietour/shared/cache"
	"vietour/shared/constant"
	"vietour/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
)

// RateLimit allows MaxRequests per client (IP and user agent) in a fixed window of WindowSeconds.
// When the cache is unreachable requests are let through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limiter := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !limiter.Enable {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			count, ok := a.hit(r.Context(), cache.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r)), limiter.WindowSeconds)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			if count > limiter.MaxRequests {
				metrics.RateLimitExceeded.Inc()
				response.WithRequestLimitExceeded(w)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limiter.MaxRequests-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiter.WindowSeconds))

			next.ServeHTTP(w, r)
		})
	}
}

// hit increments the window counter for key. ok is false when the counter could not be read or stored.
func (a *appMiddleware) hit(ctx context.Context, key string, windowSeconds int) (count int, ok bool) {
	err := a.cache.Get(ctx, key, &count)
	if err != nil && !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Msg("rate limiter cache unavailable, letting request through")

		return 0, false
	}

	count++

	if err := a.cache.Save(ctx, key, count, windowSeconds); err != nil {
		log.Warn().Err(err).Msg("failed to store rate limiter counter")

		return count, false
	}

	return count, true
}

func (a *appMiddleware) getUA(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != constant.Empty {
		return ua
	}

	return unknownUserAgent
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket address.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != constant.Empty {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != constant.Empty {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
