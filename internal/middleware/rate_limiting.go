package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/memberhub/internal/auth"
	"github.com/2beens/memberhub/internal/telemetry/metrics"
	"github.com/2beens/memberhub/pkg"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit allows allowedPerMin requests per minute for each caller of the
// named route group. Callers with a session are counted per subject, the
// rest per client IP.
func RateLimit(
	rateLimiter RequestRateLimiter,
	name string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	limit := redis_rate.PerMinute(allowedPerMin)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := rateLimiter.Allow(r.Context(), rateLimitKey(r, name), limit)
			if err != nil {
				log.Errorf("rate limit [%s]: %s", name, err)
				http.Error(w, "rate limit internal error", http.StatusInternalServerError)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}
			retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			http.Error(w, fmt.Sprintf("retry after %d seconds", retryAfter), http.StatusTooManyRequests)
		})
	}
}

func rateLimitKey(r *http.Request, name string) string {
	if session, ok := auth.SessionFromContext(r.Context()); ok {
		return fmt.Sprintf("%s:%s:%d", name, session.Role, session.SubjectID)
	}
	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		log.Debugf("rate limit [%s], read user ip: %s", name, err)
		return name + ":unknown"
	}
	return name + ":" + ip
}
