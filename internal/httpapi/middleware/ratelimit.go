package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idle entries older than this are dropped on the next sweep
const visitorTTL = 10 * time.Minute

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

type visitors struct {
	mu    sync.Mutex
	m     map[string]*visitor
	limit rate.Limit
	burst int
}

func (v *visitors) allow(key string) bool {
	now := time.Now()
	v.mu.Lock()
	vis := v.m[key]
	if vis == nil {
		vis = &visitor{lim: rate.NewLimiter(v.limit, v.burst)}
		v.m[key] = vis
		if len(v.m) > 1024 {
			v.sweep(now)
		}
	}
	vis.seen = now
	v.mu.Unlock()
	return vis.lim.Allow()
}

// sweep runs under v.mu.
func (v *visitors) sweep(now time.Time) {
	for k, vis := range v.m {
		if now.Sub(vis.seen) > visitorTTL {
			delete(v.m, k)
		}
	}
}

// RateLimit limits requests per remote IP. Example: RateLimit(120, 60) allows
// 120 req/min with a burst of 60. reqPerMin <= 0 disables the limiter.
func RateLimit(reqPerMin, burst int) func(http.Handler) http.Handler {
	if reqPerMin <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	v := &visitors{
		m:     make(map[string]*visitor),
		limit: rate.Limit(float64(reqPerMin) / 60.0),
		burst: burst,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !v.allow(clientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	// honor X-Forwarded-For if behind a proxy
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
