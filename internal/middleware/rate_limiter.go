package middleware

import (
	"sync"
	"time"

	"expense-manager/internal/errors"
	"expense-manager/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	visitorIdleTimeout  = 3 * time.Minute
	visitorSweepPeriod  = time.Minute
	defaultRequestsRate = 5
	defaultBurst        = 10
)

// ipLimiter keeps a token bucket per client IP. Idle entries are swept so
// the map does not grow without bound under churny traffic.
type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitorEntry
	rps      rate.Limit
	burst    int
}

type visitorEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(rps, burst int) *ipLimiter {
	l := &ipLimiter{
		visitors: make(map[string]*visitorEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitorEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

func (l *ipLimiter) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visitors = make(map[string]*visitorEntry)
}

func (l *ipLimiter) sweep() {
	for {
		time.Sleep(visitorSweepPeriod)

		l.mu.Lock()
		for ip, v := range l.visitors {
			if time.Since(v.lastSeen) > visitorIdleTimeout {
				delete(l.visitors, ip)
			}
		}
		l.mu.Unlock()
	}
}

// clientIP prefers proxy headers over the socket address so limits follow
// the real client behind a load balancer.
func clientIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}

// RateLimiter limits each client IP with the default rate. The default is
// low enough to keep credential stuffing on the auth endpoints impractical.
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWithConfig(defaultRequestsRate, defaultBurst)
}

// RateLimiterWithConfig limits each client IP to rps sustained requests per
// second with the given burst allowance. Rejected requests get SYSTEM_004.
func RateLimiterWithConfig(rps, burst int) echo.MiddlewareFunc {
	limiter := newIPLimiter(rps, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.allow(clientIP(c)) {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}
