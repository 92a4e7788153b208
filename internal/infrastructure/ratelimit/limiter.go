package ratelimit

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// IPRateLimiter admits at most max requests per window for each client IP.
// Each IP gets a token bucket refilled at max/window with a burst of max.
// Buckets of idle IPs expire after one window.
type IPRateLimiter struct {
	limiters *cache.Cache
	mu       sync.Mutex
	window   time.Duration
	limit    rate.Limit
	burst    int
}

// NewIPRateLimiter creates a limiter. It returns nil when max or window is not
// positive; a nil limiter admits every request.
func NewIPRateLimiter(window time.Duration, max int) *IPRateLimiter {
	if window <= 0 || max <= 0 {
		return nil
	}
	return &IPRateLimiter{
		limiters: cache.New(window, window),
		window:   window,
		limit:    rate.Every(window / time.Duration(max)),
		burst:    max,
	}
}

// Allow reports whether a request from ip may proceed and consumes one token if so.
func (l *IPRateLimiter) Allow(ip string) bool {
	if l == nil {
		return true
	}
	return l.limiterFor(ip).Allow()
}

func (l *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.limiters.Get(ip); ok {
		limiter := v.(*rate.Limiter)
		l.limiters.Set(ip, limiter, cache.DefaultExpiration)
		return limiter
	}

	limiter := rate.NewLimiter(l.limit, l.burst)
	l.limiters.Set(ip, limiter, cache.DefaultExpiration)
	return limiter
}

// Window returns the configured window.
func (l *IPRateLimiter) Window() time.Duration {
	if l == nil {
		return 0
	}
	return l.window
}

// Max returns the number of requests admitted per window.
func (l *IPRateLimiter) Max() int {
	if l == nil {
		return 0
	}
	return l.burst
}
