package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/hrprojector/jobboard/internal/api/jsonrpc"
	"github.com/hrprojector/jobboard/internal/api/metrics"
	"github.com/hrprojector/jobboard/internal/core/domain"
)

// Limiter decides whether one more hit for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit refuses calls from a client IP that exceeded the limiter's
// budget for the method. A failing limiter lets the call through.
func RateLimit(l Limiter, log zerolog.Logger) jsonrpc.Guard {
	return func(c *jsonrpc.Call) error {
		key := c.Method + ":" + c.RealIP()
		ok, err := l.Allow(c.Ctx(), key)
		if err != nil {
			log.Warn().Err(err).Str("method", c.Method).Msg("rate limiter unavailable, allowing call")
			return nil
		}
		if !ok {
			metrics.RateLimitedTotal.WithLabelValues(c.Method).Inc()
			log.Warn().Str("method", c.Method).Str("ip", c.RealIP()).Msg("rate limit exceeded")
			return domain.ErrForbidden
		}
		return nil
	}
}

type keyLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LocalLimiter is an in-process token bucket per key. It serves a single
// instance when no shared store is configured.
type LocalLimiter struct {
	limit rate.Limit
	burst int
	idle  time.Duration

	mu       sync.Mutex
	limiters map[string]*keyLimiter
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewLocalLimiter allows limit hits per window for each key. Keys idle for
// two windows are forgotten.
func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	l := &LocalLimiter{
		limit:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		idle:     2 * window,
		limiters: make(map[string]*keyLimiter),
		stopCh:   make(chan struct{}),
	}
	go l.cleanupLoop(window)
	return l
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	kl, ok := l.limiters[key]
	if !ok {
		kl = &keyLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = kl
	}
	kl.lastAccess = time.Now()
	l.mu.Unlock()
	return kl.limiter.Allow(), nil
}

// Stop ends the background cleanup.
func (l *LocalLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *LocalLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup(time.Now())
		case <-l.stopCh:
			return
		}
	}
}

func (l *LocalLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, kl := range l.limiters {
		if now.Sub(kl.lastAccess) > l.idle {
			delete(l.limiters, key)
		}
	}
}
