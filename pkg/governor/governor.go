package governor

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"vanityscan/pkg/config"
	"vanityscan/pkg/logger"
	"vanityscan/pkg/retry"
)

// Governor is the process-wide request throttle shared by every worker. It
// enforces a minimum spacing between requests, a global cooldown window after
// any worker observes an upstream rate limit, and a courtesy pause after
// every quota of requests. All shared state is mutex-guarded; instances are
// independent, so tests can run isolated governors.
type Governor struct {
	mu            sync.Mutex
	lastRateLimit time.Time
	requestCount  int
	lastQuotaMark int

	spacing    *rate.Limiter
	cooldown   time.Duration
	quotaSize  int
	quotaPause time.Duration

	logger logger.Logger

	// injectable for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a governor from the rate limit configuration
func New(cfg *config.RateLimitConfig, log logger.Logger) *Governor {
	if log == nil {
		log = logger.GetLogger()
	}

	interval := cfg.MinRequestInterval
	if interval <= 0 {
		interval = time.Millisecond
	}

	return &Governor{
		spacing:    rate.NewLimiter(rate.Every(interval), 1),
		cooldown:   cfg.Cooldown,
		quotaSize:  cfg.QuotaSize,
		quotaPause: cfg.QuotaPause,
		logger:     log,
		now:        time.Now,
		sleep:      retry.Wait,
	}
}

// WaitIfNeeded blocks the calling worker until a new request may be issued:
// first for any active post-rate-limit cooldown, then for a courtesy quota
// pause, and finally for the minimum inter-request spacing.
func (g *Governor) WaitIfNeeded(ctx context.Context) error {
	// Re-check after sleeping: another worker may have recorded a fresh
	// hit while this one slept out the previous window.
	for wait := g.cooldownRemaining(); wait > 0; wait = g.cooldownRemaining() {
		g.logger.DebugWithFields("cooling down after rate limit", map[string]interface{}{
			"wait": wait,
		})
		if err := g.sleep(ctx, wait); err != nil {
			return err
		}
	}

	if g.takeQuotaPause() {
		g.logger.InfoWithFields("courtesy pause", map[string]interface{}{
			"quota_size": g.quotaSize,
			"pause":      g.quotaPause,
		})
		if err := g.sleep(ctx, g.quotaPause); err != nil {
			return err
		}
	}

	return g.spacing.Wait(ctx)
}

// RecordRequest notes that a request has been issued
func (g *Governor) RecordRequest() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requestCount++
}

// RecordRateLimitHit starts a process-wide cooldown window. Every worker's
// subsequent WaitIfNeeded honors it until the window elapses.
func (g *Governor) RecordRateLimitHit() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastRateLimit = g.now()
}

// RequestCount returns the number of requests recorded so far
func (g *Governor) RequestCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requestCount
}

// cooldownRemaining returns how much of the cooldown window is left
func (g *Governor) cooldownRemaining() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cooldown <= 0 || g.lastRateLimit.IsZero() {
		return 0
	}
	elapsed := g.now().Sub(g.lastRateLimit)
	if elapsed >= g.cooldown {
		return 0
	}
	return g.cooldown - elapsed
}

// takeQuotaPause reports whether the calling worker should take the courtesy
// pause, claiming the current quota boundary so only one worker pauses per
// boundary.
func (g *Governor) takeQuotaPause() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.quotaSize <= 0 || g.quotaPause <= 0 {
		return false
	}
	mark := g.requestCount / g.quotaSize
	if mark > 0 && mark != g.lastQuotaMark {
		g.lastQuotaMark = mark
		return true
	}
	return false
}
