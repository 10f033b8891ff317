package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultSweepInterval = time.Minute

// Limiter keeps an in-memory sliding window per client and class.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*slidingWindow
	limits  map[Class]Limit
	clock   func() time.Time
	logger  *slog.Logger
}

type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

// tryConsume records one request when the window has room.
func (sw *slidingWindow) tryConsume(limit int, now time.Time) (bool, int, time.Time) {
	sw.cleanupExpired(now)

	if len(sw.timestamps) >= limit {
		return false, 0, sw.timestamps[0].Add(sw.window)
	}
	sw.timestamps = append(sw.timestamps, now)
	return true, limit - len(sw.timestamps), sw.timestamps[0].Add(sw.window)
}

func (sw *slidingWindow) cleanupExpired(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

// LimiterOption configures a Limiter.
type LimiterOption func(*Limiter)

// WithClock pins the time source.
func WithClock(clock func() time.Time) LimiterOption {
	return func(l *Limiter) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithLogger sets the logger used by the sweeper.
func WithLogger(logger *slog.Logger) LimiterOption {
	return func(l *Limiter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLimiter creates a limiter enforcing limits per class. Classes without an
// entry are not limited.
func NewLimiter(limits map[Class]Limit, opts ...LimiterOption) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*slidingWindow),
		limits:  make(map[Class]Limit, len(limits)),
		clock:   time.Now,
		logger:  slog.Default(),
	}
	for class, limit := range limits {
		l.limits[class] = limit
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow checks the client's window for class and counts the request when it
// fits.
func (l *Limiter) Allow(ip string, class Class) Result {
	limit, ok := l.limits[class]
	if !ok || limit.Requests <= 0 || limit.Window <= 0 {
		return Result{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := bucketKey(ip, class)
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &slidingWindow{window: limit.Window}
		l.buckets[key] = bucket
	}
	now := l.clock()
	allowed, remaining, resetAt := bucket.tryConsume(limit.Requests, now)

	return Result{
		Allowed:    allowed,
		Limit:      limit.Requests,
		Remaining:  remaining,
		ResetAt:    resetAt,
		RetryAfter: retryAfterSeconds(allowed, resetAt, now),
	}
}

// Sweep drops windows with no requests left in them and returns how many
// were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	removed := 0
	for key, bucket := range l.buckets {
		bucket.cleanupExpired(now)
		if len(bucket.timestamps) == 0 {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Len reports how many client windows are tracked.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Start sweeps on a ticker until ctx is cancelled.
func (l *Limiter) Start(ctx context.Context) error {
	ticker := time.NewTicker(defaultSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := l.Sweep(); n > 0 {
				l.logger.Debug("rate limit windows swept", "removed", n)
			}
		}
	}
}

// retryAfterSeconds rounds up so a client waiting that long is let through.
func retryAfterSeconds(allowed bool, resetAt, now time.Time) int {
	if allowed {
		return 0
	}
	wait := resetAt.Sub(now)
	if wait <= 0 {
		return 0
	}
	return int((wait + time.Second - 1) / time.Second)
}
