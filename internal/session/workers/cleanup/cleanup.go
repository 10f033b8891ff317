package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"govos/internal/session/metrics"
)

// SessionStore exposes cleanup for idle sessions.
type SessionStore interface {
	DeleteIdle(ctx context.Context, cutoff time.Time) (int, error)
	Count() int
}

// CleanupService periodically removes sessions nobody has touched for the
// idle TTL. Sessions live only in memory, so an abandoned browser tab would
// otherwise hold one forever.
type CleanupService struct {
	store    SessionStore
	interval time.Duration
	idleTTL  time.Duration
	clock    func() time.Time
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// CleanupOption configures CleanupService.
type CleanupOption func(*CleanupService)

// WithCleanupInterval overrides the cleanup interval when greater than zero.
func WithCleanupInterval(interval time.Duration) CleanupOption {
	return func(s *CleanupService) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithIdleTTL overrides how long a session may sit untouched when greater
// than zero.
func WithIdleTTL(ttl time.Duration) CleanupOption {
	return func(s *CleanupService) {
		if ttl > 0 {
			s.idleTTL = ttl
		}
	}
}

// WithCleanupLogger overrides the logger used for cleanup errors.
func WithCleanupLogger(logger *slog.Logger) CleanupOption {
	return func(s *CleanupService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCleanupMetrics records reclaimed sessions.
func WithCleanupMetrics(m *metrics.Metrics) CleanupOption {
	return func(s *CleanupService) {
		s.metrics = m
	}
}

// WithCleanupClock pins the time source.
func WithCleanupClock(clock func() time.Time) CleanupOption {
	return func(s *CleanupService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs a CleanupService with the store and options applied.
func New(store SessionStore, opts ...CleanupOption) (*CleanupService, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	svc := &CleanupService{
		store:    store,
		interval: 5 * time.Minute,
		idleTTL:  2 * time.Hour,
		clock:    time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// Start runs cleanup periodically until ctx is cancelled.
func (s *CleanupService) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.ErrorContext(ctx, "session cleanup failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce removes idle sessions and returns how many were removed.
func (s *CleanupService) RunOnce(ctx context.Context) (int, error) {
	cutoff := s.clock().Add(-s.idleTTL)
	removed, err := s.store.DeleteIdle(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete idle sessions: %w", err)
	}
	if s.metrics != nil {
		s.metrics.AddReclaimed(removed)
		s.metrics.SetActive(s.store.Count())
	}
	if removed > 0 {
		s.logger.InfoContext(ctx, "reclaimed idle sessions", "count", removed)
	}
	return removed, nil
}
