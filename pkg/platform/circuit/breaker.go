// Package circuit guards calls to the scenario model providers. When a
// provider keeps failing the breaker opens and callers serve canned content
// until a few probes succeed.
package circuit

import (
	"sync"
	"time"
)

type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// StateChange is non-zero only on the call that flipped the breaker.
type StateChange struct {
	Opened bool
	Closed bool
}

const (
	defaultTripAfter     = 5
	defaultRecoverAfter  = 3
	defaultProbeInterval = 10 * time.Second
)

// Breaker opens after tripAfter consecutive failures. While open it admits
// one probe per probeEvery; recoverAfter consecutive good probes close it.
type Breaker struct {
	name         string
	tripAfter    int
	recoverAfter int
	probeEvery   time.Duration

	mu        sync.Mutex
	open      bool
	failures  int
	goodProbe int
	lastProbe time.Time
}

type Option func(*Breaker)

// WithFailureThreshold overrides the consecutive failures needed to open.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.tripAfter = n
		}
	}
}

// WithSuccessThreshold overrides the consecutive good probes needed to close.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.recoverAfter = n
		}
	}
}

// WithProbeInterval overrides the probe spacing. Zero lets every call probe.
func WithProbeInterval(d time.Duration) Option {
	return func(b *Breaker) {
		if d >= 0 {
			b.probeEvery = d
		}
	}
}

func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:         name,
		tripAfter:    defaultTripAfter,
		recoverAfter: defaultRecoverAfter,
		probeEvery:   defaultProbeInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open {
		return StateOpen
	}
	return StateClosed
}

func (b *Breaker) IsOpen() bool { return b.State() == StateOpen }

// Allow reports whether the model should be called at now.
func (b *Breaker) Allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		return true
	}
	if !b.lastProbe.IsZero() && now.Sub(b.lastProbe) < b.probeEvery {
		return false
	}
	b.lastProbe = now
	return true
}

// RecordFailure notes a failed model call. useFallback reports whether the
// breaker is open afterwards.
func (b *Breaker) RecordFailure() (useFallback bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.goodProbe = 0
	b.failures++
	switch {
	case b.open:
		return true, StateChange{}
	case b.failures < b.tripAfter:
		return false, StateChange{}
	}
	b.open = true
	b.lastProbe = time.Time{}
	return true, StateChange{Opened: true}
}

// RecordSuccess notes a successful model call. usePrimary reports whether the
// breaker is closed afterwards.
func (b *Breaker) RecordSuccess() (usePrimary bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		b.failures = 0
		return true, StateChange{}
	}
	b.goodProbe++
	if b.goodProbe < b.recoverAfter {
		return false, StateChange{}
	}
	b.reset()
	return true, StateChange{Closed: true}
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *Breaker) reset() {
	b.open = false
	b.failures = 0
	b.goodProbe = 0
	b.lastProbe = time.Time{}
}
