package desktop

import (
	"sort"
	"time"
)

// EventKind names a scheduled effect.
type EventKind string

// SecurityCheckDone clears the portal's fake security scan.
const SecurityCheckDone EventKind = "security_check_done"

// SecurityCheckDelay is how long the portal stays in its loading state after
// being opened from closed.
const SecurityCheckDelay = 2 * time.Second

// Event is a one-shot effect due at a point in time.
type Event struct {
	Kind EventKind
	At   time.Time
	Seq  uint64
}

// Schedule is an ordered queue of pending events. The zero value is ready
// to use. Events due at the same instant fire in the order they were added.
type Schedule struct {
	pending []Event
	next    uint64
}

// Add enqueues kind to fire after delay from now and returns the event.
func (s *Schedule) Add(kind EventKind, now time.Time, delay time.Duration) Event {
	s.next++
	ev := Event{Kind: kind, At: now.Add(delay), Seq: s.next}
	s.pending = append(s.pending, ev)
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].At.Equal(s.pending[j].At) {
			return s.pending[i].Seq < s.pending[j].Seq
		}
		return s.pending[i].At.Before(s.pending[j].At)
	})
	return ev
}

// Due removes and returns every event whose time is not after now.
func (s *Schedule) Due(now time.Time) []Event {
	n := 0
	for n < len(s.pending) && !s.pending[n].At.After(now) {
		n++
	}
	if n == 0 {
		return nil
	}
	due := append([]Event(nil), s.pending[:n]...)
	s.pending = append(s.pending[:0], s.pending[n:]...)
	return due
}

// Cancel drops every pending event of the given kind.
func (s *Schedule) Cancel(kind EventKind) {
	kept := s.pending[:0]
	for _, ev := range s.pending {
		if ev.Kind != kind {
			kept = append(kept, ev)
		}
	}
	s.pending = kept
}

// Pending reports whether an event of kind is queued.
func (s *Schedule) Pending(kind EventKind) bool {
	for _, ev := range s.pending {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

// NextAt returns the time of the earliest pending event.
func (s *Schedule) NextAt() (time.Time, bool) {
	if len(s.pending) == 0 {
		return time.Time{}, false
	}
	return s.pending[0].At, true
}

// Len returns the number of pending events.
func (s *Schedule) Len() int { return len(s.pending) }

// Clone returns an independent copy.
func (s *Schedule) Clone() Schedule {
	return Schedule{pending: append([]Event(nil), s.pending...), next: s.next}
}
