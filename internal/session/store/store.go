// Package store keeps game sessions. Sessions live in memory and are lost
// on restart.
package store

import (
	"context"
	"sync"
	"time"

	"govos/internal/sentinel"
	"govos/internal/session"
	"govos/pkg/domain"
)

// Error Contract:
// - Return sentinel.ErrNotFound when the session does not exist
// - Return nil for successful operations

// InMemoryStore stores sessions in memory. Get and Save copy the state, so
// callers never share a session with the store.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*session.State
}

// New constructs an empty session store.
func New() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[domain.SessionID]*session.State)}
}

func (s *InMemoryStore) Save(_ context.Context, st *session.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[st.ID] = st.Clone()
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id domain.SessionID) (*session.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return st.Clone(), nil
}

func (s *InMemoryStore) Delete(_ context.Context, id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// DeleteIdle removes sessions not touched since cutoff and returns how many
// were removed.
func (s *InMemoryStore) DeleteIdle(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, st := range s.sessions {
		if st.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of stored sessions.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
