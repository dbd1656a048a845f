package storage

import (
	"sync"
	"time"
)

type sessionEntry[V any] struct {
	value      V
	lastActive time.Time
}

// SessionStorage keeps one value per key in memory and tracks when each
// was last used so idle entries can be evicted.
type SessionStorage[K comparable, V any] struct {
	mu       sync.RWMutex
	sessions map[K]*sessionEntry[V]
	onEvict  func(K, V)
	now      func() time.Time
}

// NewSessionStorage creates a new SessionStorage. onEvict, if not nil, is
// called for every entry removed by Delete or EvictIdle.
func NewSessionStorage[K comparable, V any](onEvict func(K, V)) *SessionStorage[K, V] {
	return &SessionStorage[K, V]{
		sessions: make(map[K]*sessionEntry[V]),
		onEvict:  onEvict,
		now:      time.Now,
	}
}

// Store saves a value under key and marks it active.
func (s *SessionStorage[K, V]) Store(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[key] = &sessionEntry[V]{value: value, lastActive: s.now()}
}

// Get retrieves the value for key and marks it active.
func (s *SessionStorage[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[key]
	if !ok {
		var zero V
		return zero, false
	}
	e.lastActive = s.now()
	return e.value, true
}

// GetOrCreate returns the value for key, creating it with create if absent.
func (s *SessionStorage[K, V]) GetOrCreate(key K, create func() V) V {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[key]; ok {
		e.lastActive = s.now()
		return e.value
	}

	v := create()
	s.sessions[key] = &sessionEntry[V]{value: v, lastActive: s.now()}
	return v
}

// Delete removes the value for key.
func (s *SessionStorage[K, V]) Delete(key K) {
	s.mu.Lock()
	e, ok := s.sessions[key]
	delete(s.sessions, key)
	s.mu.Unlock()

	if ok && s.onEvict != nil {
		s.onEvict(key, e.value)
	}
}

// EvictIdle removes entries not used since cutoff and returns how many were removed.
func (s *SessionStorage[K, V]) EvictIdle(cutoff time.Time) int {
	type evicted struct {
		key   K
		value V
	}

	s.mu.Lock()
	var out []evicted
	for k, e := range s.sessions {
		if e.lastActive.Before(cutoff) {
			out = append(out, evicted{key: k, value: e.value})
			delete(s.sessions, k)
		}
	}
	s.mu.Unlock()

	if s.onEvict != nil {
		for _, e := range out {
			s.onEvict(e.key, e.value)
		}
	}
	return len(out)
}

// Len returns the number of stored values.
func (s *SessionStorage[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
