package view

import (
	"sync"
	"time"

	"helium-explorer/metrics"
)

type session struct {
	view     *View
	lastSeen time.Time
}

// Registry keeps one View per front-end session (HTTP client, chat).
// Each front-end owns its own Registry.
type Registry struct {
	source      Source
	pageSize    int
	maxSessions int

	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

// NewRegistry creates a registry holding at most maxSessions views; the
// least recently used one is dropped when a new session would exceed it.
// maxSessions <= 0 means no limit.
func NewRegistry(source Source, pageSize, maxSessions int) *Registry {
	return &Registry{
		source:      source,
		pageSize:    pageSize,
		maxSessions: maxSessions,
		sessions:    make(map[string]*session),
		now:         time.Now,
	}
}

// Get returns the view of id, creating an empty one on first use.
func (r *Registry) Get(id string) *View {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		if r.maxSessions > 0 && len(r.sessions) >= r.maxSessions {
			r.evictOldest()
		}
		s = &session{view: New(r.source, r.pageSize)}
		r.sessions[id] = s
		metrics.SetSessions(len(r.sessions))
	}
	s.lastSeen = r.now()
	return s.view
}

// Lookup returns the view of id without creating or touching it.
func (r *Registry) Lookup(id string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return s.view, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// evictOldest must be called with mu held.
func (r *Registry) evictOldest() {
	var (
		oldestID string
		oldest   *session
	)
	for id, s := range r.sessions {
		if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, s
		}
	}
	if oldest != nil {
		delete(r.sessions, oldestID)
	}
}

// EvictIdle drops sessions not used for maxIdle and returns how many went.
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	deadline := r.now().Add(-maxIdle)
	evicted := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(deadline) {
			delete(r.sessions, id)
			evicted++
		}
	}
	metrics.SetSessions(len(r.sessions))
	return evicted
}
