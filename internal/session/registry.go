package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/agnite/internal/agn"
	"github.com/banshee-data/agnite/internal/monitoring"
	"github.com/banshee-data/agnite/internal/spectrum"
)

// ErrNotFound is returned for unknown or evicted session IDs.
var ErrNotFound = errors.New("session not found")

// Registry owns the sessions of all connected viewers.
type Registry struct {
	loader spectrum.Loader
	opts   options

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry whose sessions share loader.
func NewRegistry(loader spectrum.Loader, opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		loader:   loader,
		opts:     o,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session set to agn.DefaultAngle. The session is
// registered even if the initial spectrum fails to load; the load error is
// returned alongside it.
func (r *Registry) Create() (*Session, error) {
	s := newSession(uuid.NewString(), r.loader, r.opts)

	r.mu.Lock()
	r.sessions[s.id] = s
	n := len(r.sessions)
	r.mu.Unlock()
	r.opts.metrics.SetActiveSessions(n)

	_, err := s.SetAngle(agn.DefaultAngle)
	return s, err
}

// Get returns the session with id and marks it used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch()
	return s, nil
}

// Delete removes a session. It reports whether the session existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()
	r.opts.metrics.SetActiveSessions(n)
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the idle timeout and returns
// how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	removed := 0
	for id, s := range r.sessions {
		if r.opts.clock.Since(s.LastUsed()) > r.opts.idleTimeout {
			delete(r.sessions, id)
			removed++
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if removed > 0 {
		monitoring.Logf("evicted %d idle sessions, %d remain", removed, n)
	}
	r.opts.metrics.SetActiveSessions(n)
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := r.opts.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			r.Sweep()
		}
	}
}
