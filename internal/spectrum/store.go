package spectrum

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/banshee-data/agnite/internal/monitoring"
)

// Loader is the read side of a Store, used by sessions.
type Loader interface {
	Load(key string) (*Spectrum, error)
}

// Store loads spectra from a Source and caches them by dataset key. Each key
// is read from the source at most once while it loads successfully;
// concurrent first callers wait for the single in-flight load. Failed loads
// are not cached. Store is safe for concurrent use.
type Store struct {
	src     Source
	metrics *monitoring.Collector

	mu      sync.Mutex
	entries map[string]*entry
	loads   map[string]int
}

type entry struct {
	done chan struct{}
	spec *Spectrum
	err  error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithMetrics records source reads on c.
func WithMetrics(c *monitoring.Collector) StoreOption {
	return func(s *Store) {
		s.metrics = c
	}
}

// NewStore returns a Store reading from src.
func NewStore(src Source, opts ...StoreOption) *Store {
	s := &Store{
		src:     src,
		entries: make(map[string]*entry),
		loads:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the sanitized spectrum for key.
func (s *Store) Load(key string) (*Spectrum, error) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok {
		s.mu.Unlock()
		<-e.done
		return e.spec, e.err
	}
	e := &entry{done: make(chan struct{})}
	s.entries[key] = e
	s.loads[key]++
	s.mu.Unlock()

	start := time.Now()
	e.spec, e.err = s.read(key)
	elapsed := time.Since(start)
	s.metrics.ObserveDatasetLoad(key, elapsed, e.err)

	if e.err != nil {
		s.mu.Lock()
		if s.entries[key] == e {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		monitoring.Logf("spectrum: load %s failed after %v: %v", key, elapsed, e.err)
	} else {
		monitoring.Logf("spectrum: loaded %s (%d samples) in %v", key, e.spec.Len(), elapsed)
	}
	close(e.done)
	return e.spec, e.err
}

func (s *Store) read(key string) (*Spectrum, error) {
	t, err := s.src.ReadTable(key)
	if err != nil {
		return nil, err
	}
	return FromTable(key, t)
}

// Preload loads every key, returning the joined errors of those that failed.
func (s *Store) Preload(keys []string) error {
	var errs []error
	for _, k := range keys {
		if _, err := s.Load(k); err != nil {
			errs = append(errs, fmt.Errorf("preload %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

// Loads returns how many times key has been read from the source.
func (s *Store) Loads(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads[key]
}

// cached reports whether key has a completed, successful load.
func (s *Store) cached(key string) bool {
	s.mu.Lock()
	e, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case <-e.done:
		return e.err == nil
	default:
		return false
	}
}
