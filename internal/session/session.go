// Package session holds the per-user viewer state: the current viewing
// angle and the spectrum and annotations derived from it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/banshee-data/agnite/internal/agn"
	"github.com/banshee-data/agnite/internal/lines"
	"github.com/banshee-data/agnite/internal/monitoring"
	"github.com/banshee-data/agnite/internal/photometry"
	"github.com/banshee-data/agnite/internal/spectrum"
)

// ErrNoView is returned by operations that need a view before any angle
// has been accepted.
var ErrNoView = errors.New("session has no view yet")

// View is everything a renderer needs for one angle. Views are immutable;
// the Spectrum and Annotations are shared between views of one archetype.
type View struct {
	Angle          int                `json:"angle"`
	Classification agn.Classification `json:"classification"`
	Spectrum       *spectrum.Spectrum `json:"-"`
	Annotations    []lines.Annotation `json:"annotations"`
	ComputedAt     time.Time          `json:"computed_at"`
}

// Archetype is shorthand for v.Classification.Archetype.
func (v View) Archetype() agn.Archetype { return v.Classification.Archetype }

// Change describes one accepted angle change.
type Change struct {
	SessionID  string
	Angle      int
	Archetype  agn.Archetype
	DatasetKey string
	Switched   bool
	At         time.Time
}

// Recorder persists angle changes.
type Recorder interface {
	RecordChange(c Change) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(c Change) error

// RecordChange calls f.
func (f RecorderFunc) RecordChange(c Change) error { return f(c) }

// Session is one viewer's state. SetAngle calls are serialized; Current is
// lock-free and always sees a complete view.
type Session struct {
	id     string
	loader spectrum.Loader
	opts   options

	mu       sync.Mutex
	view     atomic.Pointer[View]
	lastUsed atomic.Int64
}

// New creates a session with no view. Call SetAngle to populate it.
func New(id string, loader spectrum.Loader, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newSession(id, loader, o)
}

func newSession(id string, loader spectrum.Loader, o options) *Session {
	s := &Session{id: id, loader: loader, opts: o}
	s.touch()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

func (s *Session) touch() {
	s.lastUsed.Store(s.opts.clock.Now().UnixNano())
}

// LastUsed returns when the session was last read or changed.
func (s *Session) LastUsed() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

// Current returns the visible view, or false before the first successful
// SetAngle.
func (s *Session) Current() (View, bool) {
	v := s.view.Load()
	if v == nil {
		return View{}, false
	}
	return *v, true
}

// SetAngle classifies angle and makes the matching view current.
//
// The spectrum is loaded only when the archetype changes. On any error the
// previous view stays current: an out of range angle returns an error
// matching agn.ErrOutOfRange, a failed load one matching
// spectrum.ErrDatasetNotFound or spectrum.ErrMalformedDataset.
func (s *Session) SetAngle(angle int) (View, error) {
	c, err := s.opts.classifier.Classify(angle)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	prev := s.view.Load()
	switched := prev == nil || prev.Classification.Archetype != c.Archetype

	var next View
	if switched {
		spec, err := s.loader.Load(c.DatasetKey)
		if err != nil {
			return View{}, fmt.Errorf("load %s spectrum: %w", c.Archetype, err)
		}
		next = View{
			Angle:          angle,
			Classification: c,
			Spectrum:       spec,
			Annotations:    lines.Annotations(c.Archetype),
			ComputedAt:     s.opts.clock.Now(),
		}
	} else {
		next = *prev
		next.Angle = angle
	}
	s.view.Store(&next)

	s.opts.metrics.ObserveAngleChange(c.Archetype.Slug(), switched)
	if s.opts.recorder != nil {
		err := s.opts.recorder.RecordChange(Change{
			SessionID:  s.id,
			Angle:      angle,
			Archetype:  c.Archetype,
			DatasetKey: c.DatasetKey,
			Switched:   switched,
			At:         s.opts.clock.Now(),
		})
		if err != nil {
			monitoring.Logf("session %s: record angle change: %v", s.id, err)
		}
	}
	return next, nil
}

// SEDRequest names the object the photometry service should be asked for.
func (s *Session) SEDRequest() (photometry.Request, error) {
	v, ok := s.Current()
	if !ok {
		return photometry.Request{}, ErrNoView
	}
	return photometry.Request{ObjectName: v.Classification.ObjectName}, nil
}

// SED fetches photometry for the current archetype's object and merges it
// into a renderable series.
func (s *Session) SED(ctx context.Context, svc photometry.Service) (photometry.SED, error) {
	req, err := s.SEDRequest()
	if err != nil {
		return photometry.SED{}, err
	}
	s.touch()
	pts, err := svc.Photometry(ctx, req)
	if err != nil {
		return photometry.SED{}, fmt.Errorf("photometry for %s: %w", req.ObjectName, err)
	}
	return photometry.Merge(req.ObjectName, pts), nil
}
