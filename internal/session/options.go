package session

import (
	"time"

	"github.com/banshee-data/agnite/internal/agn"
	"github.com/banshee-data/agnite/internal/monitoring"
	"github.com/banshee-data/agnite/internal/timeutil"
)

// DefaultIdleTimeout is how long an untouched session survives in a Registry.
const DefaultIdleTimeout = 30 * time.Minute

type options struct {
	classifier  *agn.Classifier
	clock       timeutil.Clock
	metrics     *monitoring.Collector
	recorder    Recorder
	idleTimeout time.Duration
}

func defaultOptions() options {
	return options{
		classifier:  agn.Default(),
		clock:       timeutil.RealClock{},
		idleTimeout: DefaultIdleTimeout,
	}
}

// Option configures a Session or a Registry.
type Option func(*options)

// WithClassifier replaces the default archetype table.
func WithClassifier(c *agn.Classifier) Option {
	return func(o *options) {
		if c != nil {
			o.classifier = c
		}
	}
}

// WithClock sets the time source for view timestamps and idle eviction.
func WithClock(c timeutil.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithMetrics reports angle changes and the live session count.
func WithMetrics(m *monitoring.Collector) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithRecorder logs every accepted angle change.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithIdleTimeout sets how long a Registry keeps an unused session.
func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.idleTimeout = d
		}
	}
}
