package monitoring

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the viewer's Prometheus metrics. All methods are safe on
// a nil *Collector so components can run without metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	DatasetLoads       *prometheus.CounterVec
	DatasetLoadSeconds *prometheus.HistogramVec
	AngleChanges       prometheus.Counter
	ArchetypeSwitches  *prometheus.CounterVec
	ActiveSessions     prometheus.Gauge
	PhotometryRequests *prometheus.CounterVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// Prometheus registry when nil. Registering twice against the same registry
// reuses the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	loads, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agnite_dataset_loads_total",
		Help: "Spectrum dataset loads from the backing source, labeled by dataset key and result.",
	}, []string{"dataset", "result"}), "agnite_dataset_loads_total")
	if err != nil {
		return nil, err
	}
	loadSeconds, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agnite_dataset_load_seconds",
		Help:    "Time to read and sanitize one spectrum dataset.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"dataset"}), "agnite_dataset_load_seconds")
	if err != nil {
		return nil, err
	}
	angles, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agnite_angle_changes_total",
		Help: "Accepted viewing angle changes across all sessions.",
	}), "agnite_angle_changes_total")
	if err != nil {
		return nil, err
	}
	switches, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agnite_archetype_switches_total",
		Help: "Session archetype changes, labeled by the archetype switched to.",
	}, []string{"archetype"}), "agnite_archetype_switches_total")
	if err != nil {
		return nil, err
	}
	sessions, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "agnite_active_sessions",
		Help: "Sessions currently held by the registry.",
	}), "agnite_active_sessions")
	if err != nil {
		return nil, err
	}
	photometry, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agnite_photometry_requests_total",
		Help: "Requests to the photometry service, labeled by result.",
	}, []string{"result"}), "agnite_photometry_requests_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:           gatherer,
		DatasetLoads:       loads,
		DatasetLoadSeconds: loadSeconds,
		AngleChanges:       angles,
		ArchetypeSwitches:  switches,
		ActiveSessions:     sessions,
		PhotometryRequests: photometry,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveDatasetLoad records one source read of dataset.
func (c *Collector) ObserveDatasetLoad(dataset string, d time.Duration, err error) {
	if c == nil {
		return
	}
	c.DatasetLoads.WithLabelValues(dataset, resultLabel(err)).Inc()
	c.DatasetLoadSeconds.WithLabelValues(dataset).Observe(d.Seconds())
}

// ObserveAngleChange records an accepted angle change; switched is set when
// the archetype changed, in which case archetype is the new one.
func (c *Collector) ObserveAngleChange(archetype string, switched bool) {
	if c == nil {
		return
	}
	c.AngleChanges.Inc()
	if switched {
		c.ArchetypeSwitches.WithLabelValues(archetype).Inc()
	}
}

// SetActiveSessions sets the session gauge.
func (c *Collector) SetActiveSessions(n int) {
	if c == nil {
		return
	}
	c.ActiveSessions.Set(float64(n))
}

// ObservePhotometryRequest records one photometry call.
func (c *Collector) ObservePhotometryRequest(err error) {
	if c == nil {
		return
	}
	c.PhotometryRequests.WithLabelValues(resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
