package reconcile

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors of an engine.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vreconcile").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vreconcile",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors an Engine reports to. One Metrics
// value may be shared by several engines.
type Metrics struct {
	passesTotal   *prometheus.CounterVec
	passErrors    *prometheus.CounterVec
	passDuration  *prometheus.HistogramVec
	hostOps       *prometheus.CounterVec
	mountedNodes  prometheus.Counter
	removedNodes  prometheus.Counter
	movedNodes    prometheus.Counter
	deferredTotal prometheus.Counter
}

// NewMetrics registers the engine collectors and returns them.
// Registering twice with the same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		passesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of mount and patch passes",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		passErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_errors_total",
			Help:        "Total number of passes that returned an error",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		hostOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_operations_total",
			Help:        "Total number of host adapter calls",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		mountedNodes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounted_nodes_total",
			Help:        "Total number of virtual nodes mounted",
			ConstLabels: config.ConstLabels,
		}),

		removedNodes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unmounted_nodes_total",
			Help:        "Total number of virtual nodes unmounted",
			ConstLabels: config.ConstLabels,
		}),

		movedNodes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "moved_nodes_total",
			Help:        "Total number of host nodes moved by keyed child diffs",
			ConstLabels: config.ConstLabels,
		}),

		deferredTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deferred_updates_total",
			Help:        "Total number of component updates queued behind a running pass",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) recordPass(kind string, d time.Duration, s Stats, err error) {
	if m == nil {
		return
	}
	m.passesTotal.WithLabelValues(kind).Inc()
	m.passDuration.WithLabelValues(kind).Observe(d.Seconds())
	if err != nil {
		m.passErrors.WithLabelValues(kind).Inc()
	}
	m.mountedNodes.Add(float64(s.Mounted))
	m.removedNodes.Add(float64(s.Unmounted))
	m.movedNodes.Add(float64(s.Moved))
}

func (m *Metrics) recordHostOp(op string) {
	if m == nil {
		return
	}
	m.hostOps.WithLabelValues(op).Inc()
}

func (m *Metrics) recordDeferred() {
	if m == nil {
		return
	}
	m.deferredTotal.Inc()
}
