package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/a11ykit/a11ydocs/internal/errors"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "a11ydocs").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
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

func defaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		Namespace: "a11ydocs",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	togglesTotal   *prometheus.CounterVec
	activeSessions prometheus.Gauge
	wsErrors       *prometheus.CounterVec
}

var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics registers the collectors once per process. Later calls reuse
// the first registration whatever their options.
func initMetrics(config *MetricsConfig) *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	if globalMetrics != nil {
		return globalMetrics
	}

	factory := promauto.With(config.Registry)
	globalMetrics = &metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Widget events handled, by widget option name and status.",
			ConstLabels: config.ConstLabels,
		}, []string{"widget", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Time spent handling a widget event.",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"widget"}),

		togglesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toggles_total",
			Help:        "Successful widget toggles, by hiding technique.",
			ConstLabels: config.ConstLabels,
		}, []string{"technique"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Open live sessions.",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "WebSocket connection errors, by type.",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
	return globalMetrics
}

// Prometheus returns middleware that counts and times widget events.
func Prometheus(opts ...MetricsOption) Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(config)
	}
	m := initMetrics(config)

	return func(ev *Event, next func() error) error {
		start := time.Now()
		err := next()

		name := ev.OptionName()
		m.eventDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = categorizeError(err)
		} else if ev.Widget != nil {
			recordToggle(m, ev)
		}
		m.eventsTotal.WithLabelValues(name, status).Inc()

		return err
	}
}

func recordToggle(m *metrics, ev *Event) {
	techniques := ev.Widget.Config().Techniques()
	if len(techniques) == 0 {
		m.togglesTotal.WithLabelValues("custom").Inc()
		return
	}
	for _, t := range techniques {
		m.togglesTotal.WithLabelValues(t.Name).Inc()
	}
}

// categorizeError maps an error to a bounded status label.
func categorizeError(err error) string {
	switch {
	case errors.HasCode(err, "E302"):
		return "not_found"
	case errors.HasCode(err, "E303"):
		return "rate_limited"
	case errors.HasCode(err, "E300"), errors.HasCode(err, "E301"):
		return "protocol"
	default:
		return "error"
	}
}

// RecordSessionStart records a live session opening.
func RecordSessionStart() {
	if m := current(); m != nil {
		m.activeSessions.Inc()
	}
}

// RecordSessionEnd records a live session closing.
func RecordSessionEnd() {
	if m := current(); m != nil {
		m.activeSessions.Dec()
	}
}

// RecordWebSocketError records a WebSocket error of the given type.
func RecordWebSocketError(errorType string) {
	if m := current(); m != nil {
		m.wsErrors.WithLabelValues(errorType).Inc()
	}
}

func current() *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}
