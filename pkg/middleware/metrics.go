package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vdomkit/pkg/render"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vdomkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for cycle duration.
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

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vdomkit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the Prometheus metrics of vdomkit.
type Collector struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
	regions        *prometheus.CounterVec
	patchBytes     prometheus.Counter
	hooksAttached  prometheus.Counter
	mergePoints    prometheus.Counter
	streamClients  prometheus.Gauge
	broadcasts     prometheus.Counter
}

// globalMetrics is created on the first call to Prometheus. Metrics can only
// be registered once per registry, so later calls share it.
var (
	globalMetrics   *Collector
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *Collector {
	factory := promauto.With(config.Registry)

	return &Collector{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of render cycles",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render cycle duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of failed render cycles",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "code"}),

		regions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "regions_patched_total",
			Help:        "Total number of host elements whose content was replaced",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		patchBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patch_bytes_total",
			Help:        "Total bytes of markup written to the host document",
			ConstLabels: config.ConstLabels,
		}),

		hooksAttached: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hooks_attached_total",
			Help:        "Total number of event handlers attached",
			ConstLabels: config.ConstLabels,
		}),

		mergePoints: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "merge_points_total",
			Help:        "Total number of merge points found by Diff",
			ConstLabels: config.ConstLabels,
		}),

		streamClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "stream_clients",
			Help:        "Number of connected patch stream clients",
			ConstLabels: config.ConstLabels,
		}),

		broadcasts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_broadcast_total",
			Help:        "Total number of patches broadcast to stream clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that records metrics for every render cycle.
//
// The collectors are created and registered on the first call. Later calls
// reuse them and ignore their options (registry, namespace, buckets, labels).
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	r := render.New(doc, render.WithMiddleware(
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
func Prometheus(opts ...MetricsOption) render.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return render.MiddlewareFunc(func(c *render.Cycle, next func() error) error {
		kind := string(c.Kind)
		start := time.Now()

		err := next()

		m.renderDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.renderErrors.WithLabelValues(kind, errorCode(err)).Inc()
		}
		m.rendersTotal.WithLabelValues(kind, status).Inc()

		m.regions.WithLabelValues(kind).Add(float64(c.Regions))
		m.patchBytes.Add(float64(c.Bytes))
		m.hooksAttached.Add(float64(c.Hooks))
		m.mergePoints.Add(float64(c.Merges))

		return err
	})
}

// GetMetrics returns the collector, or nil before Prometheus was called.
func GetMetrics() *Collector {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}

// RecordClientConnect records a patch stream client connecting.
func RecordClientConnect() {
	if m := GetMetrics(); m != nil {
		m.streamClients.Inc()
	}
}

// RecordClientDisconnect records a patch stream client leaving.
func RecordClientDisconnect() {
	if m := GetMetrics(); m != nil {
		m.streamClients.Dec()
	}
}

// RecordBroadcast records a patch sent to count stream clients.
func RecordBroadcast(count int) {
	if m := GetMetrics(); m != nil {
		m.broadcasts.Add(float64(count))
	}
}
