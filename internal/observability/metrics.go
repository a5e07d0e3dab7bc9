package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Load result label values.
const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// Metrics holds the Prometheus metrics for configuration loading.
type Metrics struct {
	loadsTotal   *prometheus.CounterVec
	loadDuration prometheus.Histogram
	rules        prometheus.Gauge
	swapsTotal   prometheus.Counter
	buildInfo    *prometheus.GaugeVec
	registry     *prometheus.Registry
}

// NewMetrics creates a new Metrics instance backed by its own registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "avaroute"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.loadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_loads_total",
			Help:      "Total number of routing configuration loads",
		},
		[]string{"result"},
	)

	m.loadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "config_load_duration_seconds",
			Help:      "Time spent reading and validating the routing configuration",
			Buckets: []float64{
				.0005, .001, .005, .01, .025,
				.05, .1, .25, .5, 1,
			},
		},
	)

	m.rules = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "routing_rules",
			Help:      "Number of rules in the active routing table",
		},
	)

	m.swapsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_swaps_total",
			Help:      "Total number of routing table replacements",
		},
	)

	m.buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Build information",
		},
		[]string{"version", "commit", "build_time"},
	)

	m.registry.MustRegister(
		m.loadsTotal,
		m.loadDuration,
		m.rules,
		m.swapsTotal,
		m.buildInfo,
	)

	// Vec metrics only appear after the first WithLabelValues call.
	m.loadsTotal.WithLabelValues(resultSuccess)
	m.loadsTotal.WithLabelValues(resultFailure)

	return m
}

// RecordLoad records the outcome and duration of one configuration load.
func (m *Metrics) RecordLoad(success bool, duration time.Duration) {
	result := resultSuccess
	if !success {
		result = resultFailure
	}
	m.loadsTotal.WithLabelValues(result).Inc()
	m.loadDuration.Observe(duration.Seconds())
}

// RecordSwap records installation of a new routing table.
func (m *Metrics) RecordSwap(rules int) {
	m.swapsTotal.Inc()
	m.rules.Set(float64(rules))
}

// SetBuildInfo sets the build information metric.
func (m *Metrics) SetBuildInfo(version, commit, buildTime string) {
	m.buildInfo.WithLabelValues(version, commit, buildTime).Set(1)
}

// Handler returns an HTTP handler for the metrics endpoint. Metrics
// registered with the default registry (promauto, Go and process
// collectors) are served as well.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(
		prometheus.Gatherers{m.registry, prometheus.DefaultGatherer},
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	)
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
