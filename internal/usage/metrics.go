package usage

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hrdash"

// Metrics holds the process collectors on a dedicated registry, so tests can
// create as many as they like without colliding on the default one.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rowsLoaded      *prometheus.CounterVec
	loadDuration    *prometheus.HistogramVec
	loadErrors      *prometheus.CounterVec
}

// NewMetrics registers the dashboard collectors plus the Go runtime and
// process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Dashboard API requests by route and status code.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Dashboard API request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		rowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_rows_loaded_total",
			Help:      "Employee records returned by the dataset source.",
		}, []string{"source"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Time spent loading employee records.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		loadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_load_errors_total",
			Help:      "Failed dataset loads by source and error code.",
		}, []string{"source", "code"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.rowsLoaded,
		m.loadDuration,
		m.loadErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one finished API request.
func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveLoad records a successful dataset load.
func (m *Metrics) ObserveLoad(source string, rows int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rowsLoaded.WithLabelValues(source).Add(float64(rows))
	m.loadDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObserveLoadError records a failed dataset load.
func (m *Metrics) ObserveLoadError(source, code string) {
	if m == nil {
		return
	}
	m.loadErrors.WithLabelValues(source, code).Inc()
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
