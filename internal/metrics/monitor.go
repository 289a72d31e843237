package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor collects pipeline and HTTP metrics on its own registry
type Monitor struct {
	registry *prometheus.Registry

	fetchTotal    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	rows          *prometheus.GaugeVec
	exports       *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
}

// Config holds metric naming
type Config struct {
	Namespace string
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{Namespace: "pulseboard"}
}

// New creates a Monitor with Go runtime and process collectors registered
func New(cfg Config) *Monitor {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Monitor{
		registry: reg,
		fetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "fetch_total",
			Help:      "Pipeline runs by outcome",
		}, []string{"pipeline", "outcome"}),
		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Pipeline run duration including normalization",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"pipeline"}),
		rows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "rows",
			Help:      "Rows produced by the latest pipeline run",
		}, []string{"pipeline"}),
		exports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "exports_total",
			Help:      "Dashboard exports by backend and result",
		}, []string{"backend", "result"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
	}
}

// RecordFetch records one pipeline run
func (m *Monitor) RecordFetch(pipeline, outcome string, duration time.Duration, rows int) {
	m.fetchTotal.WithLabelValues(pipeline, outcome).Inc()
	m.fetchDuration.WithLabelValues(pipeline).Observe(duration.Seconds())
	m.rows.WithLabelValues(pipeline).Set(float64(rows))
}

// RecordExport records one export attempt
func (m *Monitor) RecordExport(backend string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.exports.WithLabelValues(backend, result).Inc()
}

// RecordRequest records one served HTTP request
func (m *Monitor) RecordRequest(route, code string) {
	m.httpRequests.WithLabelValues(route, code).Inc()
}

// Registry returns the underlying registry
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
