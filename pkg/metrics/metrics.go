// Package metrics defines the Prometheus collectors for lexigraph and
// exposes an HTTP handler for scraping.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/errors"
)

const namespace = "lexigraph"

// Metrics holds every collector. Create it once per process with New.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	QueriesTotal *prometheus.CounterVec
	QueryLatency *prometheus.HistogramVec

	LoadsTotal         *prometheus.CounterVec
	IndexBuildDuration prometheus.Histogram
	PopulateDuration   *prometheus.HistogramVec
	IndexedRecords     *prometheus.GaugeVec
	DroppedMembers     prometheus.Gauge

	CacheHitsTotal      prometheus.Counter
	CacheMissesTotal    prometheus.Counter
	CircuitBreakerState *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg. A nil reg means a
// fresh private registry, which keeps tests independent of each other.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, route, and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds.",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being processed.",
			},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Engine queries by operation, backend, and outcome (ok, not_found, error).",
			},
			[]string{"operation", "backend", "outcome"},
		),
		QueryLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_latency_seconds",
				Help:      "Engine query latency in seconds.",
				Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"operation", "backend"},
		),
		LoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "loads_total",
				Help:      "Engine loads by backend and path taken (snapshot, database, rebuild).",
			},
			[]string{"backend", "path"},
		),
		IndexBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "index_build_duration_seconds",
				Help:      "Time spent parsing the source document and building the index.",
				Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		PopulateDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "populate_duration_seconds",
				Help:      "Time spent writing the index to a relational backend.",
				Buckets:   []float64{0.5, 1, 5, 10, 30, 60, 120, 300},
			},
			[]string{"backend"},
		),
		IndexedRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "indexed_records",
				Help:      "Records in the loaded index by kind (lexicons, entries, senses, synsets).",
			},
			[]string{"kind"},
		),
		DroppedMembers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "index_dropped_members",
				Help:      "Synset member references that resolved to no sense in the last build.",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of lookup cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of lookup cache misses.",
			},
		),
		CircuitBreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open).",
			},
			[]string{"name"},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.QueriesTotal,
		m.QueryLatency,
		m.LoadsTotal,
		m.IndexBuildDuration,
		m.PopulateDuration,
		m.IndexedRecords,
		m.DroppedMembers,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.CircuitBreakerState,
	)
	return m
}

// ObserveQuery records one engine call.
func (m *Metrics) ObserveQuery(operation, backend string, elapsed time.Duration, err error) {
	m.QueriesTotal.WithLabelValues(operation, backend, outcome(err)).Inc()
	m.QueryLatency.WithLabelValues(operation, backend).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// RecordLoad records how an engine came to be served.
func (m *Metrics) RecordLoad(backend, path string) {
	m.LoadsTotal.WithLabelValues(backend, path).Inc()
}

// RecordBuild records an index build and the size of its result.
func (m *Metrics) RecordBuild(elapsed time.Duration, lexicons, entries, senses, synsets, droppedMembers int) {
	m.IndexBuildDuration.Observe(elapsed.Seconds())
	m.IndexedRecords.WithLabelValues("lexicons").Set(float64(lexicons))
	m.IndexedRecords.WithLabelValues("entries").Set(float64(entries))
	m.IndexedRecords.WithLabelValues("senses").Set(float64(senses))
	m.IndexedRecords.WithLabelValues("synsets").Set(float64(synsets))
	m.DroppedMembers.Set(float64(droppedMembers))
}

func (m *Metrics) RecordPopulate(backend string, elapsed time.Duration) {
	m.PopulateDuration.WithLabelValues(backend).Observe(elapsed.Seconds())
}

func (m *Metrics) CacheHit()  { m.CacheHitsTotal.Inc() }
func (m *Metrics) CacheMiss() { m.CacheMissesTotal.Inc() }

// SetBreakerState publishes a breaker state using the gauge encoding above.
func (m *Metrics) SetBreakerState(name string, state int) {
	m.CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// Handler returns the scrape handler for the registry m was created with.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
