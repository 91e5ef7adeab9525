package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cotlens_provider_fetches_total",
				Help: "Total number of upstream report fetches",
			},
			[]string{"symbol", "report"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cotlens_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cotlens_cache_hits_total",
				Help: "Cache hits by layer",
			},
			[]string{"layer"},
		),
		cacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cotlens_cache_misses_total",
				Help: "Cache misses by layer",
			},
			[]string{"layer"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cotlens_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records an upstream fetch for a symbol and report type.
func (r *Recorder) RecordFetch(symbol, report string) {
	r.fetchesTotal.WithLabelValues(symbol, report).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCacheHit records a cache hit for a layer.
func (r *Recorder) RecordCacheHit(layer string) {
	r.cacheHits.WithLabelValues(layer).Inc()
}

// RecordCacheMiss records a cache miss for a layer.
func (r *Recorder) RecordCacheMiss(layer string) {
	r.cacheMisses.WithLabelValues(layer).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
