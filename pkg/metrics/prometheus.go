// Package metrics provides Prometheus metrics for the namedeck service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Business metrics
	swipesRecorded        *prometheus.CounterVec
	candidatesCreated     *prometheus.CounterVec
	recommendationsServed prometheus.Counter
	recommendationLatency prometheus.Histogram
	suggestionRequests    prometheus.Counter
	suggestionErrors      *prometheus.CounterVec
	suggestionLatency     prometheus.Histogram

	// State gauges
	candidatesTotal prometheus.Gauge
	swipesTotal     prometheus.Gauge
	reviewersTotal  prometheus.Gauge

	// Store and HTTP performance
	storeQueryLatency   prometheus.Histogram
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "namedeck",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.swipesRecorded = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "swipes_recorded_total",
		Help: "Swipe events recorded, by decision.",
	}, []string{"decision"})

	m.candidatesCreated = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "candidates_created_total",
		Help: "Candidates inserted, by source (manual, suggested, import).",
	}, []string{"source"})

	m.recommendationsServed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "recommendations_served_total",
		Help: "Recommendation responses served.",
	})

	m.recommendationLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "recommendation_latency_ms",
		Help:    "Latency of recommendation computation in milliseconds.",
		Buckets: m.histogramBuckets,
	})

	m.suggestionRequests = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "suggestion_requests_total",
		Help: "Suggestion intake runs.",
	})

	m.suggestionErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "suggestion_errors_total",
		Help: "Suggestion intake failures, by kind (unavailable, bad_payload).",
	}, []string{"kind"})

	m.suggestionLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "suggestion_latency_ms",
		Help:    "Latency of suggestion intake runs in milliseconds.",
		Buckets: []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	})

	m.candidatesTotal = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "candidates_total",
		Help: "Candidates currently in the store.",
	})

	m.swipesTotal = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "swipes_total",
		Help: "Swipe events currently in the log.",
	})

	m.reviewersTotal = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "reviewers_total",
		Help: "Reviewers in the roster.",
	})

	m.storeQueryLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "store_query_latency_ms",
		Help:    "Latency of store operations in milliseconds.",
		Buckets: m.histogramBuckets,
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests, by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	return m
}

// GetRegistry returns the registry behind the global manager, for
// serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording on the global manager.

func RecordSwipe(decision string) { globalManager.swipesRecorded.WithLabelValues(decision).Inc() }

func RecordCandidateCreated(source string) {
	globalManager.candidatesCreated.WithLabelValues(source).Inc()
}

func RecordRecommendationServed() { globalManager.recommendationsServed.Inc() }

func RecordRecommendationLatency(ms float64) { globalManager.recommendationLatency.Observe(ms) }

func RecordSuggestionRequest() { globalManager.suggestionRequests.Inc() }

func RecordSuggestionError(kind string) {
	globalManager.suggestionErrors.WithLabelValues(kind).Inc()
}

func RecordSuggestionLatency(ms float64) { globalManager.suggestionLatency.Observe(ms) }

func UpdateCandidatesTotal(n int) { globalManager.candidatesTotal.Set(float64(n)) }

func UpdateSwipesTotal(n int) { globalManager.swipesTotal.Set(float64(n)) }

func UpdateReviewersTotal(n int) { globalManager.reviewersTotal.Set(float64(n)) }

func RecordStoreQueryLatency(ms float64) { globalManager.storeQueryLatency.Observe(ms) }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}
