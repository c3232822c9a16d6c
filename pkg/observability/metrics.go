package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// CompileTotal tracks script compilations
	CompileTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annotator_compile_total",
			Help: "Total number of annotation script compilations",
		},
		[]string{"status"}, // status: success, failed, cached
	)

	// CompileDuration measures script compilation duration in seconds
	CompileDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "annotator_compile_duration_seconds",
			Help:    "Annotation script compilation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~0.8s
		},
		[]string{"status"},
	)

	// ParseTotal tracks canonical to editor conversions
	ParseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annotator_parse_total",
			Help: "Total number of canonical script parses",
		},
		[]string{"status"}, // status: success, unsupported, unrecognized, failed
	)

	// ValidationTotal tracks script validations by mode and outcome
	ValidationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annotator_validation_total",
			Help: "Total number of annotation script validations",
		},
		[]string{"mode", "result"}, // result: valid, invalid
	)

	// CacheHits tracks compiled script cache hits
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annotator_cache_hits_total",
			Help: "Total number of compiled script cache hits",
		},
		[]string{"cache"},
	)

	// CacheMisses tracks compiled script cache misses
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annotator_cache_misses_total",
			Help: "Total number of compiled script cache misses",
		},
		[]string{"cache"},
	)

	// HTTPRequestsTotal tracks API requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annotator_http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures API request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "annotator_http_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ErrorsTotal tracks errors by component and type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annotator_errors_total",
			Help: "Total number of errors by component and type",
		},
		[]string{"component", "error_type"},
	)
)

// RecordCompile records one script compilation
func RecordCompile(status string, duration float64) {
	CompileTotal.WithLabelValues(status).Inc()
	CompileDuration.WithLabelValues(status).Observe(duration)
}

// RecordParse records one canonical script parse
func RecordParse(status string) {
	ParseTotal.WithLabelValues(status).Inc()
}

// RecordValidation records one script validation
func RecordValidation(mode, result string) {
	ValidationTotal.WithLabelValues(mode, result).Inc()
}

// RecordCacheHit records a compiled script cache hit
func RecordCacheHit(cache string) {
	CacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a compiled script cache miss
func RecordCacheMiss(cache string) {
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordHTTPRequest records one API request
func RecordHTTPRequest(method, route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

// RecordError records an error occurrence
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
