// Package metrics exposes Prometheus collectors for the suppository service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "suppository"

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CalculationsTotal counts displacement calculations by outcome and potency mode.
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Total number of displacement calculations",
		},
		[]string{"status", "mode"},
	)

	// CalculationDuration tracks how long a calculation plus coaching takes.
	CalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Displacement calculation duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	// CapacityWarningsTotal counts results flagged by the mold capacity checks.
	CapacityWarningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capacity_warnings_total",
			Help:      "Calculations that raised a capacity flag",
		},
		[]string{"flag"},
	)

	// ChatMessagesTotal counts chat messages by how they were handled.
	ChatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_total",
			Help:      "Chat messages processed",
		},
		[]string{"outcome"},
	)

	// TextFieldsParsedTotal counts fields recognized in free text.
	TextFieldsParsedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "text_fields_parsed_total",
			Help:      "Fields extracted from chat text",
		},
		[]string{"field"},
	)

	// ChatSessionsActive tracks chat sessions held in memory.
	ChatSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chat_sessions_active",
			Help:      "Chat sessions currently held",
		},
	)

	// CircuitBreakerState reports 0 closed, 1 open, 2 half-open per breaker.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
		[]string{"cache"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		statusCode := strconv.Itoa(c.Writer.Status())
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, path, statusCode).Inc()
	}
}

// RecordCalculation records one calculation attempt.
func RecordCalculation(duration time.Duration, status, mode string) {
	CalculationDuration.Observe(duration.Seconds())
	CalculationsTotal.WithLabelValues(status, mode).Inc()
}

// RecordCapacityWarning records a capacity flag raised by a calculation.
func RecordCapacityWarning(flag string) {
	CapacityWarningsTotal.WithLabelValues(flag).Inc()
}

// RecordChatMessage records how a chat message was handled.
func RecordChatMessage(outcome string) {
	ChatMessagesTotal.WithLabelValues(outcome).Inc()
}

// RecordParsedField records a field extracted from chat text.
func RecordParsedField(field string) {
	TextFieldsParsedTotal.WithLabelValues(field).Inc()
}

// SetActiveSessions sets the number of held chat sessions.
func SetActiveSessions(n int) {
	ChatSessionsActive.Set(float64(n))
}

// SetCircuitBreakerState publishes the state of a named circuit breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheSize sets the current entry count of a cache.
func UpdateCacheSize(cache string, size int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
}
