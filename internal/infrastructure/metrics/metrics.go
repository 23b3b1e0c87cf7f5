package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Spatial-API metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ursa",
			Subsystem: "spatial_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ursa",
			Subsystem: "spatial_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ToolExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ursa",
			Subsystem: "spatial_api",
			Name:      "tool_executions_total",
			Help:      "Total tool executions requested by the model",
		},
		[]string{"tool", "outcome"},
	)

	GeocodeLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ursa",
			Subsystem: "spatial_api",
			Name:      "geocode_lookups_total",
			Help:      "Total geocoding proxy lookups",
		},
		[]string{"kind"},
	)

	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ursa",
			Subsystem: "spatial_api",
			Name:      "provider_errors_total",
			Help:      "Total upstream provider call failures",
		},
		[]string{"provider"},
	)

	ConversationsSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ursa",
			Subsystem: "spatial_api",
			Name:      "conversations_swept_total",
			Help:      "Total buffered conversations evicted by the idle sweep",
		},
	)
)

// RecordRequest records one completed HTTP request.
func RecordRequest(method, endpoint, status string, duration float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}
