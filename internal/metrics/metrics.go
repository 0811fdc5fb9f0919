package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for GroundLink
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// WebSocket Metrics
	WSClientsConnected prometheus.Gauge
	WSEventsBroadcast  prometheus.CounterVec
	WSSendFailures     prometheus.Counter

	// Business Metrics
	RequestsCreatedTotal prometheus.CounterVec
	ClaimsTotal          prometheus.CounterVec
	ChatMessagesTotal    prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundlink_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "groundlink_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "groundlink_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundlink_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "groundlink_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		// WebSocket Metrics
		WSClientsConnected: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "groundlink_ws_clients_connected",
				Help: "Current number of connected WebSocket subscribers",
			},
		),
		WSEventsBroadcast: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundlink_ws_events_broadcast_total",
				Help: "Total events broadcast to subscribers by event type",
			},
			[]string{"event_type"},
		),
		WSSendFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "groundlink_ws_send_failures_total",
				Help: "Total broadcast sends dropped due to dead or slow connections",
			},
		),

		// Business Metrics
		RequestsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundlink_requests_created_total",
				Help: "Total ground-service requests created by service type",
			},
			[]string{"service_type"},
		),
		ClaimsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundlink_claims_total",
				Help: "Total claim attempts by outcome (won, conflict, not_found)",
			},
			[]string{"result"},
		),
		ChatMessagesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "groundlink_chat_messages_total",
				Help: "Total chat messages posted",
			},
		),
	}
}
