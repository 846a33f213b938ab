// Package metrics defines Prometheus metrics for waylog.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "waylog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waylog_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waylog_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "waylog_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	TripCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "waylog_trips_total",
			Help: "Total trip count",
		},
	)

	JournalEntryCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "waylog_journal_entries_total",
			Help: "Total journal entry count",
		},
	)

	RestoresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waylog_restores_total",
			Help: "Total backup restore attempts by outcome",
		},
		[]string{"outcome"},
	)

	BackupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "waylog_backups_total",
			Help: "Total backup exports",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		WSConnections,
		TripCount, JournalEntryCount,
		RestoresTotal, BackupsTotal,
	)
}
