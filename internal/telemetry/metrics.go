// Package telemetry provides application-level observability for the reporting
// service.
//
// All metrics are registered against the default Prometheus registry and exposed
// on the side-channel HTTP server started by main.go:
//
//	GET http://<host>:<SVD_TELEMETRY_METRICS_PROMETHEUS_PORT>/metrics
//
// Default port: 9090. The endpoint is not part of the Gin router, so it stays off
// the public ingress and is never rate limited.
//
// HTTP metrics use c.FullPath() (the route template, e.g.
// /api/v1/reports/registrations) rather than the raw URL so user-supplied query
// strings and path segments cannot inflate label cardinality.
package telemetry

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sevadesk/sevadesk/internal/safego"
)

var (
	// HTTPRequestsTotal counts requests by method, route template, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration is a latency histogram by method and route template.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)

// Report pipeline metrics.
//
// ReportBuildsTotal is labelled by outcome: "success" when the report was served,
// "error" when the approved query failed and the request returned 500.
// PendingQueryFailuresTotal counts the silent pending-query failures that would
// otherwise be visible only in the logs; alert on rate() > 0.
var (
	ReportBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_builds_total",
			Help: "Total registration report builds, by outcome (success, error).",
		},
		[]string{"outcome"},
	)

	PendingQueryFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "report_pending_query_failures_total",
			Help: "Total pending-registration query failures absorbed by the report loader.",
		},
	)

	ExportRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_export_requests_total",
			Help: "Total export invocations, by format (spreadsheet, pdf).",
		},
		[]string{"format"},
	)
)

// DBOpenConnections tracks the connection pool size, sampled every 30 s by
// StartDBStatsCollector rather than per-request to avoid sql.DB.Stats() overhead.
var DBOpenConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "db_open_connections",
		Help: "Current number of open database connections in the pool.",
	},
)

// StartDBStatsCollector launches a background goroutine that samples sql.DB
// connection pool statistics every 30 seconds and updates the DBOpenConnections
// gauge. The goroutine exits cleanly when the database becomes unreachable,
// which happens automatically on shutdown once db.Close() runs.
//
// Call this once, immediately after db.Connect() succeeds in main.go.
func StartDBStatsCollector(db *sql.DB) {
	safego.Go(func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := db.Ping(); err != nil {
				slog.Warn("db stats collector: database unreachable, stopping collector", "error", err)
				return
			}
			DBOpenConnections.Set(float64(db.Stats().OpenConnections))
		}
	})
}
