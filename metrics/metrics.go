package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts catalog API requests by status code, method and route
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bioalgodb_http_requests_total",
			Help: "Catalog API requests served, by status, method and route template",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bioalgodb_http_request_duration_seconds",
			Help:    "Time spent answering catalog API requests, in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bioalgodb_http_requests_in_progress",
			Help: "Catalog API requests currently in flight",
		},
		[]string{"method", "path"},
	)

	// RateLimiterRejections counts requests rejected by the rate limiter
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bioalgodb_rate_limiter_rejections_total",
			Help: "API requests answered 429, by limiter backend (memory or redis)",
		},
		[]string{"backend"},
	)

	// DatabaseOperationDuration is fed by the gorm callback plugin
	DatabaseOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bioalgodb_db_operation_duration_seconds",
			Help:    "Catalog store statement duration in seconds, by gorm operation and table",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	// CatalogChanges counts committed catalog mutations
	CatalogChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bioalgodb_catalog_changes_total",
			Help: "Committed creates, updates and deletes of algorithms, tools, labs and papers",
		},
		[]string{"entity", "action"},
	)

	// CatalogRecords holds the record counts seen by the last stats query
	CatalogRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bioalgodb_catalog_records",
			Help: "Algorithms, tools and papers in the catalog as of the last GET /stats",
		},
		[]string{"entity"},
	)

	// WebsocketClients tracks subscribers of the change feed
	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bioalgodb_websocket_clients",
			Help: "Websocket subscribers of the catalog change feed",
		},
	)

	// MemoryStats is sampled from the Go runtime
	MemoryStats = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bioalgodb_memory_stats_bytes",
			Help: "API process memory in bytes (alloc, sys, heap_*)",
		},
		[]string{"type"},
	)

	// GoroutineCount tracks the number of goroutines
	GoroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bioalgodb_goroutine_count",
			Help: "Goroutines in the API process, including change feed writers",
		},
	)

	// SystemCPUUsage tracks CPU usage percentage
	SystemCPUUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bioalgodb_system_cpu_usage_percent",
			Help: "Host CPU usage percentage by core, sampled by the system metrics loop",
		},
		[]string{"core"},
	)

	// SystemDiskUsage tracks disk usage
	SystemDiskUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bioalgodb_system_disk_usage_bytes",
			Help: "Host disk usage in bytes, sampled by the system metrics loop",
		},
		[]string{"device", "mountpoint", "type"}, // type is used, free or total
	)

	// SystemLoadAverage tracks system load averages
	SystemLoadAverage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bioalgodb_system_load_average",
			Help: "Host load average, sampled by the system metrics loop",
		},
		[]string{"period"}, // 1min, 5min, 15min
	)
)

// RecordDBOperation records the duration of a database operation
func RecordDBOperation(operation string, table string, startTime time.Time) {
	duration := time.Since(startTime).Seconds()
	DatabaseOperationDuration.WithLabelValues(operation, table).Observe(duration)
}
