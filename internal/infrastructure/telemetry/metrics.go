package telemetry

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "remeals"

// Metrics holds the Prometheus collectors for HTTP traffic and domain events.
// Each instance owns its registry so tests can create as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	impactRecords     prometheus.Counter
	deliveries        *prometheus.CounterVec
	deliveryStatus    *prometheus.CounterVec
	foodItemsExpired  prometheus.Counter
	jobRuns           *prometheus.CounterVec
	cacheLookups      *prometheus.CounterVec
}

// NewMetrics creates and registers every collector, plus the Go runtime and
// process collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		impactRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "impact",
			Name:      "records_created_total",
			Help:      "Impact records created for distributed food items.",
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "logistics",
			Name:      "deliveries_created_total",
			Help:      "Deliveries created, by delivery type.",
		}, []string{"delivery_type"}),
		deliveryStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "logistics",
			Name:      "status_changes_total",
			Help:      "Delivery status transitions, by new status.",
		}, []string{"status"}),
		foodItemsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "food",
			Name:      "items_expired_total",
			Help:      "Food items flagged as expired by the expiry sweep.",
		}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "job_runs_total",
			Help:      "Background job runs, by job and outcome.",
		}, []string{"job", "success"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "summary_lookups_total",
			Help:      "Impact summary cache lookups, by result.",
		}, []string{"result"}),
	}

	m.Registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.impactRecords,
		m.deliveries,
		m.deliveryStatus,
		m.foodItemsExpired,
		m.jobRuns,
		m.cacheLookups,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// RegisterDB exports connection pool statistics for db
func (m *Metrics) RegisterDB(db *sql.DB, dbName string) error {
	return m.Registry.Register(collectors.NewDBStatsCollector(db, dbName))
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// RequestStarted tracks an in-flight request and returns the completion hook
func (m *Metrics) RequestStarted() func(method, route string, status int) {
	start := time.Now()
	m.httpInFlight.Inc()
	return func(method, route string, status int) {
		m.httpInFlight.Dec()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// ImpactRecorded counts newly created impact records
func (m *Metrics) ImpactRecorded(n int) {
	if n > 0 {
		m.impactRecords.Add(float64(n))
	}
}

// DeliveryCreated counts a new delivery of the given type
func (m *Metrics) DeliveryCreated(deliveryType string) {
	m.deliveries.WithLabelValues(deliveryType).Inc()
}

// DeliveryStatusChanged counts a delivery moving to status
func (m *Metrics) DeliveryStatusChanged(status string) {
	m.deliveryStatus.WithLabelValues(status).Inc()
}

// FoodItemsExpired counts items flagged by the expiry sweep
func (m *Metrics) FoodItemsExpired(n int64) {
	if n > 0 {
		m.foodItemsExpired.Add(float64(n))
	}
}

// JobRun counts one background job run
func (m *Metrics) JobRun(job string, err error) {
	m.jobRuns.WithLabelValues(job, strconv.FormatBool(err == nil)).Inc()
}

// SummaryLookup counts an impact summary cache hit or miss
func (m *Metrics) SummaryLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
