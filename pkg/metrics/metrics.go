package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	SlotQueriesTotal      *prometheus.CounterVec
	BookingsCreatedTotal  *prometheus.CounterVec
	BookingsRejectedTotal *prometheus.CounterVec
	BookingsCancelled     *prometheus.CounterVec
	CacheLookupsTotal     *prometheus.CounterVec
	NotificationsTotal    *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном регистре (удобно для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUseConnections: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConnections: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: f.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		SlotQueriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_queries_total",
			Help:        "Slot availability queries by room",
			ConstLabels: labels,
		}, []string{"room"}),
		BookingsCreatedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings created by room",
			ConstLabels: labels,
		}, []string{"room"}),
		BookingsRejectedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_rejected_total",
			Help:        "Booking attempts rejected by reason",
			ConstLabels: labels,
		}, []string{"room", "reason"}),
		BookingsCancelled: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Bookings cancelled by room",
			ConstLabels: labels,
		}, []string{"room"}),
		CacheLookupsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "booked_slots_cache_lookups_total",
			Help:        "Booked slots cache lookups by result (hit, miss, error)",
			ConstLabels: labels,
		}, []string{"result"}),
		NotificationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notification dispatch attempts by kind and result",
			ConstLabels: labels,
		}, []string{"kind", "result"}),
	}
}
