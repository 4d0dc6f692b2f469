package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec

	BookingsTotal *prometheus.CounterVec

	serviceName string
}

// New создает метрики и регистрирует их в default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query latency",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"service", "operation"},
		),
		DBQueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_query_errors_total",
				Help: "Total number of failed database queries",
			},
			[]string{"service", "operation"},
		),
		DBOpenConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_open_connections",
				Help: "Number of established database connections",
			},
			[]string{"service"},
		),
		DBInUseConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_in_use_connections",
				Help: "Number of database connections currently in use",
			},
			[]string{"service"},
		),
		BookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appointments_booking_attempts_total",
				Help: "Booking attempts by outcome (created or failure reason)",
			},
			[]string{"service", "outcome"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.BookingsTotal,
	)

	return m
}

// ServiceName возвращает имя сервиса, используемое в лейблах
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// ObserveBooking учитывает результат попытки бронирования
func (m *Metrics) ObserveBooking(outcome string) {
	m.BookingsTotal.WithLabelValues(m.serviceName, outcome).Inc()
}
