package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome значения для бизнес-счётчиков
const (
	OutcomeSuccess   = "success"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

// Metrics набор Prometheus-метрик сервиса.
// Все методы безопасны для вызова на nil (метрики выключены).
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec
	dbWaitCount     *prometheus.GaugeVec

	bookingOperations   *prometheus.CounterVec
	equipmentOperations *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		service: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database call latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),
		dbOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		dbInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		dbIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		bookingOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_operations_total",
			Help: "Booking lifecycle operations by outcome",
		}, []string{"service", "operation", "outcome"}),
		equipmentOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "equipment_operations_total",
			Help: "Equipment ledger operations by outcome",
		}, []string{"service", "operation", "outcome"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.bookingOperations,
		m.equipmentOperations,
	)

	return m
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.service, method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.service, method, route).Observe(duration.Seconds())
}

// ObserveDBCall фиксирует вызов к БД
func (m *Metrics) ObserveDBCall(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil && err != sql.ErrNoRows {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(m.service, operation, status).Observe(duration.Seconds())
}

// SetPoolStats обновляет метрики connection pool
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(m.service).Set(float64(stats.OpenConnections))
	m.dbInUseConns.WithLabelValues(m.service).Set(float64(stats.InUse))
	m.dbIdleConns.WithLabelValues(m.service).Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(m.service).Set(float64(stats.WaitCount))
}

// IncBookingOperation учитывает операцию жизненного цикла бронирования
func (m *Metrics) IncBookingOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.bookingOperations.WithLabelValues(m.service, operation, outcome).Inc()
}

// IncEquipmentOperation учитывает операцию учёта инвентаря
func (m *Metrics) IncEquipmentOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.equipmentOperations.WithLabelValues(m.service, operation, outcome).Inc()
}
