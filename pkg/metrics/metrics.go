package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	SlotComputations      *prometheus.CounterVec
	SlotsReturned         *prometheus.HistogramVec
	DiscoveryDuration     *prometheus.HistogramVec
	DiscoveryFetchFailure *prometheus.CounterVec
	InvariantViolations   *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		SlotComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_computations_total",
			Help:        "Number of slot engine invocations",
			ConstLabels: constLabels,
		}, []string{"source"}),

		SlotsReturned: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "slots_returned",
			Help:        "Number of free slots returned per computation",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 5, 10, 20, 40, 80},
		}, []string{"source"}),

		DiscoveryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "discovery_duration_seconds",
			Help:        "Discovery query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"mode"}),

		DiscoveryFetchFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "discovery_fetch_failures_total",
			Help:        "Failed fetches during discovery fan-out",
			ConstLabels: constLabels,
		}, []string{"level"}),

		InvariantViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invariant_violations_total",
			Help:        "Rejected bookings and business operations by rule",
			ConstLabels: constLabels,
		}, []string{"rule"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.SlotComputations,
		m.SlotsReturned,
		m.DiscoveryDuration,
		m.DiscoveryFetchFailure,
		m.InvariantViolations,
	)

	return m
}

// ObserveSlots учитывает одно вычисление слотов. Безопасно для nil.
func (m *Metrics) ObserveSlots(source string, count int) {
	if m == nil {
		return
	}
	m.SlotComputations.WithLabelValues(source).Inc()
	m.SlotsReturned.WithLabelValues(source).Observe(float64(count))
}

// IncFetchFailure учитывает неудачную загрузку данных при discovery. Безопасно для nil.
func (m *Metrics) IncFetchFailure(level string) {
	if m == nil {
		return
	}
	m.DiscoveryFetchFailure.WithLabelValues(level).Inc()
}

// IncViolation учитывает нарушение бизнес-правила. Безопасно для nil.
func (m *Metrics) IncViolation(rule string) {
	if m == nil {
		return
	}
	m.InvariantViolations.WithLabelValues(rule).Inc()
}

// ObserveDiscovery учитывает длительность discovery-запроса. Безопасно для nil.
func (m *Metrics) ObserveDiscovery(mode string, seconds float64) {
	if m == nil {
		return
	}
	m.DiscoveryDuration.WithLabelValues(mode).Observe(seconds)
}
