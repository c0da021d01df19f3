package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics контейнер prometheus-коллекторов сервиса
// Создается один раз в main и передается по слоям через обертки (middleware, dbmetrics)
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration   *prometheus.HistogramVec
	DBConnectionsOpen *prometheus.GaugeVec
	DBConnectionsIdle *prometheus.GaugeVec

	// Бизнес-метрики
	BookingsCreated        *prometheus.CounterVec
	BookingsCancelled      *prometheus.CounterVec
	BookingTransitions     *prometheus.CounterVec
	AvailabilityRejections *prometheus.CounterVec
	OccurrencesGenerated   prometheus.Counter
}

// New регистрирует и возвращает коллекторы метрик для сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests processed",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request processing time in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query execution time in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"state"}),

		DBConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"state"}),

		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "venue_bookings_created_total",
			Help:        "Total number of venue bookings created, by initial status",
			ConstLabels: constLabels,
		}, []string{"status"}),

		BookingsCancelled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "venue_bookings_cancelled_total",
			Help:        "Total number of venue bookings cancelled, by cancellation tier",
			ConstLabels: constLabels,
		}, []string{"tier"}),

		BookingTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "venue_booking_transitions_total",
			Help:        "Total number of booking lifecycle transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),

		AvailabilityRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "venue_availability_rejections_total",
			Help:        "Total number of availability check rejections, by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		OccurrencesGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "venue_event_occurrences_generated_total",
			Help:        "Total number of recurring event occurrences generated",
			ConstLabels: constLabels,
		}),
	}
}

// IncBookingCreated инкрементирует счетчик созданных бронирований
func (m *Metrics) IncBookingCreated(status string) {
	m.BookingsCreated.WithLabelValues(status).Inc()
}

// IncBookingCancelled инкрементирует счетчик отмененных бронирований
func (m *Metrics) IncBookingCancelled(tier string) {
	m.BookingsCancelled.WithLabelValues(tier).Inc()
}

// IncBookingTransition инкрементирует счетчик переходов жизненного цикла
func (m *Metrics) IncBookingTransition(from, to string) {
	m.BookingTransitions.WithLabelValues(from, to).Inc()
}

// IncAvailabilityRejection инкрементирует счетчик отказов проверки доступности
func (m *Metrics) IncAvailabilityRejection(reason string) {
	m.AvailabilityRejections.WithLabelValues(reason).Inc()
}

// AddOccurrencesGenerated увеличивает счетчик сгенерированных повторений события
func (m *Metrics) AddOccurrencesGenerated(n int) {
	m.OccurrencesGenerated.Add(float64(n))
}
