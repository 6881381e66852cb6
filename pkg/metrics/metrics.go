package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Результаты отправки уведомлений
const (
	ResultSent    = "sent"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
)

// Metrics набор метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	reservationsCreated prometheus.Counter
	statusTransitions   *prometheus.CounterVec
	notifications       *prometheus.CounterVec
	cleanupDeleted      prometheus.Counter
	remindersScheduled  prometheus.Counter

	registerer  prometheus.Registerer
	serviceName string
}

// New создает метрики и регистрирует их в registerer.
// В main передается prometheus.DefaultRegisterer, в тестах prometheus.NewRegistry().
func New(serviceName string, registerer prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		reservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Total number of submitted reservations",
			ConstLabels: constLabels,
		}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_status_transitions_total",
			Help:        "Reservation status changes by target status",
			ConstLabels: constLabels,
		}, []string{"status"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Email notifications by template and result",
			ConstLabels: constLabels,
		}, []string{"template", "result"}),
		cleanupDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "cleanup_deleted_reservations_total",
			Help:        "Cancelled reservations removed by the daily cleanup",
			ConstLabels: constLabels,
		}),
		remindersScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reminders_scheduled_total",
			Help:        "Reminder notifications scheduled by the daily cleanup",
			ConstLabels: constLabels,
		}),
		registerer:  registerer,
		serviceName: serviceName,
	}

	registerer.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.reservationsCreated,
		m.statusTransitions,
		m.notifications,
		m.cleanupDeleted,
		m.remindersScheduled,
	)

	return m
}

// RegisterDBStats регистрирует сборщик статистики пула соединений
func (m *Metrics) RegisterDBStats(db *sql.DB, dbName string) error {
	return m.registerer.Register(collectors.NewDBStatsCollector(db, dbName))
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) IncReservationsCreated() {
	m.reservationsCreated.Inc()
}

func (m *Metrics) IncStatusTransition(status string) {
	m.statusTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) IncNotification(template, result string) {
	m.notifications.WithLabelValues(template, result).Inc()
}

func (m *Metrics) AddCleanupDeleted(n int) {
	m.cleanupDeleted.Add(float64(n))
}

func (m *Metrics) AddRemindersScheduled(n int) {
	m.remindersScheduled.Add(float64(n))
}
