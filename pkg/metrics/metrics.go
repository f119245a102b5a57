package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты обращений к кэшу слотов
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Результаты инвалидации кэша
const (
	InvalidationOK    = "ok"
	InvalidationError = "error"
)

// Причины отклонения записи из-за конфликта
const (
	ConflictRecheck       = "recheck"
	ConflictExclusion     = "exclusion"
	ConflictSerialization = "serialization"
)

// Metrics коллектор метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbOpenConnections prometheus.Gauge
	dbInUse           prometheus.Gauge
	dbIdle            prometheus.Gauge
	dbWaitCount       prometheus.Gauge

	slotsCacheRequests      *prometheus.CounterVec
	slotsCacheInvalidations *prometheus.CounterVec

	bookingConflicts *prometheus.CounterVec
}

// New регистрирует метрики в reg с префиксом namespace
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_open_connections",
			Help:      "Number of established connections",
		}),
		dbInUse: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_in_use_connections",
			Help:      "Number of connections currently in use",
		}),
		dbIdle: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_idle_connections",
			Help:      "Number of idle connections",
		}),
		dbWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for",
		}),

		slotsCacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slots_cache_requests_total",
			Help:      "Slot cache lookups by result",
		}, []string{"result"}),
		slotsCacheInvalidations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slots_cache_invalidations_total",
			Help:      "Slot cache invalidations by result",
		}, []string{"result"}),

		bookingConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Booking writes rejected as conflicts, by reason",
		}, []string{"reason"}),
	}
}

// ObserveHTTPRequest учитывает один HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery учитывает время выполнения запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConnections.Set(float64(stats.OpenConnections))
	m.dbInUse.Set(float64(stats.InUse))
	m.dbIdle.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

// IncSlotsCache учитывает обращение к кэшу слотов (CacheHit, CacheMiss, CacheError)
func (m *Metrics) IncSlotsCache(result string) {
	if m == nil {
		return
	}
	m.slotsCacheRequests.WithLabelValues(result).Inc()
}

// IncSlotsInvalidation учитывает инвалидацию кэша слотов
func (m *Metrics) IncSlotsInvalidation(result string) {
	if m == nil {
		return
	}
	m.slotsCacheInvalidations.WithLabelValues(result).Inc()
}

// IncBookingConflict учитывает отклонённую из-за конфликта запись
func (m *Metrics) IncBookingConflict(reason string) {
	if m == nil {
		return
	}
	m.bookingConflicts.WithLabelValues(reason).Inc()
}
