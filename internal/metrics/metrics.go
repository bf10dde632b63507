// Package metrics exposes warehouse counters and HTTP request metrics to
// Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wms"

// Metrics holds the registry and every collector of the service. It
// implements engine.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	MovementsTotal      *prometheus.CounterVec
	MovedUnitsTotal     *prometheus.CounterVec
	ReservationsTotal   *prometheus.CounterVec
	ReservedUnitsTotal  *prometheus.CounterVec
	CodeCollisionsTotal *prometheus.CounterVec
	LotsExpiredTotal    prometheus.Counter
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	m.MovementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_movements_total",
			Help:      "Stock movements written to the ledger",
		},
		[]string{"type"},
	)

	m.MovedUnitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_moved_units_total",
			Help:      "Units carried by ledger movements",
		},
		[]string{"type"},
	)

	m.ReservationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_operations_total",
			Help:      "Reservation operations applied to order lines",
		},
		[]string{"operation"},
	)

	m.ReservedUnitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_units_total",
			Help:      "Units touched by reservation operations",
		},
		[]string{"operation"},
	)

	m.CodeCollisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "code_collisions_total",
			Help:      "Generated codes rejected as duplicates and retried",
		},
		[]string{"kind"},
	)

	m.LotsExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lots_expired_total",
			Help:      "Lots moved to expired by the expiry job",
		},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.MovementsTotal,
		m.MovedUnitsTotal,
		m.ReservationsTotal,
		m.ReservedUnitsTotal,
		m.CodeCollisionsTotal,
		m.LotsExpiredTotal,
	)

	return m
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordMovement(movementType string, quantity int) {
	m.MovementsTotal.WithLabelValues(movementType).Inc()
	m.MovedUnitsTotal.WithLabelValues(movementType).Add(float64(quantity))
}

func (m *Metrics) RecordReservation(operation string, quantity int) {
	m.ReservationsTotal.WithLabelValues(operation).Inc()
	m.ReservedUnitsTotal.WithLabelValues(operation).Add(float64(quantity))
}

func (m *Metrics) RecordCodeCollision(kind string) {
	m.CodeCollisionsTotal.WithLabelValues(kind).Inc()
}

// RecordExpiredLots counts lots expired by one sweep.
func (m *Metrics) RecordExpiredLots(count int) {
	m.LotsExpiredTotal.Add(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Middleware records every request under its route template, so
// /api/v1/orders/:orderId is one series regardless of the id.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}
			m.RecordHTTPRequest(ctx.Request().Method, ctx.Path(), ctx.Response().Status, time.Since(start))
			return nil
		}
	}
}
