package http

import (
	"strconv"
	"time"

	"fulfillment/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP and command outcome collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	outcomes     *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg and serves them from gatherer.
// Tests pass a fresh prometheus.NewRegistry() for both.
func NewMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: gatherer,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_ms",
				Help:    "Duration of HTTP requests in ms",
				Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
			},
			[]string{"method", "path"},
		),
		outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_command_outcomes_total",
				Help: "Outcomes of order commands by command and outcome tag",
			},
			[]string{"command", "outcome"},
		),
	}
}

// Middleware counts requests by route pattern, not by raw path.
func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		path := c.Path()
		if path == "" {
			path = c.Request().URL.Path
		}
		status := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
		}

		m.httpRequests.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Request().Method, path).
			Observe(float64(time.Since(start).Milliseconds()))
		return err
	}
}

// ObserveOutcome counts one command outcome.
func (m *Metrics) ObserveOutcome(command string, outcome services.Outcome) {
	m.outcomes.WithLabelValues(command, string(outcome.Tag())).Inc()
}

// Handler serves the gathered metrics in the prometheus text format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
