package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripplanner_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tripplanner_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}, []string{"method", "endpoint"})

	upstreamTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripplanner_upstream_requests_total",
		Help: "Outbound requests by service and outcome",
	}, []string{"service", "outcome"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tripplanner_upstream_request_duration_seconds",
		Help:    "Outbound request latency",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"service"})

	conversionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripplanner_conversion_failures_total",
		Help: "Currency conversions that fell back to USD, by reason",
	}, []string{"reason"})

	plansGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripplanner_plans_total",
		Help: "Planning requests by result",
	}, []string{"result"})
)

// Middleware records request count and latency per route template.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			endpoint := c.Path()
			if endpoint == "" {
				endpoint = "unmatched"
			}
			method := c.Request().Method
			httpReqTotal.WithLabelValues(method, endpoint, strconv.Itoa(c.Response().Status)).Inc()
			httpLatency.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

func ObserveUpstream(service, outcome string, took time.Duration) {
	upstreamTotal.WithLabelValues(service, outcome).Inc()
	upstreamLatency.WithLabelValues(service).Observe(took.Seconds())
}

func ConversionFailed(reason string) {
	conversionFailures.WithLabelValues(reason).Inc()
}

func PlanFinished(result string) {
	plansGenerated.WithLabelValues(result).Inc()
}
