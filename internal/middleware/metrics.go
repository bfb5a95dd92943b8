package middleware

import (
	"database/sql"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "notes"

// route label values for requests that never reach a notes route
const (
	routeUnmatched = "unmatched"
	routePreflight = "preflight"
)

// apiMetrics groups the gateway's request instruments under notes_api_*
type apiMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

var gatewayMetrics = apiMetrics{
	requests: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Notes API requests by route template, method and status code",
	}, []string{"route", "method", "code"}),

	// note rows are small, so everything interesting happens well under a second
	latency: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Notes API latency by route template",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"route", "method"}),

	inFlight: promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "api",
		Name:      "in_flight_requests",
		Help:      "Notes API requests currently being served",
	}),
}

func (m apiMetrics) observe(route, method string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Metrics records every request except scrapes of /metrics itself
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		gatewayMetrics.inFlight.Inc()
		defer gatewayMetrics.inFlight.Dec()

		c.Next()

		gatewayMetrics.observe(routeLabel(c), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}

// routeLabel is the matched route template (/api/notes/:id), so note ids never become label values
func routeLabel(c *gin.Context) string {
	if c.Request.Method == http.MethodOptions {
		return routePreflight
	}
	if route := c.FullPath(); route != "" {
		return route
	}
	return routeUnmatched
}

// Connection pool gauges are read from database/sql at scrape time.
var (
	poolMu    sync.RWMutex
	poolStats func() sql.DBStats

	_ = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "db",
		Name:      "open_connections",
		Help:      "Open connections to the notes datastore",
	}, func() float64 { return float64(readPool().OpenConnections) })

	_ = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "db",
		Name:      "in_use_connections",
		Help:      "Notes datastore connections currently running a query",
	}, func() float64 { return float64(readPool().InUse) })
)

// ObserveDBPool points the db gauges at a pool's Stats method. Passing nil detaches them.
func ObserveDBPool(stats func() sql.DBStats) {
	poolMu.Lock()
	poolStats = stats
	poolMu.Unlock()
}

func readPool() sql.DBStats {
	poolMu.RLock()
	defer poolMu.RUnlock()
	if poolStats == nil {
		return sql.DBStats{}
	}
	return poolStats()
}
