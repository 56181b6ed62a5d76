package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "address_api",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "address_api",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Proximity query metrics
	ProximityCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "address_api",
		Subsystem: "proximity",
		Name:      "candidates_scanned",
		Help:      "Addresses compared against the query radius per proximity query",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	ProximityMatches = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "address_api",
		Subsystem: "proximity",
		Name:      "matches",
		Help:      "Addresses returned per proximity query",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})
)

// ObserveProximityScan records the size of one full-table proximity scan.
func ObserveProximityScan(scanned, matched int) {
	ProximityCandidates.Observe(float64(scanned))
	ProximityMatches.Observe(float64(matched))
}

// Middleware records request metrics, labelled by route pattern.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus /metrics endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
