// Prometheus instrumentation for HTTP traffic.
//
// Labels are kept to three low-cardinality dimensions:
//
//   - method: HTTP verb
//   - path:   registered Gin route (/save, /chat, ...), falling back to the
//     raw URL path when no route matched
//   - status: numeric status code as a string
//
// Collectors register once at package load, so building multiple routers in
// one process (tests do this) reuses the same instruments.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// respSizeBuckets suit this API: small JSON replies, with the shot log
// response growing toward tens of kilobytes over a long range session.
var respSizeBuckets = []float64{
	200, 500, 1 << 10, 2 << 10, 5 << 10,
	10 << 10, 25 << 10, 50 << 10,
	100 << 10, 250 << 10,
}

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// Latency omits the status label so the histogram stays a single series
	// per route.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses in bytes.",
			Buckets: respSizeBuckets,
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize)
}

// routeLabel returns the matched route template, or the raw URL path for
// requests that hit NoRoute/NoMethod. Raw paths are bounded here because the
// API surface is flat; a parameterized API would need stricter normalization.
func routeLabel(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

// Metrics instruments each request with the collectors above: a request
// counter (method/path/status), a latency histogram, an in-flight gauge held
// across the handler, and a response size histogram. Responses that never
// write a body report size -1 and are skipped in the size histogram.
//
// Mount early so downstream aborts (rate limit, body cap) are still counted:
//
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()

		// Deferred so a panic unwinding toward Recovery still settles the
		// gauge and records the request.
		defer func() {
			httpInflight.Dec()

			method := c.Request.Method
			path := routeLabel(c)

			httpReqs.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
			httpLat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			if size := c.Writer.Size(); size >= 0 {
				httpRespSize.WithLabelValues(method, path).Observe(float64(size))
			}
		}()

		c.Next()
	}
}
