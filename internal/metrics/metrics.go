// Package metrics holds the service's prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitshop_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fitshop_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitshop_orders_created_total",
		Help: "Orders committed.",
	})

	OrdersFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitshop_orders_failed_total",
		Help: "Order transactions rolled back, by reason.",
	}, []string{"reason"})

	TipsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitshop_ai_tips_total",
		Help: "AI tips responses by the source that produced them.",
	}, []string{"source"})

	CatalogCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitshop_catalog_cache_total",
		Help: "Catalog cache lookups by result (hit, miss, error).",
	}, []string{"result"})
)

// GinMiddleware records request counts and latency keyed by the route
// pattern, not the raw path, to keep label cardinality bounded.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
