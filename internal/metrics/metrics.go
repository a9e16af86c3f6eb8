package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scholarship_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scholarship_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// UserDeleteReconcile counts users whose external identity was removed
	// while the store record survived.
	UserDeleteReconcile = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scholarship_user_delete_reconcile_total",
		Help: "User deletions left half done: identity removed, record kept.",
	})

	// PaymentIntents counts provider intent requests by outcome.
	PaymentIntents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scholarship_payment_intents_total",
		Help: "Payment intent requests by outcome.",
	}, []string{"outcome"})
)

// Middleware records every request against its route pattern.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
