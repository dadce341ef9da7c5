package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	ReservationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_attempts_total",
			Help: "Reservation attempts by outcome",
		},
		[]string{"result"},
	)
	HoldsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "holds_created_total",
			Help: "Provisional holds created",
		},
	)
	IntervalsReleased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intervals_released_total",
			Help: "Booked intervals removed via order release",
		},
	)
)

// Reservation attempt outcomes.
const (
	ResultCommitted = "committed"
	ResultConflict  = "conflict"
	ResultTimeout   = "timeout"
	ResultInvalid   = "invalid"
	ResultError     = "error"
)

func Middleware(c *gin.Context) {
	if c.Request.URL.Path == "/metrics" {
		c.Next()
		return
	}
	start := time.Now()
	c.Next()
	duration := time.Since(start).Seconds()
	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	status := strconv.Itoa(c.Writer.Status())
	RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	RequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
}
