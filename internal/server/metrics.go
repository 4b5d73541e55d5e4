package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	sessionsStartedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teaching_sessions_started_total",
			Help: "Total number of lesson-creation sessions started",
		},
		[]string{"mode"},
	)

	planGenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_plan_generation_total",
			Help: "Total number of lesson plan generation attempts",
		},
		[]string{"status"},
	)

	planCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_plan_cache_requests_total",
			Help: "Lesson plan cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

// metricsMiddleware records request counts, latency, and in-flight gauge
// per routed endpoint.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		c.Next()

		httpRequestsInFlight.Dec()
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func recordSessionStarted(mode string) {
	sessionsStartedTotal.WithLabelValues(mode).Inc()
}

func recordPlanGeneration(success bool) {
	status := "success"
	if !success {
		status = "failed"
	}
	planGenerationTotal.WithLabelValues(status).Inc()
}

func recordPlanCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	planCacheHitsTotal.WithLabelValues(outcome).Inc()
}
