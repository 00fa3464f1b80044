package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-route request counters and latencies plus a
// few domain-level counters incremented by the handlers.
type Metrics struct {
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec

	adjustments  *prometheus.CounterVec
	salesCreated prometheus.Counter
}

// NewMetrics creates and registers HTTP metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokopos_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tokopos_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		adjustments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokopos_stock_adjustments_total",
				Help: "Stock adjustments by outcome",
			},
			[]string{"result"},
		),
		salesCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tokopos_sales_created_total",
				Help: "Successfully created sales",
			},
		),
	}

	reg.MustRegister(m.requestCounter, m.requestLatency, m.adjustments, m.salesCreated)
	return m
}

// RecordAdjustment counts one stock adjustment attempt.
func (m *Metrics) RecordAdjustment(applied bool) {
	result := "applied"
	if !applied {
		result = "rejected"
	}
	m.adjustments.WithLabelValues(result).Inc()
}

// RecordSaleCreated counts one completed sale.
func (m *Metrics) RecordSaleCreated() {
	m.salesCreated.Inc()
}

// Handler returns the gin middleware recording the metrics. Routes are
// labelled by their pattern, not the raw path, to bound cardinality.
func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.requestCounter.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.requestLatency.WithLabelValues(
			c.Request.Method, route,
		).Observe(time.Since(start).Seconds())
	}
}
