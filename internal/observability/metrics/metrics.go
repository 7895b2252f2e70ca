// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application-level instruments. Label sets stay
// low-cardinality: routes, statuses and short reason codes only.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	ordersQuoted    prometheus.Counter
	ordersSubmitted prometheus.Counter
	ordersBlocked   *prometheus.CounterVec
	allocationRuns  prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderdesk_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orderdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		ordersQuoted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderdesk_orders_quoted_total",
			Help: "Order quotes computed.",
		}),
		ordersSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderdesk_orders_submitted_total",
			Help: "Orders accepted and persisted.",
		}),
		ordersBlocked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderdesk_orders_blocked_total",
			Help: "Order submissions rejected by validation, by rule.",
		}, []string{"reason"}),
		allocationRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderdesk_promotion_allocations_total",
			Help: "Promotion slab allocations computed.",
		}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.ordersQuoted,
		m.ordersSubmitted,
		m.ordersBlocked,
		m.allocationRuns,
	)
	return m
}

func (m *Metrics) RecordOrderQuoted() {
	if m == nil {
		return
	}
	m.ordersQuoted.Inc()
}

func (m *Metrics) RecordOrderSubmitted() {
	if m == nil {
		return
	}
	m.ordersSubmitted.Inc()
}

func (m *Metrics) RecordOrderBlocked(reason string) {
	if m == nil {
		return
	}
	m.ordersBlocked.WithLabelValues(strings.TrimSpace(reason)).Inc()
}

func (m *Metrics) RecordAllocationRun() {
	if m == nil {
		return
	}
	m.allocationRuns.Inc()
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// GinMiddleware records request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		if strings.EqualFold(route, "/metrics") {
			return
		}

		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
