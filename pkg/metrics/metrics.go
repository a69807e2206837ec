package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics records request-level metrics for the HTTP surface.
type APIMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewAPIMetrics registers the request metrics on the provided registerer.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		return &APIMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of handled HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &APIMetrics{requests: requests, duration: duration}
}

// ObserveRequest records one handled request.
func (a *APIMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if a == nil || a.requests == nil {
		return
	}
	a.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Inc()
	a.duration.WithLabelValues(method, normalizeLabel(route)).Observe(elapsed.Seconds())
}

// CatalogMetrics tracks feed refresh outcomes and catalog size.
type CatalogMetrics struct {
	refreshSuccess prometheus.Counter
	refreshFailure prometheus.Counter
	products       prometheus.Gauge
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	refreshSuccess := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_refresh_success_total",
		Help: "Successful catalog feed refreshes.",
	})
	refreshFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_refresh_failure_total",
		Help: "Failed catalog feed refreshes.",
	})
	products := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_products",
		Help: "Products in the current catalog snapshot.",
	})
	reg.MustRegister(refreshSuccess, refreshFailure, products)
	return &CatalogMetrics{
		refreshSuccess: refreshSuccess,
		refreshFailure: refreshFailure,
		products:       products,
	}
}

// IncRefreshSuccess counts a successful refresh and records the snapshot size.
func (c *CatalogMetrics) IncRefreshSuccess(products int) {
	if c == nil || c.refreshSuccess == nil {
		return
	}
	c.refreshSuccess.Inc()
	c.products.Set(float64(products))
}

// IncRefreshFailure counts a failed refresh.
func (c *CatalogMetrics) IncRefreshFailure() {
	if c == nil || c.refreshFailure == nil {
		return
	}
	c.refreshFailure.Inc()
}

// OrderMetrics tracks order dispatch outcomes.
type OrderMetrics struct {
	dispatched prometheus.Counter
	truncated  prometheus.Counter
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	dispatched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_dispatched_total",
		Help: "Orders handed off to the messaging channel.",
	})
	truncated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_truncated_total",
		Help: "Dispatched orders whose message hit the length cap.",
	})
	reg.MustRegister(dispatched, truncated)
	return &OrderMetrics{dispatched: dispatched, truncated: truncated}
}

// IncDispatched counts one dispatched order.
func (o *OrderMetrics) IncDispatched(truncated bool) {
	if o == nil || o.dispatched == nil {
		return
	}
	o.dispatched.Inc()
	if truncated {
		o.truncated.Inc()
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
