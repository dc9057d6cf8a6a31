package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resilience"

// initServerMetrics registers the collectors only the API server feeds
func (r *Registry) initServerMetrics() {
	factory := promauto.With(r.registry)
	route := []string{"method", "path", "status"}

	r.HTTPRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "API requests by method, route pattern and status code",
	}, route)
	r.HTTPRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "API request latency; analyze requests dominate the upper buckets",
		Buckets:   []float64{.001, .005, .025, .1, .5, 2.5, 10, 60},
	}, route)
	r.HTTPRequestsInFlight = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "API requests currently being served",
	})
	r.HTTPResponseSizeBytes = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "API response body size",
		Buckets:   prometheus.ExponentialBuckets(128, 8, 6),
	}, []string{"method", "path"})

	r.UptimeSeconds = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "uptime_seconds",
		Help:      "Seconds since the server loaded its graph",
	})
	r.GoRoutines = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "goroutines",
		Help:      "Live goroutines, sampled with the graph gauges",
	})
	r.MemoryAllocBytes = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "memory_alloc_bytes",
		Help:      "Heap bytes allocated",
	})
	r.MemorySysBytes = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "memory_sys_bytes",
		Help:      "Bytes obtained from the OS",
	})
}
