package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every collector of the graph loader, the analyzer and the
// API server. Its Record methods are safe on a nil *Registry.
type Registry struct {
	// Server Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Graph Metrics
	GraphNodesTotal    prometheus.Gauge
	GraphEdgesTotal    prometheus.Gauge
	GraphComponents    prometheus.Gauge
	GraphParallelEdges prometheus.Gauge
	GraphIsolatedNodes prometheus.Gauge
	GraphLoadsTotal    *prometheus.CounterVec
	GraphLoadDuration  prometheus.Histogram

	// Ingestion Metrics
	IngestLinesTotal *prometheus.CounterVec

	// Analysis Metrics
	DetectionsTotal         prometheus.Counter
	DetectionDuration       prometheus.Histogram
	ArticulationPoints      prometheus.Gauge
	Bridges                 prometheus.Gauge
	SimulationsTotal        *prometheus.CounterVec
	SimulationDuration      *prometheus.HistogramVec
	SeverityTotal           *prometheus.CounterVec
	SweepDuration           *prometheus.HistogramVec
	MultiSweepTrialsTotal   prometheus.Counter
	MultiSweepMaxComponents prometheus.Gauge
	AnalysesTotal           *prometheus.CounterVec

	// Process Metrics, sampled by the server
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initGraphMetrics()
	r.initAnalysisMetrics()
	r.initServerMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
