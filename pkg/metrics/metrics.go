package metrics

import (
	"runtime"
	"time"
)

// Record methods are no-ops on a nil *Registry so library callers can run
// without metrics.

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordGraphLoad records an ingestion attempt and, on success, the size of
// the resulting graph
func (r *Registry) RecordGraphLoad(status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.GraphLoadsTotal.WithLabelValues(status).Inc()
	r.GraphLoadDuration.Observe(duration.Seconds())
}

// RecordIngestLines adds per-outcome line counts from one edge-list read
func (r *Registry) RecordIngestLines(edges, comments, malformed, selfLoops int) {
	if r == nil {
		return
	}
	r.IngestLinesTotal.WithLabelValues("edge").Add(float64(edges))
	r.IngestLinesTotal.WithLabelValues("comment").Add(float64(comments))
	r.IngestLinesTotal.WithLabelValues("malformed").Add(float64(malformed))
	r.IngestLinesTotal.WithLabelValues("self_loop").Add(float64(selfLoops))
}

// UpdateGraphMetrics sets the gauges describing the loaded graph
func (r *Registry) UpdateGraphMetrics(nodes, edges, components, parallelEdges, isolated int) {
	if r == nil {
		return
	}
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
	r.GraphComponents.Set(float64(components))
	r.GraphParallelEdges.Set(float64(parallelEdges))
	r.GraphIsolatedNodes.Set(float64(isolated))
}

// RecordDetection records one detector run and its result sizes
func (r *Registry) RecordDetection(duration time.Duration, articulationPoints, bridges int) {
	if r == nil {
		return
	}
	r.DetectionsTotal.Inc()
	r.DetectionDuration.Observe(duration.Seconds())
	r.ArticulationPoints.Set(float64(articulationPoints))
	r.Bridges.Set(float64(bridges))
}

// RecordSimulation records a single removal simulation of the given kind
func (r *Registry) RecordSimulation(kind string, duration time.Duration) {
	if r == nil {
		return
	}
	r.SimulationsTotal.WithLabelValues(kind).Inc()
	r.SimulationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordSeverity counts one classified impact record
func (r *Registry) RecordSeverity(kind, severity string) {
	if r == nil {
		return
	}
	r.SeverityTotal.WithLabelValues(kind, severity).Inc()
}

// RecordSweep records the wall time of a whole sweep
func (r *Registry) RecordSweep(sweep string, duration time.Duration) {
	if r == nil {
		return
	}
	r.SweepDuration.WithLabelValues(sweep).Observe(duration.Seconds())
}

// RecordMultiSweep records a finished multi-node sweep
func (r *Registry) RecordMultiSweep(trials, maxComponents int) {
	if r == nil {
		return
	}
	r.MultiSweepTrialsTotal.Add(float64(trials))
	r.MultiSweepMaxComponents.Set(float64(maxComponents))
}

// RecordAnalysis counts one full analysis by status ("success", "error")
func (r *Registry) RecordAnalysis(status string) {
	if r == nil {
		return
	}
	r.AnalysesTotal.WithLabelValues(status).Inc()
}

// UpdateSystemMetrics refreshes uptime and runtime gauges
func (r *Registry) UpdateSystemMetrics(startedAt time.Time) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	r.UptimeSeconds.Set(time.Since(startedAt).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(ms.Alloc))
	r.MemorySysBytes.Set(float64(ms.Sys))
}

// RecordResponseSize observes the size of one HTTP response body
func (r *Registry) RecordResponseSize(method, path string, size float64) {
	if r == nil {
		return
	}
	r.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(size)
}

// IncHTTPRequestsInFlight marks the start of a request
func (r *Registry) IncHTTPRequestsInFlight() {
	if r == nil {
		return
	}
	r.HTTPRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight marks the end of a request
func (r *Registry) DecHTTPRequestsInFlight() {
	if r == nil {
		return
	}
	r.HTTPRequestsInFlight.Dec()
}
