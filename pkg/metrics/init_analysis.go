package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.DetectionsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "resilience_detections_total",
			Help: "Total number of critical-element detector runs",
		},
	)

	r.DetectionDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resilience_detection_duration_seconds",
			Help:    "Critical-element detector latency in seconds",
			Buckets: []float64{.001, .01, .1, .5, 1, 5, 10, 60},
		},
	)

	r.ArticulationPoints = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_articulation_points",
			Help: "Articulation points found by the latest detection",
		},
	)

	r.Bridges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_bridges",
			Help: "Bridges found by the latest detection",
		},
	)

	r.SimulationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_simulations_total",
			Help: "Total number of removal simulations by element kind",
		},
		[]string{"kind"},
	)

	r.SimulationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resilience_simulation_duration_seconds",
			Help:    "Single removal simulation latency in seconds",
			Buckets: []float64{.0001, .001, .01, .1, .5, 1, 5},
		},
		[]string{"kind"},
	)

	r.SeverityTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_impact_severity_total",
			Help: "Classified impact records by element kind and severity",
		},
		[]string{"kind", "severity"},
	)

	r.SweepDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resilience_sweep_duration_seconds",
			Help:    "Sweep latency in seconds",
			Buckets: []float64{.01, .1, 1, 10, 60, 300, 1800},
		},
		[]string{"sweep"},
	)

	r.MultiSweepTrialsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "resilience_multi_sweep_trials_total",
			Help: "Total number of multi-node removal trials",
		},
	)

	r.MultiSweepMaxComponents = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_multi_sweep_max_components",
			Help: "Worst component count observed by the latest multi-node sweep",
		},
	)

	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_analyses_total",
			Help: "Total number of full analyses by result",
		},
		[]string{"status"},
	)
}
