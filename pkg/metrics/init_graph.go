package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_graph_nodes",
			Help: "Number of nodes in the loaded graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_graph_edges",
			Help: "Number of undirected edges in the loaded graph",
		},
	)

	r.GraphComponents = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_graph_components",
			Help: "Connected components of the loaded graph with nothing removed",
		},
	)

	r.GraphParallelEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_graph_parallel_edges",
			Help: "Edges duplicating an existing node pair",
		},
	)

	r.GraphIsolatedNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_graph_isolated_nodes",
			Help: "Nodes with no incident edges",
		},
	)

	r.GraphLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_graph_loads_total",
			Help: "Total number of graph loads by result",
		},
		[]string{"status"},
	)

	r.GraphLoadDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resilience_graph_load_duration_seconds",
			Help:    "Time to parse and build a graph in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
		},
	)

	r.IngestLinesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_ingest_lines_total",
			Help: "Edge-list lines read by outcome (edge, comment, malformed, self_loop)",
		},
		[]string{"outcome"},
	)
}
