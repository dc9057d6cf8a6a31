package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.GraphNodesTotal == nil {
		t.Error("GraphNodesTotal not initialized")
	}
	if r.SimulationsTotal == nil {
		t.Error("SimulationsTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("GET", "/v1/critical", "200", 100*time.Millisecond)
	r.RecordHTTPRequest("GET", "/v1/critical", "200", 10*time.Millisecond)
	r.RecordHTTPRequest("GET", "/v1/simulate/node", "404", 50*time.Millisecond)

	counter, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("GET", "/v1/critical", "200")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if v := counterValue(t, counter); v != 2 {
		t.Errorf("Counter value = %v, want 2", v)
	}
}

func TestRecordDetection(t *testing.T) {
	r := NewRegistry()

	r.RecordDetection(5*time.Millisecond, 2, 3)
	r.RecordDetection(5*time.Millisecond, 4, 1)

	if v := counterValue(t, r.DetectionsTotal); v != 2 {
		t.Errorf("DetectionsTotal = %v, want 2", v)
	}
	// Gauges reflect the latest run
	if v := gaugeValue(t, r.ArticulationPoints); v != 4 {
		t.Errorf("ArticulationPoints = %v, want 4", v)
	}
	if v := gaugeValue(t, r.Bridges); v != 1 {
		t.Errorf("Bridges = %v, want 1", v)
	}
}

func TestRecordSimulationAndSeverity(t *testing.T) {
	r := NewRegistry()

	r.RecordSimulation("node", time.Millisecond)
	r.RecordSimulation("node", time.Millisecond)
	r.RecordSimulation("edge", time.Millisecond)
	r.RecordSeverity("node", "critical")

	tests := []struct {
		name     string
		counter  prometheus.Counter
		expected float64
	}{
		{"node simulations", r.SimulationsTotal.WithLabelValues("node"), 2},
		{"edge simulations", r.SimulationsTotal.WithLabelValues("edge"), 1},
		{"critical nodes", r.SeverityTotal.WithLabelValues("node", "critical"), 1},
		{"low edges", r.SeverityTotal.WithLabelValues("edge", "low"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := counterValue(t, tt.counter); v != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, v, tt.expected)
			}
		})
	}
}

func TestGraphAndIngestMetrics(t *testing.T) {
	r := NewRegistry()

	r.UpdateGraphMetrics(100, 250, 3, 4, 1)
	r.RecordIngestLines(250, 2, 5, 1)
	r.RecordGraphLoad("success", time.Second)

	tests := []struct {
		name     string
		gauge    prometheus.Gauge
		expected float64
	}{
		{"GraphNodesTotal", r.GraphNodesTotal, 100},
		{"GraphEdgesTotal", r.GraphEdgesTotal, 250},
		{"GraphComponents", r.GraphComponents, 3},
		{"GraphParallelEdges", r.GraphParallelEdges, 4},
		{"GraphIsolatedNodes", r.GraphIsolatedNodes, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := gaugeValue(t, tt.gauge); v != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, v, tt.expected)
			}
		})
	}

	if v := counterValue(t, r.IngestLinesTotal.WithLabelValues("malformed")); v != 5 {
		t.Errorf("malformed lines = %v, want 5", v)
	}
	if v := counterValue(t, r.GraphLoadsTotal.WithLabelValues("success")); v != 1 {
		t.Errorf("successful loads = %v, want 1", v)
	}
}

func TestRecordMultiSweep(t *testing.T) {
	r := NewRegistry()

	r.RecordMultiSweep(100, 7)
	r.RecordMultiSweep(50, 3)

	if v := counterValue(t, r.MultiSweepTrialsTotal); v != 150 {
		t.Errorf("MultiSweepTrialsTotal = %v, want 150", v)
	}
	if v := gaugeValue(t, r.MultiSweepMaxComponents); v != 3 {
		t.Errorf("MultiSweepMaxComponents = %v, want 3", v)
	}
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry

	// None of these may panic
	r.RecordHTTPRequest("GET", "/", "200", time.Millisecond)
	r.RecordDetection(time.Millisecond, 1, 1)
	r.RecordSimulation("node", time.Millisecond)
	r.RecordSeverity("node", "low")
	r.RecordSweep("articulation_points", time.Second)
	r.RecordMultiSweep(1, 1)
	r.RecordAnalysis("success")
	r.UpdateGraphMetrics(1, 1, 1, 0, 0)
	r.UpdateSystemMetrics(time.Now())
	r.RecordResponseSize("GET", "/", 10)
	r.IncHTTPRequestsInFlight()
	r.DecHTTPRequestsInFlight()
}

func TestHTTPInFlight(t *testing.T) {
	r := NewRegistry()

	r.IncHTTPRequestsInFlight()
	r.IncHTTPRequestsInFlight()
	r.DecHTTPRequestsInFlight()

	if v := gaugeValue(t, r.HTTPRequestsInFlight); v != 1 {
		t.Errorf("HTTPRequestsInFlight = %v, want 1", v)
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()

	r.UpdateSystemMetrics(time.Now().Add(-time.Minute))

	if v := gaugeValue(t, r.UptimeSeconds); v < 60 {
		t.Errorf("UptimeSeconds = %v, want >= 60", v)
	}
	if v := gaugeValue(t, r.GoRoutines); v < 1 {
		t.Errorf("GoRoutines = %v, want >= 1", v)
	}
}

func TestMetricNamesArePrefixed(t *testing.T) {
	r := NewRegistry()
	r.RecordAnalysis("success")

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("No metric families gathered")
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "resilience_") {
			t.Errorf("Metric %q lacks resilience_ prefix", mf.GetName())
		}
	}
}
