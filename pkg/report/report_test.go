package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/graph"
	"github.com/dd0wney/cluso-resilience/pkg/topology"
)

func analyze(t *testing.T, g *graph.Graph, opts algorithms.Options) *algorithms.Report {
	t.Helper()
	rep, err := algorithms.NewAnalyzer(g, opts).Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return rep
}

func nodeRecords(sevs ...algorithms.Severity) []algorithms.ImpactRecord {
	records := make([]algorithms.ImpactRecord, len(sevs))
	for i, s := range sevs {
		records[i] = algorithms.ImpactRecord{Kind: algorithms.KindNode, Node: uint64(i), Severity: s}
	}
	return records
}

func edgeRecords(sevs ...algorithms.Severity) []algorithms.ImpactRecord {
	records := make([]algorithms.ImpactRecord, len(sevs))
	for i, s := range sevs {
		records[i] = algorithms.ImpactRecord{
			Kind:     algorithms.KindEdge,
			Edge:     graph.Edge{ID: i, U: uint64(i), V: uint64(i + 1)},
			Severity: s,
		}
	}
	return records
}

func TestSummarize_SmallNetwork(t *testing.T) {
	opts := algorithms.Options{Workers: 2, Trials: 10, SampleSize: 2, Seed: 3}
	rep := analyze(t, topology.SmallNetwork(), opts)

	s := Summarize(rep, 1)
	if s.RunID != rep.RunID || s.Nodes != 5 || s.Edges != 5 {
		t.Errorf("Unexpected header: %+v", s)
	}
	if s.ArticulationPoints != 2 || s.Bridges != 2 || s.BaselineComponents != 1 {
		t.Errorf("Expected 2 APs, 2 bridges, 1 component, got %d, %d, %d",
			s.ArticulationPoints, s.Bridges, s.BaselineComponents)
	}
	if s.NodeImpact.Total != 2 || s.NodeImpact.Count(algorithms.SeverityLow) != 2 {
		t.Errorf("Unexpected node counts: %+v", s.NodeImpact.Counts)
	}
	if len(s.NodeImpact.Top) != 1 || len(s.EdgeImpact.Top) != 1 {
		t.Errorf("Expected top 1 per kind, got %d and %d", len(s.NodeImpact.Top), len(s.EdgeImpact.Top))
	}
	if s.Multi == nil || s.Multi.Trials != 10 || s.Multi.Max != 2 {
		t.Errorf("Unexpected multi summary: %+v", s.Multi)
	}

	// Removing 0 leaves LCC 2 of 4, removing 3 leaves LCC 3 of 4
	if want := (0.5 + 0.75) / 2; s.NodeImpact.MeanRelativeLCC != want {
		t.Errorf("Expected mean relative LCC %v, got %v", want, s.NodeImpact.MeanRelativeLCC)
	}

	if s.Verdict.Primary != VulnerabilityLow {
		t.Errorf("Expected low verdict, got %s", s.Verdict.Primary)
	}
	if s.Verdict.MultiConcern != ConcernNone {
		t.Errorf("Expected no multi concern, got %s", s.Verdict.MultiConcern)
	}
}

func TestSummarize_EmptyKinds(t *testing.T) {
	rep := analyze(t, topology.Petersen(), algorithms.DefaultOptions())
	s := Summarize(rep, DefaultTopN)

	if s.NodeImpact.Total != 0 || s.NodeImpact.MeanRelativeLCC != 0 {
		t.Errorf("Expected empty node summary, got %+v", s.NodeImpact)
	}
	if s.NodeImpact.Top == nil || len(s.NodeImpact.Counts) != len(algorithms.Severities) {
		t.Error("Empty summary should still carry every severity and a non-nil top list")
	}
	if s.Multi != nil {
		t.Error("Expected no multi summary without articulation points")
	}
	if s.Verdict.Primary != VulnerabilityNone {
		t.Errorf("Expected none verdict, got %s", s.Verdict.Primary)
	}
}

func TestSummarize_StarHubIsCritical(t *testing.T) {
	g, err := topology.Star(60)
	if err != nil {
		t.Fatalf("Star failed: %v", err)
	}
	opts := algorithms.Options{Workers: 2, Trials: 5, SampleSize: 1, Seed: 1}
	s := Summarize(analyze(t, g, opts), 0)

	if s.NodeImpact.Count(algorithms.SeverityCritical) != 1 {
		t.Errorf("Expected the hub to be critical, got %+v", s.NodeImpact.Counts)
	}
	if len(s.NodeImpact.Top) != 0 {
		t.Error("topN 0 should list no records")
	}
	if s.Verdict.Primary != VulnerabilityCriticalHubs {
		t.Errorf("Expected critical hubs, got %s", s.Verdict.Primary)
	}
	// One removal always fragments the star into 60 leaves
	if s.Verdict.MultiConcern != ConcernSignificant {
		t.Errorf("Expected significant multi concern, got %s", s.Verdict.MultiConcern)
	}
}

func TestJudge(t *testing.T) {
	tests := []struct {
		name  string
		nodes []algorithms.ImpactRecord
		edges []algorithms.ImpactRecord
		want  Vulnerability
	}{
		{"nothing", nil, nil, VulnerabilityNone},
		{"critical node wins", nodeRecords(algorithms.SeverityLow, algorithms.SeverityCritical), edgeRecords(algorithms.SeverityHigh), VulnerabilityCriticalHubs},
		{"high node", nodeRecords(algorithms.SeverityHigh), edgeRecords(algorithms.SeverityHigh), VulnerabilityHighImpactNodes},
		{"high bridge", nodeRecords(algorithms.SeverityLow), edgeRecords(algorithms.SeverityHigh), VulnerabilityHighImpactBridges},
		{"moderate node", nodeRecords(algorithms.SeverityModerate), nil, VulnerabilityDistributedModerate},
		{"moderate bridge", nodeRecords(algorithms.SeverityLow), edgeRecords(algorithms.SeverityModerate), VulnerabilityDistributedModerate},
		{"only low", nodeRecords(algorithms.SeverityLow), edgeRecords(algorithms.SeverityLow), VulnerabilityLow},
		{"critical bridge without APs", nil, edgeRecords(algorithms.SeverityCritical), VulnerabilityCriticalLinks},
		{"bridges without APs", nil, edgeRecords(algorithms.SeverityLow), VulnerabilityMinorBridges},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := summarizeKind(algorithms.KindNode, tt.nodes, DefaultTopN)
			edges := summarizeKind(algorithms.KindEdge, tt.edges, DefaultTopN)
			v := Judge(&nodes, &edges, nil)
			if v.Primary != tt.want {
				t.Errorf("Judge() = %s, want %s", v.Primary, tt.want)
			}
			if v.Headline == "" || v.Detail == "" {
				t.Error("Verdict should carry a headline and detail")
			}
		})
	}
}

func TestJudge_MultiConcern(t *testing.T) {
	tests := []struct {
		max  int
		want Concern
	}{
		{1, ConcernNone},
		{10, ConcernNone},
		{11, ConcernModerate},
		{50, ConcernModerate},
		{51, ConcernSignificant},
	}

	nodes := summarizeKind(algorithms.KindNode, nil, 0)
	edges := summarizeKind(algorithms.KindEdge, nil, 0)
	for _, tt := range tests {
		v := Judge(&nodes, &edges, &MultiSummary{Trials: 1, SampleSize: 3, Max: tt.max})
		if v.MultiConcern != tt.want {
			t.Errorf("max %d: got %s, want %s", tt.max, v.MultiConcern, tt.want)
		}
		if (v.MultiConcern == ConcernNone) != (v.MultiDetail == "") {
			t.Errorf("max %d: detail %q does not match concern %s", tt.max, v.MultiDetail, v.MultiConcern)
		}
	}
}

func TestRender(t *testing.T) {
	opts := algorithms.Options{Workers: 2, Trials: 10, SampleSize: 2, Seed: 3}
	s := Summarize(analyze(t, topology.SmallNetwork(), opts), DefaultTopN)

	var buf bytes.Buffer
	if err := Render(&buf, s); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Network Resilience Report",
		s.RunID,
		"Articulation point impact",
		"Bridge impact",
		"Multi-failure simulation",
		"(3, 4)",
		"Primary vulnerability: Low",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Rendered report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("Rendering to a buffer should not emit ANSI sequences")
	}
}

func TestRender_NoCriticalElements(t *testing.T) {
	s := Summarize(analyze(t, topology.Petersen(), algorithms.DefaultOptions()), DefaultTopN)

	var buf bytes.Buffer
	if err := Render(&buf, s); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "none found") || !strings.Contains(buf.String(), "skipped") {
		t.Errorf("Expected empty sections:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	g, _ := topology.Star(4)
	s := Summarize(analyze(t, g, algorithms.Options{Workers: 1, Trials: 2, SampleSize: 1, Seed: 9}), 5)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, s); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	verdict, ok := decoded["verdict"].(map[string]any)
	if !ok || verdict["primary"] != string(VulnerabilityDistributedModerate) {
		t.Errorf("Unexpected verdict: %v", decoded["verdict"])
	}
	nodeImpact := decoded["node_impact"].(map[string]any)
	counts := nodeImpact["counts"].(map[string]any)
	// Hub removal leaves 4 leaves: +3 is moderate
	if counts["moderate"] != float64(1) {
		t.Errorf("Expected severity names as keys, got %v", counts)
	}
}

func TestRenderBenchmarks(t *testing.T) {
	results, err := algorithms.VerifyBenchmarks(8)
	if err != nil {
		t.Fatalf("VerifyBenchmarks failed: %v", err)
	}
	results = append(results, algorithms.BenchmarkResult{Name: "broken", ArticulationPointsPass: true})

	var buf bytes.Buffer
	if err := RenderBenchmarks(&buf, results); err != nil {
		t.Fatalf("RenderBenchmarks failed: %v", err)
	}
	out := buf.String()
	for _, r := range results {
		if !strings.Contains(out, r.Name) {
			t.Errorf("Missing row for %s:\n%s", r.Name, out)
		}
	}
	if !strings.Contains(out, "PASS") || !strings.Contains(out, "FAIL") {
		t.Errorf("Expected both PASS and FAIL cells:\n%s", out)
	}
}

func TestRenderDensity(t *testing.T) {
	points := []algorithms.DensityPoint{
		{Edges: 4, Density: 0.4, Bridges: 4, ArticulationPoints: 3},
		{Edges: 7, Density: 0.7, Bridges: 0, ArticulationPoints: 0},
	}

	var buf bytes.Buffer
	if err := RenderDensity(&buf, 5, points); err != nil {
		t.Fatalf("RenderDensity failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"n=5", "0.4000", "0.7000", "Bridges"} {
		if !strings.Contains(out, want) {
			t.Errorf("Missing %q:\n%s", want, out)
		}
	}
}
