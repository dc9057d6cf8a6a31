// Package report condenses an analysis run into severity counts, the most
// damaging elements and an overall verdict, and renders it for a console or
// as JSON.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
)

// DefaultTopN is the number of records listed per element kind
const DefaultTopN = 10

// KindSummary aggregates the single-element sweep of one element kind
type KindSummary struct {
	Kind   algorithms.ElementKind      `json:"kind"`
	Total  int                         `json:"total"`
	Counts map[algorithms.Severity]int `json:"counts"`
	// MeanRelativeLCC averages LargestComponentRelativeSize over all records
	MeanRelativeLCC float64                   `json:"mean_relative_lcc"`
	Top             []algorithms.ImpactRecord `json:"top"`
}

// Count returns the number of records classified s
func (k *KindSummary) Count(s algorithms.Severity) int {
	return k.Counts[s]
}

// MultiSummary is the multi-node sweep without per-trial results
type MultiSummary struct {
	Trials     int     `json:"trials"`
	SampleSize int     `json:"sample_size"`
	Mean       float64 `json:"mean_components"`
	Min        int     `json:"min_components"`
	Max        int     `json:"max_components"`
}

// Timings reports the wall time of each analysis phase
type Timings struct {
	Detection time.Duration `json:"detection"`
	Sweep     time.Duration `json:"sweep"`
	Multi     time.Duration `json:"multi"`
}

// Summary is the condensed view of one analysis run
type Summary struct {
	RunID                string    `json:"run_id"`
	StartedAt            time.Time `json:"started_at"`
	Nodes                int       `json:"nodes"`
	Edges                int       `json:"edges"`
	BaselineComponents   int       `json:"baseline_components"`
	LargestComponentSize int       `json:"largest_component_size"`
	ArticulationPoints   int       `json:"articulation_points"`
	Bridges              int       `json:"bridges"`

	NodeImpact KindSummary   `json:"node_impact"`
	EdgeImpact KindSummary   `json:"edge_impact"`
	Multi      *MultiSummary `json:"multi,omitempty"`
	Verdict    Verdict       `json:"verdict"`
	Timings    Timings       `json:"timings"`
}

// Summarize condenses rep, keeping the topN most damaging records per kind.
// topN <= 0 keeps none. rep's impact slices are expected in SortByImpact
// order, as Analyzer.Analyze returns them.
func Summarize(rep *algorithms.Report, topN int) *Summary {
	s := &Summary{
		RunID:                rep.RunID,
		StartedAt:            rep.StartedAt,
		Nodes:                rep.Nodes,
		Edges:                rep.Edges,
		BaselineComponents:   rep.Baseline.Count,
		LargestComponentSize: rep.Baseline.LargestSize,
		NodeImpact:           summarizeKind(algorithms.KindNode, rep.NodeImpacts, topN),
		EdgeImpact:           summarizeKind(algorithms.KindEdge, rep.EdgeImpacts, topN),
		Timings: Timings{
			Detection: rep.DetectionDuration,
			Sweep:     rep.SweepDuration,
			Multi:     rep.MultiDuration,
		},
	}
	if rep.Critical != nil {
		s.ArticulationPoints = len(rep.Critical.ArticulationPoints)
		s.Bridges = len(rep.Critical.Bridges)
	}
	if m := rep.Multi; m != nil {
		s.Multi = &MultiSummary{
			Trials:     m.Trials,
			SampleSize: m.SampleSize,
			Mean:       m.Mean,
			Min:        m.Min,
			Max:        m.Max,
		}
	}
	s.Verdict = Judge(&s.NodeImpact, &s.EdgeImpact, s.Multi)
	return s
}

func summarizeKind(kind algorithms.ElementKind, records []algorithms.ImpactRecord, topN int) KindSummary {
	k := KindSummary{
		Kind:   kind,
		Total:  len(records),
		Counts: make(map[algorithms.Severity]int, len(algorithms.Severities)),
		Top:    []algorithms.ImpactRecord{},
	}
	for _, sev := range algorithms.Severities {
		k.Counts[sev] = 0
	}
	if len(records) == 0 {
		return k
	}

	total := 0.0
	for _, r := range records {
		k.Counts[r.Severity]++
		total += r.LargestComponentRelativeSize
	}
	k.MeanRelativeLCC = total / float64(len(records))

	if topN > 0 {
		k.Top = append(k.Top, records[:min(topN, len(records))]...)
	}
	return k
}

// WriteJSON encodes s as indented JSON
func WriteJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
