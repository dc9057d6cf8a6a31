package algorithms

import (
	"cmp"
	"slices"

	"github.com/dd0wney/cluso-resilience/pkg/graph"
	"github.com/dd0wney/cluso-resilience/pkg/topology"
)

// BenchmarkResult compares detector output with a benchmark's known answer.
// Both sides are normalized: APs sorted, bridges as sorted (min, max) pairs.
type BenchmarkResult struct {
	Name                       string      `json:"name"`
	ArticulationPointsPass     bool        `json:"articulation_points_pass"`
	BridgesPass                bool        `json:"bridges_pass"`
	ExpectedArticulationPoints []uint64    `json:"expected_articulation_points"`
	FoundArticulationPoints    []uint64    `json:"found_articulation_points"`
	ExpectedBridges            [][2]uint64 `json:"expected_bridges"`
	FoundBridges               [][2]uint64 `json:"found_bridges"`
}

// Pass reports whether both checks passed
func (r BenchmarkResult) Pass() bool {
	return r.ArticulationPointsPass && r.BridgesPass
}

// VerifyBenchmarks runs the detector over every benchmark topology on n nodes
func VerifyBenchmarks(n int) ([]BenchmarkResult, error) {
	benchmarks, err := topology.Benchmarks(n)
	if err != nil {
		return nil, err
	}

	results := make([]BenchmarkResult, 0, len(benchmarks))
	for _, b := range benchmarks {
		critical := FindCriticalElements(b.Graph)

		expAPs := slices.Sorted(slices.Values(b.ArticulationPoints))
		gotAPs := slices.Sorted(slices.Values(critical.ArticulationPoints))
		expBridges := normalizePairs(b.Bridges)
		gotBridges := normalizeBridges(critical.Bridges)

		results = append(results, BenchmarkResult{
			Name:                       b.Name,
			ArticulationPointsPass:     slices.Equal(expAPs, gotAPs),
			BridgesPass:                slices.Equal(expBridges, gotBridges),
			ExpectedArticulationPoints: expAPs,
			FoundArticulationPoints:    gotAPs,
			ExpectedBridges:            expBridges,
			FoundBridges:               gotBridges,
		})
	}
	return results, nil
}

func normalizePairs(pairs [][2]uint64) [][2]uint64 {
	out := make([][2]uint64, len(pairs))
	for i, p := range pairs {
		out[i] = [2]uint64{min(p[0], p[1]), max(p[0], p[1])}
	}
	slices.SortFunc(out, comparePairs)
	return out
}

func normalizeBridges(bridges []graph.Edge) [][2]uint64 {
	pairs := make([][2]uint64, len(bridges))
	for i, b := range bridges {
		pairs[i] = [2]uint64{b.U, b.V}
	}
	return normalizePairs(pairs)
}

func comparePairs(a, b [2]uint64) int {
	if c := cmp.Compare(a[0], b[0]); c != 0 {
		return c
	}
	return cmp.Compare(a[1], b[1])
}
