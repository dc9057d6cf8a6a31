package algorithms

import (
	"errors"
	"testing"

	"github.com/dd0wney/cluso-resilience/pkg/topology"
)

func TestVerifyBenchmarks(t *testing.T) {
	for _, n := range []int{4, 5, 12} {
		results, err := VerifyBenchmarks(n)
		if err != nil {
			t.Fatalf("VerifyBenchmarks(%d) failed: %v", n, err)
		}
		if len(results) != 7 {
			t.Errorf("Expected 7 benchmarks, got %d", len(results))
		}
		for _, r := range results {
			if !r.Pass() {
				t.Errorf("n=%d %s failed: APs %v (want %v), bridges %v (want %v)", n, r.Name,
					r.FoundArticulationPoints, r.ExpectedArticulationPoints,
					r.FoundBridges, r.ExpectedBridges)
			}
		}
	}

	if _, err := VerifyBenchmarks(3); !errors.Is(err, topology.ErrTooFewNodes) {
		t.Errorf("Expected ErrTooFewNodes, got %v", err)
	}
}
