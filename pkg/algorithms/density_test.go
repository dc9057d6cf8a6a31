package algorithms

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestDensitySweep(t *testing.T) {
	const n = 20
	points, err := DensitySweep(context.Background(), n, NewSampler(4))
	if err != nil {
		t.Fatalf("DensitySweep failed: %v", err)
	}
	if len(points) == 0 {
		t.Fatal("Expected at least one point")
	}

	if points[0].Edges != n-1 {
		t.Errorf("Sweep should start at %d edges, got %d", n-1, points[0].Edges)
	}
	maxEdges := n * (n - 1) / 2
	for i, p := range points {
		if p.Density <= 0 || p.Density > 1 {
			t.Errorf("Point %d has density %v", i, p.Density)
		}
		if i > 0 {
			if p.Edges <= points[i-1].Edges {
				t.Errorf("Edges must grow: %v", points)
			}
			if p.Bridges == points[i-1].Bridges {
				t.Errorf("Points are recorded only when the bridge count changes: %v", points)
			}
		}
	}

	last := points[len(points)-1]
	if last.Bridges != 0 && last.Edges != maxEdges {
		t.Errorf("Sweep stopped early at %+v", last)
	}
}

func TestDensitySweep_Deterministic(t *testing.T) {
	a, _ := DensitySweep(context.Background(), 15, NewSampler(9))
	b, _ := DensitySweep(context.Background(), 15, NewSampler(9))
	if !slices.Equal(a, b) {
		t.Errorf("Same seed gave %v and %v", a, b)
	}
}

func TestDensitySweep_TinyAndCancelled(t *testing.T) {
	points, err := DensitySweep(context.Background(), 1, NewSampler(1))
	if err != nil || len(points) != 0 {
		t.Errorf("n=1 should yield no points, got %v, %v", points, err)
	}

	// Two nodes: one edge, which is a bridge, and the graph is already complete
	points, err = DensitySweep(context.Background(), 2, NewSampler(1))
	if err != nil || len(points) != 1 || points[0].Bridges != 1 || points[0].Density != 1 {
		t.Errorf("n=2 = %v, %v", points, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := DensitySweep(ctx, 10, NewSampler(1)); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
