package algorithms

import (
	"context"

	"github.com/dd0wney/cluso-resilience/pkg/graph"
)

// DensityPoint is one observation of the density sweep
type DensityPoint struct {
	Edges              int     `json:"edges"`
	Density            float64 `json:"density"`
	Bridges            int     `json:"bridges"`
	ArticulationPoints int     `json:"articulation_points"`
}

// DensitySweep measures how bridges disappear as a random n-node graph gets
// denser. All n(n-1)/2 pairs are shuffled; the graph starts with the first
// n-1 pairs (not necessarily a spanning tree) and gains one pair per step.
// A point is recorded whenever the bridge count changes. The sweep stops once
// no bridges remain or the graph is complete.
//
// Every step reruns the detector, so the sweep is quadratic in the pair count
// and intended for small n.
func DensitySweep(ctx context.Context, n int, rng Sampler) ([]DensityPoint, error) {
	if n < 2 {
		return []DensityPoint{}, nil
	}

	maxEdges := n * (n - 1) / 2
	pairs := make([][2]uint64, 0, maxEdges)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]uint64{uint64(i), uint64(j)})
		}
	}
	for i := len(pairs) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}

	g := graph.NewWithCapacity(n, maxEdges)
	for _, p := range pairs[:n-1] {
		if _, err := g.AddEdge(p[0], p[1]); err != nil {
			return nil, err
		}
	}

	points := []DensityPoint{}
	lastBridges := -1
	next := n - 1
	for {
		if err := ctx.Err(); err != nil {
			return points, err
		}

		critical := FindCriticalElements(g)
		bridges := len(critical.Bridges)
		if bridges != lastBridges {
			points = append(points, DensityPoint{
				Edges:              g.EdgeCount(),
				Density:            float64(g.EdgeCount()) / float64(maxEdges),
				Bridges:            bridges,
				ArticulationPoints: len(critical.ArticulationPoints),
			})
			lastBridges = bridges
		}

		if bridges == 0 || next >= len(pairs) {
			return points, nil
		}
		if _, err := g.AddEdge(pairs[next][0], pairs[next][1]); err != nil {
			return nil, err
		}
		next++
	}
}
