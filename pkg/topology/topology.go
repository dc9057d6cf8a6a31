// Package topology builds small graphs with known cut vertices and cut edges.
// They serve as fixtures for tests and as the self-test suite of the CLI.
package topology

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-resilience/pkg/graph"
)

// ErrTooFewNodes is returned when a constructor is asked for a graph smaller
// than its family allows
var ErrTooFewNodes = errors.New("too few nodes")

// Minimum sizes per family
const (
	minPathNodes     = 1
	minStarLeaves    = 1
	minCycleNodes    = 3
	minCompleteNodes = 1
	minWheelNodes    = 4 // outer cycle of n-1 >= 3
)

func tooFew(method string, n, minimum int) error {
	return fmt.Errorf("%s: n=%d < min=%d: %w", method, n, minimum, ErrTooFewNodes)
}

// mustAdd inserts edges that are distinct by construction
func mustAdd(g *graph.Graph, u, v uint64) {
	if _, err := g.AddEdge(u, v); err != nil {
		panic(fmt.Sprintf("topology: AddEdge(%d, %d): %v", u, v, err))
	}
}

// Path returns 0 - 1 - ... - (n-1)
func Path(n int) (*graph.Graph, error) {
	if n < minPathNodes {
		return nil, tooFew("Path", n, minPathNodes)
	}
	g := graph.NewWithCapacity(n, n-1)
	g.AddNode(0)
	for i := 1; i < n; i++ {
		mustAdd(g, uint64(i-1), uint64(i))
	}
	return g, nil
}

// Star returns hub 0 joined to leaves 1..k
func Star(k int) (*graph.Graph, error) {
	if k < minStarLeaves {
		return nil, tooFew("Star", k, minStarLeaves)
	}
	g := graph.NewWithCapacity(k+1, k)
	for i := 1; i <= k; i++ {
		mustAdd(g, 0, uint64(i))
	}
	return g, nil
}

// Cycle returns the ring 0 - 1 - ... - (n-1) - 0
func Cycle(n int) (*graph.Graph, error) {
	if n < minCycleNodes {
		return nil, tooFew("Cycle", n, minCycleNodes)
	}
	g := graph.NewWithCapacity(n, n)
	for i := 0; i < n; i++ {
		mustAdd(g, uint64(i), uint64((i+1)%n))
	}
	return g, nil
}

// Complete returns K_n on nodes 0..n-1
func Complete(n int) (*graph.Graph, error) {
	if n < minCompleteNodes {
		return nil, tooFew("Complete", n, minCompleteNodes)
	}
	g := graph.NewWithCapacity(n, n*(n-1)/2)
	g.AddNode(0)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			mustAdd(g, uint64(i), uint64(j))
		}
	}
	return g, nil
}

// Wheel returns W_n: a ring on 0..n-2 plus hub n-1 joined to every ring node
func Wheel(n int) (*graph.Graph, error) {
	if n < minWheelNodes {
		return nil, tooFew("Wheel", n, minWheelNodes)
	}
	rim := n - 1
	hub := uint64(rim)
	g := graph.NewWithCapacity(n, 2*rim)
	for i := 0; i < rim; i++ {
		mustAdd(g, uint64(i), uint64((i+1)%rim))
		mustAdd(g, hub, uint64(i))
	}
	return g, nil
}

// Petersen returns the Petersen graph: outer pentagon 0..4, spokes to 5..9,
// inner pentagram on 5..9
func Petersen() *graph.Graph {
	g := graph.NewWithCapacity(10, 15)
	for i := uint64(0); i < 5; i++ {
		mustAdd(g, i, (i+1)%5)
	}
	for i := uint64(0); i < 5; i++ {
		mustAdd(g, i, i+5)
	}
	for i := uint64(0); i < 5; i++ {
		mustAdd(g, 5+i, 5+(i+2)%5)
	}
	return g
}

// SmallNetwork returns the triangle {0, 1, 2} with the tail 0 - 3 - 4
func SmallNetwork() *graph.Graph {
	g := graph.NewWithCapacity(5, 5)
	mustAdd(g, 1, 0)
	mustAdd(g, 0, 2)
	mustAdd(g, 2, 1)
	mustAdd(g, 0, 3)
	mustAdd(g, 3, 4)
	return g
}

// Benchmark is a named graph with its known cut vertices and cut edges
type Benchmark struct {
	Name               string
	Graph              *graph.Graph
	ArticulationPoints []uint64
	// Bridges as endpoint pairs, any orientation
	Bridges [][2]uint64
}

// Benchmarks returns the self-test suite: the small network plus path, star,
// complete, cycle and wheel graphs on n nodes, and the Petersen graph
func Benchmarks(n int) ([]Benchmark, error) {
	if n < minWheelNodes {
		return nil, tooFew("Benchmarks", n, minWheelNodes)
	}

	path, _ := Path(n)
	star, _ := Star(n - 1)
	complete, _ := Complete(n)
	cycle, _ := Cycle(n)
	wheel, _ := Wheel(n)

	pathAPs := make([]uint64, 0, n-2)
	for i := 1; i < n-1; i++ {
		pathAPs = append(pathAPs, uint64(i))
	}
	pathBridges := make([][2]uint64, 0, n-1)
	for i := 0; i < n-1; i++ {
		pathBridges = append(pathBridges, [2]uint64{uint64(i), uint64(i + 1)})
	}
	starBridges := make([][2]uint64, 0, n-1)
	for i := 1; i < n; i++ {
		starBridges = append(starBridges, [2]uint64{0, uint64(i)})
	}

	return []Benchmark{
		{
			Name:               "Small Network",
			Graph:              SmallNetwork(),
			ArticulationPoints: []uint64{0, 3},
			Bridges:            [][2]uint64{{0, 3}, {3, 4}},
		},
		{Name: fmt.Sprintf("Path P%d", n), Graph: path, ArticulationPoints: pathAPs, Bridges: pathBridges},
		{Name: fmt.Sprintf("Star K1,%d", n-1), Graph: star, ArticulationPoints: []uint64{0}, Bridges: starBridges},
		{Name: fmt.Sprintf("Complete K%d", n), Graph: complete},
		{Name: fmt.Sprintf("Cycle C%d", n), Graph: cycle},
		{Name: fmt.Sprintf("Wheel W%d", n), Graph: wheel},
		{Name: "Petersen", Graph: Petersen()},
	}, nil
}
