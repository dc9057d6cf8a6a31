package algorithms

import (
	"github.com/dd0wney/cluso-resilience/pkg/graph"
)

// IsConnected checks if all nodes in the graph are reachable from any
// starting node. An empty graph is considered connected.
func IsConnected(g *graph.Graph) bool {
	return ConnectedComponents(g).Count <= 1
}

// IsForest reports whether the graph has no cycles. Parallel edges form a
// cycle of length two.
func IsForest(g *graph.Graph) bool {
	// An acyclic graph has exactly n - c edges for c components
	return g.EdgeCount() == g.NodeCount()-ConnectedComponents(g).Count
}

// IsTree checks if the graph is connected with exactly n-1 edges.
// An empty graph is not a tree; a single node is.
func IsTree(g *graph.Graph) bool {
	n := g.NodeCount()
	if n == 0 {
		return false
	}
	return g.EdgeCount() == n-1 && IsConnected(g)
}

// IsBipartite checks if the graph can be colored with two colors such that
// no two adjacent nodes share a color. When it can, the two color classes
// are returned in BFS discovery order.
func IsBipartite(g *graph.Graph) (bool, []uint64, []uint64) {
	n := g.NodeCount()
	partition1 := make([]uint64, 0)
	partition2 := make([]uint64, 0)

	// -1 = uncolored, 0 = color A, 1 = color B
	color := make([]int8, n)
	for i := range color {
		color[i] = -1
	}

	queue := make([]int, 0, 64)
	for start := 0; start < n; start++ {
		if color[start] != -1 {
			continue
		}

		color[start] = 0
		partition1 = append(partition1, g.NodeAt(start))
		queue = append(queue[:0], start)

		for head := 0; head < len(queue); head++ {
			current := queue[head]
			nextColor := 1 - color[current]

			for _, he := range g.Adjacent(current) {
				switch color[he.To] {
				case -1:
					color[he.To] = nextColor
					queue = append(queue, he.To)
					if nextColor == 0 {
						partition1 = append(partition1, g.NodeAt(he.To))
					} else {
						partition2 = append(partition2, g.NodeAt(he.To))
					}
				case color[current]:
					return false, nil, nil
				}
			}
		}
	}

	return true, partition1, partition2
}

// Shape summarizes structural properties that bound the detector output:
// every edge of a forest is a bridge, and a connected graph without cut
// vertices on three or more nodes is biconnected.
type Shape struct {
	Components int  `json:"components"`
	Connected  bool `json:"connected"`
	Forest     bool `json:"forest"`
	Tree       bool `json:"tree"`
	Bipartite  bool `json:"bipartite"`
}

// DescribeShape computes every Shape property
func DescribeShape(g *graph.Graph) Shape {
	components := ConnectedComponents(g).Count
	bipartite, _, _ := IsBipartite(g)
	forest := g.EdgeCount() == g.NodeCount()-components
	return Shape{
		Components: components,
		Connected:  components <= 1,
		Forest:     forest,
		Tree:       forest && components == 1,
		Bipartite:  bipartite,
	}
}
