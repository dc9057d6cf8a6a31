package algorithms

import (
	"github.com/dd0wney/cluso-resilience/pkg/graph"
)

// ComponentStats describes the connected components of a (filtered) graph.
type ComponentStats struct {
	Count       int `json:"count"`
	LargestSize int `json:"largest_size"`
	// Nodes is the number of visible nodes that were traversed
	Nodes int `json:"nodes"`
}

// componentCounter holds traversal scratch space so repeated simulations on
// the same graph do not reallocate. One counter per goroutine.
type componentCounter struct {
	visited []uint32
	epoch   uint32
	stack   []int
}

func newComponentCounter(g *graph.Graph) *componentCounter {
	return &componentCounter{
		visited: make([]uint32, g.NodeCount()),
		stack:   make([]int, 0, 64),
	}
}

// nextEpoch invalidates all visited marks in O(1). On wrap-around the marks
// are cleared explicitly.
func (c *componentCounter) nextEpoch() uint32 {
	c.epoch++
	if c.epoch == 0 {
		clear(c.visited)
		c.epoch = 1
	}
	return c.epoch
}

// count traverses every visible node of view, counting traversal roots.
func (c *componentCounter) count(view *graph.View) ComponentStats {
	g := view.Graph()
	if len(c.visited) < g.NodeCount() {
		c.visited = make([]uint32, g.NodeCount())
		c.epoch = 0
	}
	mark := c.nextEpoch()

	var stats ComponentStats
	for start := 0; start < g.NodeCount(); start++ {
		if c.visited[start] == mark || view.NodeExcluded(start) {
			continue
		}
		stats.Count++
		size := 0

		c.visited[start] = mark
		c.stack = append(c.stack[:0], start)
		for len(c.stack) > 0 {
			cur := c.stack[len(c.stack)-1]
			c.stack = c.stack[:len(c.stack)-1]
			size++
			for _, he := range g.Adjacent(cur) {
				if c.visited[he.To] == mark || !view.Traversable(he) {
					continue
				}
				c.visited[he.To] = mark
				c.stack = append(c.stack, he.To)
			}
		}

		stats.Nodes += size
		if size > stats.LargestSize {
			stats.LargestSize = size
		}
	}
	return stats
}

// ConnectedComponents counts the components of the whole graph and reports
// the largest one. An empty graph has zero components.
func ConnectedComponents(g *graph.Graph) ComponentStats {
	return newComponentCounter(g).count(graph.NewView(g))
}

// BaselineComponentCount is the component count with nothing removed.
func BaselineComponentCount(g *graph.Graph) int {
	return ConnectedComponents(g).Count
}
