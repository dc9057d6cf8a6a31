package algorithms

import (
	"github.com/dd0wney/cluso-resilience/pkg/graph"
)

// CriticalElements holds the cut vertices and cut edges of one graph snapshot.
// It is stale once the graph is mutated.
type CriticalElements struct {
	// ArticulationPoints in node insertion order, without duplicates
	ArticulationPoints []uint64 `json:"articulation_points"`
	// Bridges in detection order; U is the DFS parent, V the child
	Bridges []graph.Edge `json:"bridges"`
}

// IsArticulationPoint reports whether id is a cut vertex
func (c *CriticalElements) IsArticulationPoint(id uint64) bool {
	for _, ap := range c.ArticulationPoints {
		if ap == id {
			return true
		}
	}
	return false
}

// IsBridge reports whether {u, v} is a cut edge
func (c *CriticalElements) IsBridge(u, v uint64) bool {
	for _, b := range c.Bridges {
		if b.Joins(u, v) {
			return true
		}
	}
	return false
}

// dfsFrame is one suspended call of the low-link DFS.
type dfsFrame struct {
	node       int // dense index
	parentEdge int // edge ID used to enter node, -1 for roots
	next       int // next position in the adjacency list
	children   int // DFS tree children discovered so far
}

// lowLinkState is allocated per detector run.
type lowLinkState struct {
	disc    []int32
	low     []int32
	isAP    []bool
	bridges []graph.Edge
	stack   []dfsFrame
	counter int32
}

// FindCriticalElements finds every articulation point and bridge with Tarjan's
// low-link DFS in O(V+E) time. The traversal is iterative, so path depth is
// bounded by heap rather than goroutine stack. Disconnected graphs are handled
// by starting a new DFS tree at each unvisited node.
//
// The tree edge to a node's parent is skipped by edge identity, not by
// endpoint, so a parallel edge back to the parent counts as a back edge and
// the pair is never reported as a bridge.
func FindCriticalElements(g *graph.Graph) *CriticalElements {
	n := g.NodeCount()
	result := &CriticalElements{
		ArticulationPoints: []uint64{},
		Bridges:            []graph.Edge{},
	}
	if n == 0 {
		return result
	}

	st := &lowLinkState{
		disc:  make([]int32, n),
		low:   make([]int32, n),
		isAP:  make([]bool, n),
		stack: make([]dfsFrame, 0, 64),
	}
	for i := range st.disc {
		st.disc[i] = -1
	}

	for root := 0; root < n; root++ {
		if st.disc[root] == -1 {
			st.run(g, root)
		}
	}

	for i, flagged := range st.isAP {
		if flagged {
			result.ArticulationPoints = append(result.ArticulationPoints, g.NodeAt(i))
		}
	}
	result.Bridges = append(result.Bridges, st.bridges...)
	return result
}

func (st *lowLinkState) visit(node, parentEdge int) {
	st.disc[node] = st.counter
	st.low[node] = st.counter
	st.counter++
	st.stack = append(st.stack, dfsFrame{node: node, parentEdge: parentEdge})
}

// run processes the DFS tree rooted at root.
func (st *lowLinkState) run(g *graph.Graph, root int) {
	st.visit(root, -1)

	for len(st.stack) > 0 {
		top := len(st.stack) - 1
		f := &st.stack[top]
		adj := g.Adjacent(f.node)

		if f.next < len(adj) {
			he := adj[f.next]
			f.next++

			if he.Edge == f.parentEdge {
				continue
			}
			if st.disc[he.To] == -1 {
				f.children++
				// f is invalid after visit grows the stack
				st.visit(he.To, he.Edge)
				continue
			}
			if st.disc[he.To] < st.low[f.node] {
				st.low[f.node] = st.disc[he.To]
			}
			continue
		}

		// All neighbors done: return to the parent frame
		child := *f
		st.stack = st.stack[:top]
		if top == 0 {
			if child.children > 1 {
				st.isAP[child.node] = true
			}
			continue
		}

		parent := &st.stack[top-1]
		if st.low[child.node] < st.low[parent.node] {
			st.low[parent.node] = st.low[child.node]
		}
		// Non-root articulation rule; the root is handled by its child count
		if top-1 > 0 && st.low[child.node] >= st.disc[parent.node] {
			st.isAP[parent.node] = true
		}
		if st.low[child.node] > st.disc[parent.node] {
			st.bridges = append(st.bridges, graph.Edge{
				ID: child.parentEdge,
				U:  g.NodeAt(parent.node),
				V:  g.NodeAt(child.node),
			})
		}
	}
}
