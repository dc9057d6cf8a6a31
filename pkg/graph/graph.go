// Package graph is the adjacency-list store used by the resilience analyses.
//
// Nodes are uint64 identifiers mapped to dense indexes in insertion order.
// Each undirected edge is stored once in the edge table and twice in the
// adjacency lists (one HalfEdge per direction, both carrying the edge ID).
// The store has no deletion: removals are simulated through View.
//
// A Graph is not safe for concurrent mutation. Once built it may be read
// from any number of goroutines.
package graph

import (
	"fmt"
	"iter"
)

// Graph is an undirected graph without self-loops. Parallel edges are kept.
type Graph struct {
	index     map[uint64]int
	ids       []uint64
	adj       [][]HalfEdge
	edges     []Edge
	selfLoops int
}

// New creates an empty graph
func New() *Graph {
	return NewWithCapacity(0, 0)
}

// NewWithCapacity preallocates room for the expected node and edge counts
func NewWithCapacity(nodes, edges int) *Graph {
	return &Graph{
		index: make(map[uint64]int, nodes),
		ids:   make([]uint64, 0, nodes),
		adj:   make([][]HalfEdge, 0, nodes),
		edges: make([]Edge, 0, edges),
	}
}

// AddNode registers id and returns its dense index. Existing nodes are left
// untouched.
func (g *Graph) AddNode(id uint64) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	i := len(g.ids)
	g.index[id] = i
	g.ids = append(g.ids, id)
	g.adj = append(g.adj, nil)
	return i
}

// AddEdge inserts the undirected edge {u, v}. Both endpoints become members.
// A self-loop registers u but adds no edge and returns ErrSelfLoop.
// Duplicate edges are accepted and receive their own ID.
func (g *Graph) AddEdge(u, v uint64) (Edge, error) {
	ui := g.AddNode(u)
	if u == v {
		g.selfLoops++
		return Edge{ID: -1, U: u, V: v}, fmt.Errorf("add edge %d-%d: %w", u, v, ErrSelfLoop)
	}
	vi := g.AddNode(v)

	e := Edge{ID: len(g.edges), U: u, V: v}
	g.edges = append(g.edges, e)
	g.adj[ui] = append(g.adj[ui], HalfEdge{To: vi, Edge: e.ID})
	g.adj[vi] = append(g.adj[vi], HalfEdge{To: ui, Edge: e.ID})
	return e, nil
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.ids)
}

// EdgeCount returns the number of undirected edges, parallel edges included
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// HasNode reports node membership
func (g *Graph) HasNode(id uint64) bool {
	_, ok := g.index[id]
	return ok
}

// Degree returns the number of incident edges; 0 for non-members
func (g *Graph) Degree(id uint64) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.adj[i])
}

// Neighbors yields the adjacency list of id in insertion order. Non-members
// yield nothing. A neighbor appears once per parallel edge.
func (g *Graph) Neighbors(id uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		i, ok := g.index[id]
		if !ok {
			return
		}
		for _, he := range g.adj[i] {
			if !yield(g.ids[he.To]) {
				return
			}
		}
	}
}

// HasEdge reports whether at least one edge joins u and v
func (g *Graph) HasEdge(u, v uint64) bool {
	_, ok := g.FindEdge(u, v)
	return ok
}

// FindEdge returns the first edge (lowest ID) joining u and v. It scans the
// shorter of the two adjacency lists.
func (g *Graph) FindEdge(u, v uint64) (Edge, bool) {
	ui, ok := g.index[u]
	if !ok {
		return Edge{}, false
	}
	vi, ok := g.index[v]
	if !ok || ui == vi {
		return Edge{}, false
	}
	from, to := ui, vi
	if len(g.adj[vi]) < len(g.adj[ui]) {
		from, to = vi, ui
	}
	best := -1
	for _, he := range g.adj[from] {
		if he.To == to && (best < 0 || he.Edge < best) {
			best = he.Edge
		}
	}
	if best < 0 {
		return Edge{}, false
	}
	return g.edges[best], true
}

// ResolveEdge maps e to a stored edge. A valid ID whose endpoints match wins;
// otherwise the endpoints are looked up with FindEdge.
func (g *Graph) ResolveEdge(e Edge) (Edge, bool) {
	if e.ID >= 0 && e.ID < len(g.edges) && g.edges[e.ID].Joins(e.U, e.V) {
		return g.edges[e.ID], true
	}
	return g.FindEdge(e.U, e.V)
}

// Nodes returns node identifiers in insertion order
func (g *Graph) Nodes() []uint64 {
	out := make([]uint64, len(g.ids))
	copy(out, g.ids)
	return out
}

// Edges returns the edge table in ID order
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Index returns the dense index of id
func (g *Graph) Index(id uint64) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// NodeAt returns the identifier stored at dense index i
func (g *Graph) NodeAt(i int) uint64 {
	return g.ids[i]
}

// Adjacent returns the half-edges leaving dense index i. The slice is owned
// by the graph and must not be modified.
func (g *Graph) Adjacent(i int) []HalfEdge {
	return g.adj[i]
}

// EdgeAt returns the edge with the given ID
func (g *Graph) EdgeAt(id int) Edge {
	return g.edges[id]
}

// Statistics scans the graph once and reports its shape
func (g *Graph) Statistics() Statistics {
	stats := Statistics{
		NodeCount: len(g.ids),
		EdgeCount: len(g.edges),
		SelfLoops: g.selfLoops,
	}

	seen := make(map[int]struct{})
	for i, list := range g.adj {
		if len(list) == 0 {
			stats.IsolatedNodes++
		}
		if len(list) > stats.MaxDegree {
			stats.MaxDegree = len(list)
		}
		clear(seen)
		for _, he := range list {
			if he.To < i {
				continue
			}
			if _, dup := seen[he.To]; dup {
				stats.ParallelEdges++
				continue
			}
			seen[he.To] = struct{}{}
		}
	}
	return stats
}
