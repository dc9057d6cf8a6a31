package graph

import "iter"

// View layers node and edge exclusions over a Graph without copying its
// adjacency. Views are cheap to create and reset, so a sweep can reuse one
// per worker. The underlying graph is never modified.
type View struct {
	g     *Graph
	nodes map[int]struct{}
	edges map[int]struct{}
}

// NewView returns a view that initially excludes nothing
func NewView(g *Graph) *View {
	return &View{
		g:     g,
		nodes: make(map[int]struct{}),
		edges: make(map[int]struct{}),
	}
}

// Graph returns the underlying graph
func (v *View) Graph() *Graph {
	return v.g
}

// ExcludeNode hides id and every edge touching it. It reports whether id is
// a member of the graph; non-members are ignored.
func (v *View) ExcludeNode(id uint64) bool {
	i, ok := v.g.index[id]
	if !ok {
		return false
	}
	v.nodes[i] = struct{}{}
	return true
}

// ExcludeEdge hides one stored edge, resolved by ID or endpoints. It reports
// whether the edge exists.
func (v *View) ExcludeEdge(e Edge) bool {
	stored, ok := v.g.ResolveEdge(e)
	if !ok {
		return false
	}
	v.edges[stored.ID] = struct{}{}
	return true
}

// Reset clears all exclusions
func (v *View) Reset() {
	clear(v.nodes)
	clear(v.edges)
}

// NodeExcluded reports whether dense index i is hidden
func (v *View) NodeExcluded(i int) bool {
	if len(v.nodes) == 0 {
		return false
	}
	_, ok := v.nodes[i]
	return ok
}

// EdgeExcluded reports whether edge ID is hidden
func (v *View) EdgeExcluded(id int) bool {
	if len(v.edges) == 0 {
		return false
	}
	_, ok := v.edges[id]
	return ok
}

// NodeCount returns the number of visible nodes
func (v *View) NodeCount() int {
	return v.g.NodeCount() - len(v.nodes)
}

// Traversable reports whether the half-edge he may be followed
func (v *View) Traversable(he HalfEdge) bool {
	return !v.EdgeExcluded(he.Edge) && !v.NodeExcluded(he.To)
}

// Neighbors yields the visible neighbors of id. Hidden or unknown nodes
// yield nothing.
func (v *View) Neighbors(id uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		i, ok := v.g.index[id]
		if !ok || v.NodeExcluded(i) {
			return
		}
		for _, he := range v.g.adj[i] {
			if !v.Traversable(he) {
				continue
			}
			if !yield(v.g.ids[he.To]) {
				return
			}
		}
	}
}
