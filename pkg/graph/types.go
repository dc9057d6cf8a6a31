package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrSelfLoop is returned when an edge joins a node to itself.
	ErrSelfLoop = errors.New("self-loop rejected")
)

// Edge is an undirected edge. ID is the store-assigned identity; parallel
// edges between the same endpoints carry distinct IDs.
type Edge struct {
	ID int    `json:"id"`
	U  uint64 `json:"u"`
	V  uint64 `json:"v"`
}

// Normalized returns the edge with U <= V.
func (e Edge) Normalized() Edge {
	if e.U > e.V {
		e.U, e.V = e.V, e.U
	}
	return e
}

// Joins reports whether the edge connects a and b in either direction.
func (e Edge) Joins(a, b uint64) bool {
	return (e.U == a && e.V == b) || (e.U == b && e.V == a)
}

// Other returns the endpoint opposite n.
func (e Edge) Other(n uint64) uint64 {
	if e.U == n {
		return e.V
	}
	return e.U
}

func (e Edge) String() string {
	return fmt.Sprintf("(%d, %d)", e.U, e.V)
}

// HalfEdge is one direction of an undirected edge in dense-index space.
type HalfEdge struct {
	To   int // dense index of the neighbor
	Edge int // edge ID, shared with the twin half-edge
}

// Statistics summarizes a graph.
type Statistics struct {
	NodeCount     int `json:"node_count"`
	EdgeCount     int `json:"edge_count"`
	ParallelEdges int `json:"parallel_edges"`
	SelfLoops     int `json:"self_loops_rejected"`
	IsolatedNodes int `json:"isolated_nodes"`
	MaxDegree     int `json:"max_degree"`
}
