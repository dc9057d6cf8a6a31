package algorithms

import (
	"testing"

	"github.com/dd0wney/cluso-resilience/pkg/graph"
	"github.com/dd0wney/cluso-resilience/pkg/topology"
)

func TestDescribeShape(t *testing.T) {
	tests := []struct {
		name  string
		graph *graph.Graph
		want  Shape
	}{
		{"empty", graph.New(), Shape{Components: 0, Connected: true, Forest: true, Bipartite: true}},
		{"path", mustGraph(topology.Path(4)), Shape{Components: 1, Connected: true, Forest: true, Tree: true, Bipartite: true}},
		{"even cycle", mustGraph(topology.Cycle(6)), Shape{Components: 1, Connected: true, Bipartite: true}},
		{"odd cycle", mustGraph(topology.Cycle(5)), Shape{Components: 1, Connected: true}},
		{"two paths", buildGraph(t, [][2]uint64{{1, 2}, {3, 4}}), Shape{Components: 2, Forest: true, Bipartite: true}},
		{"parallel pair", buildGraph(t, [][2]uint64{{1, 2}, {1, 2}}), Shape{Components: 1, Connected: true, Bipartite: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DescribeShape(tt.graph); got != tt.want {
				t.Errorf("DescribeShape() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsBipartite_Partitions(t *testing.T) {
	ok, a, b := IsBipartite(mustGraph(topology.Star(3)))
	if !ok {
		t.Fatal("Star should be bipartite")
	}
	if len(a) != 1 || a[0] != 0 || len(b) != 3 {
		t.Errorf("Partitions = %v / %v, want hub / leaves", a, b)
	}

	if ok, _, _ := IsBipartite(topology.Petersen()); ok {
		t.Error("Petersen graph has 5-cycles and is not bipartite")
	}
}

func TestIsTree(t *testing.T) {
	if IsTree(graph.New()) {
		t.Error("Empty graph is not a tree")
	}
	if !IsTree(mustGraph(topology.Path(1))) {
		t.Error("Single node is a tree")
	}
	if IsTree(topology.SmallNetwork()) {
		t.Error("Small network contains a triangle")
	}
	if !IsConnected(topology.SmallNetwork()) {
		t.Error("Small network is connected")
	}
}
