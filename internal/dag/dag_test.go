package dag

import (
	"reflect"
	"testing"
)

func nodes(comps []Component) [][]NodeID {
	out := make([][]NodeID, len(comps))
	for i, c := range comps {
		out[i] = c.Nodes
	}
	return out
}

func TestSelfEdgeIsRecursive(t *testing.T) {
	g := NewGraph(2)
	g.AddEdge(0, 0)
	comps := StronglyConnected(g)
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}
	if !comps[0].Recursive || comps[1].Recursive {
		t.Fatalf("recursive flags: %+v", comps)
	}
}

func TestThreeCycle(t *testing.T) {
	// x = y, y = z, z = x
	g := NewGraph(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 0)
	comps := StronglyConnected(g)
	if len(comps) != 1 || !comps[0].Recursive {
		t.Fatalf("expected one recursive component, got %+v", comps)
	}
	if want := []NodeID{0, 1, 2}; !reflect.DeepEqual(comps[0].Nodes, want) {
		t.Fatalf("nodes: got %v want %v", comps[0].Nodes, want)
	}
}

func TestOrderDependenciesFirst(t *testing.T) {
	// 0 depends on 2, 1 is independent, 2 depends on nothing
	g := NewGraph(3)
	g.AddEdge(0, 2)
	got := nodes(Order(g))
	want := [][]NodeID{{1}, {2}, {0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order: got %v want %v", got, want)
	}
}

func TestOrderKeepsSourceOrderWithoutEdges(t *testing.T) {
	g := NewGraph(4)
	got := nodes(Order(g))
	want := [][]NodeID{{0}, {1}, {2}, {3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order: got %v want %v", got, want)
	}
}

func TestOrderWithMutualRecursion(t *testing.T) {
	// 0 <-> 2 form a cycle, 1 uses both, 3 is used by 2
	g := NewGraph(4)
	g.AddEdge(0, 2)
	g.AddEdge(2, 0)
	g.AddEdge(1, 0)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	comps := Order(g)
	got := nodes(comps)
	want := [][]NodeID{{3}, {0, 2}, {1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order: got %v want %v", got, want)
	}
	if !comps[1].Recursive {
		t.Fatalf("cycle component must be recursive")
	}
}

func TestOrderIsDeterministic(t *testing.T) {
	build := func(edges [][2]NodeID) *Graph {
		g := NewGraph(5)
		for _, e := range edges {
			g.AddEdge(e[0], e[1])
		}
		return g
	}
	edges := [][2]NodeID{{4, 0}, {3, 1}, {1, 2}, {2, 1}, {0, 3}}
	reversed := make([][2]NodeID, len(edges))
	for i, e := range edges {
		reversed[len(edges)-1-i] = e
	}
	a := nodes(Order(build(edges)))
	b := nodes(Order(build(reversed)))
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("edge insertion order changed the result: %v vs %v", a, b)
	}
}
