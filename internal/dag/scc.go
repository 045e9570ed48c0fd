package dag

import "slices"

// Component is one strongly connected component. Nodes are sorted.
// Recursive is set for components of more than one node and for single
// nodes with a self-edge.
type Component struct {
	Nodes     []NodeID
	Recursive bool
}

// Min returns the smallest node of the component.
func (c Component) Min() NodeID { return c.Nodes[0] }

// StronglyConnected partitions the graph with Tarjan's algorithm. The result
// is sorted by each component's smallest node, so it does not depend on
// edge insertion order.
func StronglyConnected(g *Graph) []Component {
	n := g.Len()
	t := tarjan{
		g:       g,
		index:   make([]int, n),
		lowlink: make([]int, n),
		onStack: make([]bool, n),
		stack:   make([]NodeID, 0, n),
	}
	for i := range t.index {
		t.index[i] = -1
	}
	for i := 0; i < n; i++ {
		if t.index[i] < 0 {
			t.visit(nodeID(i))
		}
	}
	slices.SortFunc(t.out, func(a, b Component) int { return int(a.Min()) - int(b.Min()) })
	return t.out
}

type tarjan struct {
	g       *Graph
	next    int
	index   []int
	lowlink []int
	onStack []bool
	stack   []NodeID
	out     []Component
}

func (t *tarjan) visit(v NodeID) {
	t.index[v] = t.next
	t.lowlink[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.g.Edges[v] {
		switch {
		case t.index[w] < 0:
			t.visit(w)
			t.lowlink[v] = min(t.lowlink[v], t.lowlink[w])
		case t.onStack[w]:
			t.lowlink[v] = min(t.lowlink[v], t.index[w])
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}
	var comp Component
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		comp.Nodes = append(comp.Nodes, w)
		if w == v {
			break
		}
	}
	slices.Sort(comp.Nodes)
	comp.Recursive = len(comp.Nodes) > 1 || t.g.HasEdge(v, v)
	t.out = append(t.out, comp)
}
