// Package dag holds the dependency graph of a block's definitions and the
// analyses run on it: strongly connected components and a deterministic
// dependencies-first order. Nodes are dense indices; node order is source order.
package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type NodeID uint32

// Graph is an adjacency list: Edges[from] lists the nodes `from` depends on.
type Graph struct {
	Edges [][]NodeID
}

func NewGraph(n int) *Graph {
	return &Graph{Edges: make([][]NodeID, n)}
}

func (g *Graph) Len() int { return len(g.Edges) }

// AddEdge records that from depends on to. Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to NodeID) {
	g.check(from)
	g.check(to)
	if slices.Contains(g.Edges[from], to) {
		return
	}
	g.Edges[from] = append(g.Edges[from], to)
}

// HasEdge reports whether from depends on to.
func (g *Graph) HasEdge(from, to NodeID) bool {
	return slices.Contains(g.Edges[from], to)
}

func (g *Graph) check(n NodeID) {
	if int(n) >= len(g.Edges) {
		panic(fmt.Errorf("dag: node %d out of range (%d nodes)", n, len(g.Edges)))
	}
}

func nodeID(i int) NodeID {
	v, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("node id overflow: %w", err))
	}
	return NodeID(v)
}

// Node converts a dense index into a node.
func Node(i int) NodeID { return nodeID(i) }
