package dag

// OrderComponents returns comps in dependencies-first order: a component is
// placed once every component it depends on has been placed. Among ready
// components the one holding the smallest node goes first, which keeps the
// result in source order wherever dependencies allow.
func OrderComponents(g *Graph, comps []Component) []Component {
	owner := make([]int, g.Len())
	for ci, c := range comps {
		for _, n := range c.Nodes {
			owner[n] = ci
		}
	}

	// pending[c] counts distinct components c still waits for;
	// dependents[d] lists the components waiting on d.
	pending := make([]int, len(comps))
	dependents := make([][]int, len(comps))
	for ci, c := range comps {
		seen := make(map[int]struct{})
		for _, n := range c.Nodes {
			for _, to := range g.Edges[n] {
				dep := owner[to]
				if dep == ci {
					continue
				}
				if _, dup := seen[dep]; dup {
					continue
				}
				seen[dep] = struct{}{}
				pending[ci]++
				dependents[dep] = append(dependents[dep], ci)
			}
		}
	}

	placed := make([]bool, len(comps))
	out := make([]Component, 0, len(comps))
	for len(out) < len(comps) {
		best := -1
		for ci := range comps {
			if placed[ci] || pending[ci] > 0 {
				continue
			}
			if best < 0 || comps[ci].Min() < comps[best].Min() {
				best = ci
			}
		}
		if best < 0 {
			// components of a condensation never form a cycle
			panic("dag: cycle between components")
		}
		placed[best] = true
		out = append(out, comps[best])
		for _, d := range dependents[best] {
			pending[d]--
		}
	}
	return out
}

// Order is StronglyConnected followed by OrderComponents.
func Order(g *Graph) []Component {
	return OrderComponents(g, StronglyConnected(g))
}
