package constraint

import (
	"gaia/internal/source"
)

// EqualityCycle is one closed path of type-equality edges. Such a
// cycle merges its members into a single equivalence class, which is
// legal, unlike an outlives cycle in the lifetime solver.
type EqualityCycle struct {
	Members []source.StringID
}

type eqEdge struct {
	to  source.StringID
	idx int
}

type dfsFrame struct {
	node source.StringID
	via  int // constraint index used to enter the node, -1 for roots
	next int // next adjacency slot to explore
}

const (
	colorWhite uint8 = iota
	colorGrey
	colorBlack
)

// CheckSatisfiable walks the type-equality edges with a path-local
// DFS over an explicit stack. A back-edge to a node still on the
// current path closes an equality cycle; those are reported as
// equivalence classes, never as failures. The error return is
// reserved for constraint kinds whose cycles are genuine violations;
// with pure equality edges it is always nil.
func (s *Set) CheckSatisfiable() ([]EqualityCycle, error) {
	s.Resolve()

	adj := make(map[source.StringID][]eqEdge)
	var nodes []source.StringID
	// A=B and B=A are distinct constraints but the same undirected
	// edge; collapse them so one equality stated twice cannot read as
	// a two-member cycle.
	type pair struct{ lo, hi source.StringID }
	edgeSeen := make(map[pair]struct{})
	for i, c := range s.list {
		if c.Kind != KindTypeEquality || c.A == c.B {
			continue
		}
		p := pair{lo: c.A, hi: c.B}
		if p.hi < p.lo {
			p.lo, p.hi = p.hi, p.lo
		}
		if _, ok := edgeSeen[p]; ok {
			continue
		}
		edgeSeen[p] = struct{}{}
		if _, ok := adj[c.A]; !ok {
			nodes = append(nodes, c.A)
		}
		if _, ok := adj[c.B]; !ok {
			nodes = append(nodes, c.B)
		}
		adj[c.A] = append(adj[c.A], eqEdge{to: c.B, idx: i})
		adj[c.B] = append(adj[c.B], eqEdge{to: c.A, idx: i})
	}

	color := make(map[source.StringID]uint8, len(nodes))
	var cycles []EqualityCycle

	for _, root := range nodes {
		if color[root] != colorWhite {
			continue
		}
		stack := []dfsFrame{{node: root, via: -1}}
		color[root] = colorGrey
		var path []source.StringID
		path = append(path, root)

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			edges := adj[f.node]
			if f.next >= len(edges) {
				color[f.node] = colorBlack
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
				continue
			}
			e := edges[f.next]
			f.next++
			if e.idx == f.via {
				// The edge we arrived through, not a cycle.
				continue
			}
			switch color[e.to] {
			case colorWhite:
				color[e.to] = colorGrey
				stack = append(stack, dfsFrame{node: e.to, via: e.idx})
				path = append(path, e.to)
			case colorGrey:
				// Back-edge onto the current path: close the cycle.
				start := 0
				for i := len(path) - 1; i >= 0; i-- {
					if path[i] == e.to {
						start = i
						break
					}
				}
				members := make([]source.StringID, len(path)-start)
				copy(members, path[start:])
				cycles = append(cycles, EqualityCycle{Members: members})
			}
		}
	}
	return cycles, nil
}
