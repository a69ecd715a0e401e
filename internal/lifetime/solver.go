package lifetime

import (
	"errors"
	"sort"
)

// ErrIterationLimit reports that closure computation exceeded its step
// budget.
var ErrIterationLimit = errors.New("lifetime: closure iteration limit exceeded")

// DefaultIterationLimit bounds closure steps when the caller does not
// configure one.
const DefaultIterationLimit = 100000

// Violation reports a lifetime that transitively outlives itself
// through a non-trivial chain. Path is the cycle, first and last
// entries equal.
type Violation struct {
	Life ID
	Path []ID
}

// Solver computes the transitive closure of a context's outlives graph
// and scans it for cycles. The historical checker reported success
// unconditionally; real detection replaced it because an outlives
// cycle means the program is not memory-safe.
//
// The closure runs over the recorded edges. The definitional rule that
// 'static outlives every registered lifetime is applied at query time
// instead of as graph edges: folding it into the graph would turn any
// legitimate "'a: 'static" constraint into a spurious cycle.
type Solver struct {
	ctx     *Context
	limit   int
	solved  bool
	failed  error
	adj     map[ID][]ID
	closure map[ID]map[ID]struct{}
}

// NewSolver constructs a solver over the context's current edges.
func NewSolver(ctx *Context) *Solver {
	return &Solver{ctx: ctx, limit: DefaultIterationLimit}
}

// SetIterationLimit overrides the closure step budget.
func (s *Solver) SetIterationLimit(n int) {
	if n > 0 {
		s.limit = n
	}
}

// Solve computes the transitive closure with a worklist fixpoint.
func (s *Solver) Solve() error {
	if s.solved {
		return s.failed
	}
	s.solved = true

	nodes := make([]ID, 0, s.ctx.Len())
	for i := 1; i <= s.ctx.Len(); i++ {
		nodes = append(nodes, ID(i))
	}
	s.adj = make(map[ID][]ID)
	for _, e := range s.ctx.Edges() {
		s.adj[e.From] = append(s.adj[e.From], e.To)
	}

	s.closure = make(map[ID]map[ID]struct{}, len(nodes))
	for _, id := range nodes {
		set := make(map[ID]struct{}, len(s.adj[id]))
		for _, to := range s.adj[id] {
			set[to] = struct{}{}
		}
		s.closure[id] = set
	}

	worklist := append([]ID(nil), nodes...)
	steps := 0
	for len(worklist) > 0 {
		steps++
		if steps > s.limit {
			s.failed = ErrIterationLimit
			return s.failed
		}
		from := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		grown := false
		for mid := range s.closure[from] {
			for next := range s.closure[mid] {
				if _, ok := s.closure[from][next]; !ok {
					s.closure[from][next] = struct{}{}
					grown = true
				}
			}
		}
		if grown {
			// Re-examine this node and everything that reaches it.
			worklist = append(worklist, from)
			for _, id := range nodes {
				if id == from {
					continue
				}
				if _, ok := s.closure[id][from]; ok {
					worklist = append(worklist, id)
				}
			}
		}
	}
	return nil
}

// Violations scans the closure for lifetimes that reach themselves and
// returns one structured violation per offender, cycle path included.
func (s *Solver) Violations() ([]Violation, error) {
	if err := s.Solve(); err != nil {
		return nil, err
	}
	var out []Violation
	for i := 1; i <= s.ctx.Len(); i++ {
		id := ID(i)
		if _, ok := s.closure[id][id]; ok {
			out = append(out, Violation{Life: id, Path: s.cyclePath(id)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Life < out[j].Life })
	return out, nil
}

// cyclePath recovers a shortest direct-edge cycle from id back to
// itself via BFS.
func (s *Solver) cyclePath(id ID) []ID {
	parent := make(map[ID]ID)
	queue := []ID{id}
	visited := map[ID]struct{}{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range s.adj[cur] {
			if next == id {
				path := []ID{id}
				for at := cur; at != id; at = parent[at] {
					path = append(path, at)
				}
				path = append(path, id)
				// Reverse into id -> ... -> id order.
				for l, r := 1, len(path)-2; l < r; l, r = l+1, r-1 {
					path[l], path[r] = path[r], path[l]
				}
				return path
			}
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return []ID{id, id}
}

// IsSatisfiable reports whether the outlives graph is cycle-free.
func (s *Solver) IsSatisfiable() bool {
	v, err := s.Violations()
	return err == nil && len(v) == 0
}

// Outlives returns the full transitive closure set for one lifetime,
// sorted by id. 'static, and any lifetime constrained to outlive it,
// outlives every other registered lifetime by definition.
func (s *Solver) Outlives(id ID) ([]ID, error) {
	if err := s.Solve(); err != nil {
		return nil, err
	}
	set := s.closure[id]
	static := s.ctx.Static()
	_, reachesStatic := set[static]
	if id == static || reachesStatic {
		out := make([]ID, 0, s.ctx.Len())
		for i := 1; i <= s.ctx.Len(); i++ {
			if ID(i) != id {
				out = append(out, ID(i))
			}
		}
		return out, nil
	}
	out := make([]ID, 0, len(set))
	for to := range set {
		out = append(out, to)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Describe renders a violation path with the context's names, ready to
// be attached to a CyclicLifetimeError.
func (s *Solver) Describe(v Violation) *CyclicLifetimeError {
	path := make([]string, len(v.Path))
	for i, id := range v.Path {
		path[i] = s.ctx.String(id)
	}
	return &CyclicLifetimeError{Path: path}
}
