package constraint

import (
	"gaia/internal/source"
)

// Set owns the constraints of one item scope (a function or impl
// body). It keeps insertion order, deduplicates structurally and
// maintains a name -> constraint index. A Set belongs to the single
// analysis pass working on its item; it is not safe for concurrent
// mutation.
type Set struct {
	strings  *source.Interner
	list     []Constraint
	seen     map[Constraint]struct{}
	resolved map[source.StringID][]int
	indexed  int
}

// NewSet constructs an empty store over the given name interner. A nil
// interner allocates a private one.
func NewSet(strings *source.Interner) *Set {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Set{
		strings:  strings,
		seen:     make(map[Constraint]struct{}),
		resolved: make(map[source.StringID][]int),
	}
}

// Strings exposes the name interner keys are allocated from.
func (s *Set) Strings() *source.Interner {
	return s.strings
}

// Add inserts the constraint unless a structurally equal one already
// exists. It reports whether the constraint was inserted.
func (s *Set) Add(c Constraint) bool {
	if _, ok := s.seen[c]; ok {
		return false
	}
	s.seen[c] = struct{}{}
	s.list = append(s.list, c)
	return true
}

// Constraints returns the stored constraints in insertion order. The
// slice aliases internal storage and must not be modified.
func (s *Set) Constraints() []Constraint {
	return s.list
}

// Len returns the number of stored constraints.
func (s *Set) Len() int {
	return len(s.list)
}

// Resolve indexes every constraint added since the previous call
// under each name it mentions.
func (s *Set) Resolve() {
	for ; s.indexed < len(s.list); s.indexed++ {
		i := s.indexed
		k1, k2, hasSecond := s.list[i].keys()
		s.resolved[k1] = append(s.resolved[k1], i)
		if hasSecond {
			s.resolved[k2] = append(s.resolved[k2], i)
		}
	}
}

// ForKey returns the constraints mentioning the given name.
func (s *Set) ForKey(key source.StringID) []Constraint {
	s.Resolve()
	idx := s.resolved[key]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Constraint, len(idx))
	for i, j := range idx {
		out[i] = s.list[j]
	}
	return out
}

// Merge unions the other store into this one, re-interning names when
// the stores were built over different interners.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	sameStrings := other.strings == s.strings
	for _, c := range other.list {
		if !sameStrings {
			c.A = s.rekey(other.strings, c.A)
			if c.B != NoKey {
				c.B = s.rekey(other.strings, c.B)
			}
		}
		s.Add(c)
	}
}

func (s *Set) rekey(from *source.Interner, id source.StringID) source.StringID {
	return s.strings.Intern(from.MustLookup(id))
}
