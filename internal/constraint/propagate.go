package constraint

import "errors"

// ErrIterationLimit reports that a fixpoint loop exceeded its step
// budget. Well-formed inputs saturate long before the default limit;
// hitting it means an adversarial or broken constraint set.
var ErrIterationLimit = errors.New("constraint: propagation iteration limit exceeded")

// DefaultIterationLimit bounds propagation steps when the caller
// passes no explicit limit.
const DefaultIterationLimit = 100000

// Propagate derives trait bounds across equality edges until nothing
// new appears: for every TypeEquality(a, b) where a carries
// TraitBound(a, T), TraitBound(b, T) is added. The loop is driven by
// a work queue of newly added constraints instead of repeated full
// rescans, so saturation is linear in derived facts.
func (s *Set) Propagate(limit int) error {
	if limit <= 0 {
		limit = DefaultIterationLimit
	}
	s.Resolve()

	queue := make([]int, len(s.list))
	for i := range queue {
		queue[i] = i
	}

	steps := 0
	for len(queue) > 0 {
		steps++
		if steps > limit {
			return ErrIterationLimit
		}
		i := queue[0]
		queue = queue[1:]
		c := s.list[i]

		switch c.Kind {
		case KindTypeEquality:
			// Bounds already on the left side flow to the right.
			for _, d := range s.ForKey(c.A) {
				if d.Kind == KindTraitBound && d.A == c.A {
					queue = s.derive(Trait(c.B, d.B), queue)
				}
			}
		case KindTraitBound:
			// A new bound re-triggers every equality leaving its type.
			for _, d := range s.ForKey(c.A) {
				if d.Kind == KindTypeEquality && d.A == c.A {
					queue = s.derive(Trait(d.B, c.B), queue)
				}
			}
		}
	}
	return nil
}

func (s *Set) derive(c Constraint, queue []int) []int {
	if !s.Add(c) {
		return queue
	}
	s.Resolve()
	return append(queue, len(s.list)-1)
}
