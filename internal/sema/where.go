package sema

import "gaia/internal/constraint"

// WhereClause constrains one type parameter with trait bounds, e.g.
// `where T: Display + Clone`.
type WhereClause struct {
	Param  string
	Bounds []string
}

// LowerWhereClause records one TraitBound per bound into the set.
// Duplicate bounds collapse inside the set.
func LowerWhereClause(wc WhereClause, set *constraint.Set) {
	param := set.Strings().Intern(wc.Param)
	for _, bound := range wc.Bounds {
		set.Add(constraint.Trait(param, set.Strings().Intern(bound)))
	}
}
