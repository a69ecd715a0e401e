package sema

import (
	"gaia/internal/hir"
	"gaia/internal/types"
)

// VarDecl declares one scope variable with a known type.
type VarDecl struct {
	Name string
	Type types.TypeID
}

// FuncDecl declares one callable signature visible to the item.
type FuncDecl struct {
	Name   string
	Params []types.TypeID
	Result types.TypeID
}

// OutlivesDecl is one explicit `'from: 'to` bound, by name.
type OutlivesDecl struct {
	From   string
	To     string
	Reason string
}

// AliasDecl equates two type names, feeding the constraint store.
type AliasDecl struct {
	A string
	B string
}

// AssocBinding fixes an associated type for one impl.
type AssocBinding struct {
	Impl string
	Name string
	Type types.TypeID
}

// AssocRef is a Self::Name projection the item relies on; checking
// fails when no binding covers it.
type AssocRef struct {
	Impl string
	Name string
}

// Signature carries the reference shape of an item's function
// signature for lifetime elision. ParamIsRef has one entry per
// parameter.
type Signature struct {
	ParamIsRef  []bool
	ReturnIsRef bool
}

// Item is one independently checkable unit: a function or impl body
// with its declarations and expressions. Type ids are relative to the
// interner the item was built against.
type Item struct {
	Name      string
	Vars      []VarDecl
	Funcs     []FuncDecl
	Lifetimes []string
	Outlives  []OutlivesDecl
	Where     []WhereClause
	Aliases   []AliasDecl
	Assoc     []AssocBinding
	AssocRefs []AssocRef
	Signature *Signature
	Arena     *hir.Arena
	Exprs     []hir.ExprID
}
