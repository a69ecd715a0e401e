package driver

import (
	"encoding/json"
	"fmt"
	"os"

	"gaia/internal/hir"
	"gaia/internal/sema"
	"gaia/internal/source"
	"gaia/internal/types"
)

// Document is the root of an items file.
type Document struct {
	Items []ItemSpec `json:"items"`
}

// ItemSpec is the wire form of one checkable item.
type ItemSpec struct {
	Name      string         `json:"name"`
	Vars      []VarSpec      `json:"vars,omitempty"`
	Funcs     []FuncSpec     `json:"funcs,omitempty"`
	Lifetimes []string       `json:"lifetimes,omitempty"`
	Outlives  []OutlivesSpec `json:"outlives,omitempty"`
	Where     []WhereSpec    `json:"where,omitempty"`
	Aliases   []AliasSpec    `json:"aliases,omitempty"`
	Assoc     []AssocSpec    `json:"assoc,omitempty"`
	AssocRefs []AssocRefSpec `json:"assoc_refs,omitempty"`
	Signature *SignatureSpec `json:"signature,omitempty"`
	Exprs     []ExprSpec     `json:"exprs,omitempty"`
}

type VarSpec struct {
	Name string   `json:"name"`
	Type TypeSpec `json:"type"`
}

type FuncSpec struct {
	Name   string     `json:"name"`
	Params []TypeSpec `json:"params,omitempty"`
	Result *TypeSpec  `json:"result,omitempty"`
}

type OutlivesSpec struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason,omitempty"`
}

type WhereSpec struct {
	Param  string   `json:"param"`
	Bounds []string `json:"bounds"`
}

type AliasSpec struct {
	A string `json:"a"`
	B string `json:"b"`
}

type AssocSpec struct {
	Impl string   `json:"impl"`
	Name string   `json:"name"`
	Type TypeSpec `json:"type"`
}

type AssocRefSpec struct {
	Impl string `json:"impl"`
	Name string `json:"name"`
}

type SignatureSpec struct {
	ParamIsRef  []bool `json:"param_is_ref"`
	ReturnIsRef bool   `json:"return_is_ref"`
}

// TypeSpec spells a type tree. Kind selects the shape; Elem nests for
// vec, pointer and ref.
type TypeSpec struct {
	Kind    string    `json:"kind"`
	Name    string    `json:"name,omitempty"`
	Life    string    `json:"life,omitempty"`
	Mutable bool      `json:"mutable,omitempty"`
	Elem    *TypeSpec `json:"elem,omitempty"`
}

// ExprSpec spells one expression node. Exactly one of the shapes must
// be present: call, op (binary with right, unary without), var, int,
// bool.
type ExprSpec struct {
	Var   string     `json:"var,omitempty"`
	Int   *int64     `json:"int,omitempty"`
	Bool  *bool      `json:"bool,omitempty"`
	Op    string     `json:"op,omitempty"`
	Left  *ExprSpec  `json:"left,omitempty"`
	Right *ExprSpec  `json:"right,omitempty"`
	Call  string     `json:"call,omitempty"`
	Args  []ExprSpec `json:"args,omitempty"`
}

// LoadItems reads and decodes an items file.
func LoadItems(path string) ([]ItemSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	items, err := ParseItems(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// ParseItems decodes an items document from raw JSON.
func ParseItems(data []byte) ([]ItemSpec, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse items: %w", err)
	}
	for i, item := range doc.Items {
		if item.Name == "" {
			return nil, fmt.Errorf("item %d: missing name", i)
		}
	}
	return doc.Items, nil
}

// buildItem lowers one spec into a checkable item against the given
// interner.
func buildItem(spec *ItemSpec, in *types.Interner) (*sema.Item, error) {
	item := &sema.Item{
		Name:      spec.Name,
		Lifetimes: spec.Lifetimes,
	}
	for _, v := range spec.Vars {
		ty, err := resolveType(&v.Type, in)
		if err != nil {
			return nil, fmt.Errorf("item %q: var %q: %w", spec.Name, v.Name, err)
		}
		item.Vars = append(item.Vars, sema.VarDecl{Name: v.Name, Type: ty})
	}
	for _, f := range spec.Funcs {
		if f.Result == nil {
			return nil, fmt.Errorf("item %q: func %q: missing result type", spec.Name, f.Name)
		}
		decl := sema.FuncDecl{Name: f.Name}
		for _, p := range f.Params {
			ty, err := resolveType(&p, in)
			if err != nil {
				return nil, fmt.Errorf("item %q: func %q: %w", spec.Name, f.Name, err)
			}
			decl.Params = append(decl.Params, ty)
		}
		ty, err := resolveType(f.Result, in)
		if err != nil {
			return nil, fmt.Errorf("item %q: func %q: %w", spec.Name, f.Name, err)
		}
		decl.Result = ty
		item.Funcs = append(item.Funcs, decl)
	}
	for _, o := range spec.Outlives {
		item.Outlives = append(item.Outlives, sema.OutlivesDecl{From: o.From, To: o.To, Reason: o.Reason})
	}
	for _, w := range spec.Where {
		item.Where = append(item.Where, sema.WhereClause{Param: w.Param, Bounds: w.Bounds})
	}
	for _, a := range spec.Aliases {
		item.Aliases = append(item.Aliases, sema.AliasDecl{A: a.A, B: a.B})
	}
	for _, a := range spec.Assoc {
		ty, err := resolveType(&a.Type, in)
		if err != nil {
			return nil, fmt.Errorf("item %q: assoc %s::%s: %w", spec.Name, a.Impl, a.Name, err)
		}
		item.Assoc = append(item.Assoc, sema.AssocBinding{Impl: a.Impl, Name: a.Name, Type: ty})
	}
	for _, r := range spec.AssocRefs {
		item.AssocRefs = append(item.AssocRefs, sema.AssocRef{Impl: r.Impl, Name: r.Name})
	}
	if spec.Signature != nil {
		item.Signature = &sema.Signature{
			ParamIsRef:  spec.Signature.ParamIsRef,
			ReturnIsRef: spec.Signature.ReturnIsRef,
		}
	}
	if len(spec.Exprs) > 0 {
		arena := hir.NewArena(in.Strings())
		for i := range spec.Exprs {
			id, err := lowerExpr(&spec.Exprs[i], arena)
			if err != nil {
				return nil, fmt.Errorf("item %q: expr %d: %w", spec.Name, i, err)
			}
			item.Exprs = append(item.Exprs, id)
		}
		item.Arena = arena
	}
	return item, nil
}

func resolveType(spec *TypeSpec, in *types.Interner) (types.TypeID, error) {
	b := in.Builtins()
	switch spec.Kind {
	case "bool":
		return b.Bool, nil
	case "i32":
		return b.I32, nil
	case "i64":
		return b.I64, nil
	case "f64":
		return b.F64, nil
	case "string":
		return b.String, nil
	case "named":
		if spec.Name == "" {
			return types.NoTypeID, fmt.Errorf("named type requires a name")
		}
		return in.InternNamed(spec.Name), nil
	case "trait":
		if spec.Name == "" {
			return types.NoTypeID, fmt.Errorf("trait object requires a name")
		}
		return in.Intern(types.MakeTraitObject(in.Strings().Intern(spec.Name))), nil
	case "vec":
		if spec.Elem == nil {
			return types.NoTypeID, fmt.Errorf("vec requires an element type")
		}
		elem, err := resolveType(spec.Elem, in)
		if err != nil {
			return types.NoTypeID, err
		}
		return in.Intern(types.MakeVec(elem)), nil
	case "pointer":
		if spec.Elem == nil {
			return types.NoTypeID, fmt.Errorf("pointer requires an element type")
		}
		elem, err := resolveType(spec.Elem, in)
		if err != nil {
			return types.NoTypeID, err
		}
		return in.Intern(types.MakePointer(elem)), nil
	case "ref":
		if spec.Elem == nil {
			return types.NoTypeID, fmt.Errorf("ref requires an element type")
		}
		elem, err := resolveType(spec.Elem, in)
		if err != nil {
			return types.NoTypeID, err
		}
		life := types.NoLifetimeRef
		if spec.Life != "" {
			life = types.LifetimeRef(in.Strings().Intern(spec.Life))
		}
		return in.Intern(types.MakeReference(life, elem, spec.Mutable)), nil
	default:
		return types.NoTypeID, fmt.Errorf("unknown type kind %q", spec.Kind)
	}
}

func lowerExpr(spec *ExprSpec, arena *hir.Arena) (hir.ExprID, error) {
	switch {
	case spec.Call != "":
		var args []hir.ExprID
		for i := range spec.Args {
			id, err := lowerExpr(&spec.Args[i], arena)
			if err != nil {
				return 0, err
			}
			args = append(args, id)
		}
		return arena.NewCall(source.Span{}, arena.Strings.Intern(spec.Call), args), nil

	case spec.Op != "" && spec.Right != nil:
		op, ok := binOps[spec.Op]
		if !ok {
			return 0, fmt.Errorf("unknown binary operator %q", spec.Op)
		}
		if spec.Left == nil {
			return 0, fmt.Errorf("binary %q requires a left operand", spec.Op)
		}
		left, err := lowerExpr(spec.Left, arena)
		if err != nil {
			return 0, err
		}
		right, err := lowerExpr(spec.Right, arena)
		if err != nil {
			return 0, err
		}
		return arena.NewBinary(source.Span{}, op, left, right), nil

	case spec.Op != "":
		op, ok := unOps[spec.Op]
		if !ok {
			return 0, fmt.Errorf("unknown unary operator %q", spec.Op)
		}
		if spec.Left == nil {
			return 0, fmt.Errorf("unary %q requires an operand", spec.Op)
		}
		operand, err := lowerExpr(spec.Left, arena)
		if err != nil {
			return 0, err
		}
		return arena.NewUnary(source.Span{}, op, operand), nil

	case spec.Var != "":
		return arena.NewVar(source.Span{}, arena.Strings.Intern(spec.Var)), nil

	case spec.Int != nil:
		return arena.NewInt(source.Span{}, *spec.Int), nil

	case spec.Bool != nil:
		return arena.NewBool(source.Span{}, *spec.Bool), nil

	default:
		return 0, fmt.Errorf("empty expression")
	}
}

var binOps = map[string]hir.BinOp{
	"+":  hir.BinAdd,
	"-":  hir.BinSub,
	"*":  hir.BinMul,
	"/":  hir.BinDiv,
	"%":  hir.BinMod,
	"==": hir.BinEq,
	"!=": hir.BinNe,
	"<":  hir.BinLt,
	"<=": hir.BinLe,
	">":  hir.BinGt,
	">=": hir.BinGe,
}

var unOps = map[string]hir.UnOp{
	"-": hir.UnNeg,
	"!": hir.UnNot,
	"&": hir.UnRef,
	"*": hir.UnDeref,
}
