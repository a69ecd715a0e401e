// Package hir holds the lowered expression forms the semantic core
// consumes. The front end produces these during AST lowering; nothing
// in this package parses or resolves source text.
package hir

import (
	"fmt"

	"gaia/internal/source"
)

// ExprID indexes an expression inside an Arena.
type ExprID uint32

// NoExprID marks the absence of an expression.
const NoExprID ExprID = 0

// ExprKind enumerates the lowered expression variants.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprVar
	ExprIntLit
	ExprBoolLit
	ExprBinary
	ExprUnary
	ExprCall
)

func (k ExprKind) String() string {
	switch k {
	case ExprInvalid:
		return "invalid"
	case ExprVar:
		return "var"
	case ExprIntLit:
		return "int"
	case ExprBoolLit:
		return "bool"
	case ExprBinary:
		return "binary"
	case ExprUnary:
		return "unary"
	case ExprCall:
		return "call"
	default:
		return fmt.Sprintf("ExprKind(%d)", k)
	}
}

// BinOp enumerates binary operators.
type BinOp uint8

const (
	BinInvalid BinOp = iota
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
)

// IsArithmetic reports whether the operator requires numeric operands
// and yields the operand type.
func (op BinOp) IsArithmetic() bool {
	return op >= BinAdd && op <= BinMod
}

// IsComparison reports whether the operator yields bool.
func (op BinOp) IsComparison() bool {
	return op >= BinEq && op <= BinGe
}

func (op BinOp) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinMod:
		return "%"
	case BinEq:
		return "=="
	case BinNe:
		return "!="
	case BinLt:
		return "<"
	case BinLe:
		return "<="
	case BinGt:
		return ">"
	case BinGe:
		return ">="
	default:
		return fmt.Sprintf("BinOp(%d)", op)
	}
}

// UnOp enumerates unary operators.
type UnOp uint8

const (
	UnInvalid UnOp = iota
	UnNeg
	UnNot
	UnRef
	UnDeref
)

func (op UnOp) String() string {
	switch op {
	case UnNeg:
		return "-"
	case UnNot:
		return "!"
	case UnRef:
		return "&"
	case UnDeref:
		return "*"
	default:
		return fmt.Sprintf("UnOp(%d)", op)
	}
}

// Expr is a compact descriptor for one lowered expression. Which
// fields are meaningful depends on Kind.
type Expr struct {
	Kind  ExprKind
	Span  source.Span
	Name  source.StringID // ExprVar binding, ExprCall callee
	Int   int64           // ExprIntLit
	Bool  bool            // ExprBoolLit
	Bin   BinOp
	Un    UnOp
	Left  ExprID // binary left, unary operand
	Right ExprID // binary right
	Args  []ExprID
}
