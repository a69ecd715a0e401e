package hir

import (
	"fmt"

	"fortio.org/safecast"

	"gaia/internal/source"
)

// Arena owns the expressions of one lowered item. Index 0 is reserved
// so NoExprID never aliases a real node.
type Arena struct {
	exprs   []Expr
	Strings *source.Interner
}

// NewArena constructs an empty arena. A nil interner allocates a
// private one.
func NewArena(strings *source.Interner) *Arena {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Arena{
		exprs:   make([]Expr, 1),
		Strings: strings,
	}
}

func (a *Arena) push(e Expr) ExprID {
	n, err := safecast.Conv[uint32](len(a.exprs))
	if err != nil {
		panic(fmt.Errorf("expr arena overflow: %w", err))
	}
	id := ExprID(n)
	a.exprs = append(a.exprs, e)
	return id
}

// NewVar adds a variable reference.
func (a *Arena) NewVar(sp source.Span, name source.StringID) ExprID {
	return a.push(Expr{Kind: ExprVar, Span: sp, Name: name})
}

// NewInt adds an integer literal.
func (a *Arena) NewInt(sp source.Span, value int64) ExprID {
	return a.push(Expr{Kind: ExprIntLit, Span: sp, Int: value})
}

// NewBool adds a boolean literal.
func (a *Arena) NewBool(sp source.Span, value bool) ExprID {
	return a.push(Expr{Kind: ExprBoolLit, Span: sp, Bool: value})
}

// NewBinary adds a binary operation.
func (a *Arena) NewBinary(sp source.Span, op BinOp, left, right ExprID) ExprID {
	return a.push(Expr{Kind: ExprBinary, Span: sp, Bin: op, Left: left, Right: right})
}

// NewUnary adds a unary operation.
func (a *Arena) NewUnary(sp source.Span, op UnOp, operand ExprID) ExprID {
	return a.push(Expr{Kind: ExprUnary, Span: sp, Un: op, Left: operand})
}

// NewCall adds a function call.
func (a *Arena) NewCall(sp source.Span, callee source.StringID, args []ExprID) ExprID {
	return a.push(Expr{Kind: ExprCall, Span: sp, Name: callee, Args: args})
}

// Get returns the expression for id, or nil for NoExprID and
// out-of-range ids.
func (a *Arena) Get(id ExprID) *Expr {
	if id == NoExprID || int(id) >= len(a.exprs) {
		return nil
	}
	return &a.exprs[id]
}

// Len returns the number of expressions, excluding the reserved slot.
func (a *Arena) Len() int {
	return len(a.exprs) - 1
}
