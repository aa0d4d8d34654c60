// Package consteval implements the compile-time constant-expression
// evaluator used for `static_assert` conditions and `if const` branches
// (spec.md §4.10). It is a pure interpreter over the already-type-checked
// AST: integer arithmetic, bitwise, comparison, logical and ternary
// operators, plus `sizeof`/`alignof`/`fieldcount` against a
// target-independent data layout. Its structure mirrors go-corset's
// pkg/corset/ir constant-folding evaluator — a single recursive `eval`
// switch over expression variants, returning a value or a reported error,
// with no partial evaluation state carried across calls.
package consteval

import (
	"fmt"

	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/diag"
	"github.com/safec-org/safec/pkg/types"
)

// PointerSize is the pointer/reference width in bytes the layout stub uses
// (spec.md §4.10: "pointer/reference = 8 bytes").
const PointerSize = 8

// Evaluator interprets constant integer expressions, reporting a fatal
// diagnostic through d on any unsupported node, non-constant subexpression,
// or division by zero (spec.md §7: "ConstEval: non-constant expression...
// division by zero").
type Evaluator struct {
	d *diag.Engine
}

// New constructs an Evaluator that reports failures through d.
func New(d *diag.Engine) *Evaluator {
	return &Evaluator{d: d}
}

// EvalInt evaluates e as a 64-bit two's-complement constant integer
// expression, returning (0, false) and reporting a fatal diagnostic if e is
// not a supported constant-expression node.
func (ev *Evaluator) EvalInt(e ast.Expr) (int64, bool) {
	switch n := e.(type) {
	case *ast.IntLitExpr:
		return n.Value, true
	case *ast.CharLitExpr:
		return n.Value, true
	case *ast.BoolLitExpr:
		if n.Value {
			return 1, true
		}
		return 0, true
	case *ast.UnaryExpr:
		return ev.evalUnary(n)
	case *ast.BinaryExpr:
		return ev.evalBinary(n)
	case *ast.TernaryExpr:
		c, ok := ev.EvalInt(n.Cond)
		if !ok {
			return 0, false
		}
		if c != 0 {
			return ev.EvalInt(n.Then)
		}
		return ev.EvalInt(n.Else)
	case *ast.SizeofTypeExpr:
		return ev.SizeOf(n.Target), true
	case *ast.AlignofExpr:
		return ev.AlignOf(n.Target), true
	case *ast.FieldcountExpr:
		v, ok := ev.FieldCount(n.Target)
		if !ok {
			ev.d.Fatal(n.Loc(), "fieldcount requires a struct type")
		}
		return v, ok
	default:
		ev.d.Fatal(e.Loc(), "not a constant expression")
		return 0, false
	}
}

func (ev *Evaluator) evalUnary(n *ast.UnaryExpr) (int64, bool) {
	v, ok := ev.EvalInt(n.Operand)
	if !ok {
		return 0, false
	}
	switch n.Op {
	case ast.UnaryNeg:
		return -v, true
	case ast.UnaryNot:
		if v == 0 {
			return 1, true
		}
		return 0, true
	case ast.UnaryBitNot:
		return ^v, true
	default:
		ev.d.Fatal(n.Loc(), "not a constant expression")
		return 0, false
	}
}

func (ev *Evaluator) evalBinary(n *ast.BinaryExpr) (int64, bool) {
	// Short-circuit logical operators: the unevaluated side may be
	// non-constant (e.g. guarded by the evaluated side) without that being
	// an error.
	if n.Op == ast.BinLogAnd {
		l, ok := ev.EvalInt(n.Left)
		if !ok {
			return 0, false
		}
		if l == 0 {
			return 0, true
		}
		r, ok := ev.EvalInt(n.Right)
		if !ok {
			return 0, false
		}
		return boolInt(r != 0), true
	}
	if n.Op == ast.BinLogOr {
		l, ok := ev.EvalInt(n.Left)
		if !ok {
			return 0, false
		}
		if l != 0 {
			return 1, true
		}
		r, ok := ev.EvalInt(n.Right)
		if !ok {
			return 0, false
		}
		return boolInt(r != 0), true
	}

	l, ok := ev.EvalInt(n.Left)
	if !ok {
		return 0, false
	}
	r, ok := ev.EvalInt(n.Right)
	if !ok {
		return 0, false
	}
	switch n.Op {
	case ast.BinAdd:
		return l + r, true
	case ast.BinSub:
		return l - r, true
	case ast.BinMul:
		return l * r, true
	case ast.BinDiv:
		if r == 0 {
			ev.d.Fatal(n.Loc(), "division by zero in constant expression")
			return 0, false
		}
		return l / r, true
	case ast.BinMod:
		if r == 0 {
			ev.d.Fatal(n.Loc(), "division by zero in constant expression")
			return 0, false
		}
		return l % r, true
	case ast.BinBitAnd:
		return l & r, true
	case ast.BinBitOr:
		return l | r, true
	case ast.BinBitXor:
		return l ^ r, true
	case ast.BinShl:
		return l << uint(r), true
	case ast.BinShr:
		return l >> uint(r), true
	case ast.BinEq:
		return boolInt(l == r), true
	case ast.BinNe:
		return boolInt(l != r), true
	case ast.BinLt:
		return boolInt(l < r), true
	case ast.BinGt:
		return boolInt(l > r), true
	case ast.BinLe:
		return boolInt(l <= r), true
	case ast.BinGe:
		return boolInt(l >= r), true
	default:
		ev.d.Fatal(n.Loc(), "not a constant expression")
		return 0, false
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// SizeOf computes the target-independent size in bytes of t, per the
// layout stub spec.md §4.10 allows: primitive sizes per their declared bit
// width, struct = sum of field sizes (rounded to a whole byte), pointer and
// reference = 8 bytes.
func (ev *Evaluator) SizeOf(t types.Type) int64 {
	switch v := t.(type) {
	case *types.Primitive:
		if v.IsVoid() {
			return 0
		}
		return int64(v.BitWidth() / 8)
	case *types.Pointer, *types.Reference:
		return PointerSize
	case *types.Array:
		if v.Size < 0 {
			return PointerSize
		}
		return ev.SizeOf(v.Elem) * v.Size
	case *types.Struct:
		var total int64
		for _, f := range v.Fields {
			total += ev.SizeOf(f.Type)
		}
		return total
	case *types.Enum:
		return int64(v.BitWidth / 8)
	case *types.Tuple:
		var total int64
		for _, e := range v.Elements {
			total += ev.SizeOf(e)
		}
		return total
	case *types.Optional:
		return ev.SizeOf(v.Inner) + 1
	case *types.Slice:
		return PointerSize + 8
	default:
		return 0
	}
}

// AlignOf returns the alignment in bytes of t, taken equal to SizeOf for
// every scalar the layout stub models and fixed at pointer width for
// aggregates (a conservative, target-independent approximation; spec.md
// §4.10 only requires the stub be internally consistent).
func (ev *Evaluator) AlignOf(t types.Type) int64 {
	switch t.(type) {
	case *types.Struct, *types.Array, *types.Tuple, *types.Optional, *types.Slice:
		return PointerSize
	default:
		return ev.SizeOf(t)
	}
}

// FieldCount returns the number of declared fields of a struct type,
// failing on anything else (spec.md §4.10).
func (ev *Evaluator) FieldCount(t types.Type) (int64, bool) {
	s, ok := t.(*types.Struct)
	if !ok {
		return 0, false
	}
	return int64(len(s.Fields)), true
}

// Describe renders a human-readable summary of a failed constant
// expression: the Go type name of the expression node.
func Describe(e ast.Expr) string {
	return fmt.Sprintf("%T", e)
}
