package sema

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/types"
)

// checkExpr type-checks e, attaches its resolved Type and IsLValue flag,
// and returns the resolved type (spec.md §4.7, §4.8). Every exit path sets
// e.SetType to a non-nil value, even types.Error(), preserving the
// invariant that "every Expression leaving Sema has a non-null type"
// (spec.md §3, §8 invariant 1).
func (s *Sema) checkExpr(e ast.Expr, scope *Scope, nctx nullCtx) types.Type {
	t := s.checkExprInner(e, scope, nctx)
	if t == nil {
		t = types.Error()
	}
	e.SetType(t)
	return t
}

func (s *Sema) checkExprInner(e ast.Expr, scope *Scope, nctx nullCtx) types.Type {
	switch n := e.(type) {
	case *ast.IntLitExpr:
		if n.Value >= -(1<<31) && n.Value < (1<<31) && !n.IsLongLong && !n.IsUnsigned {
			return types.Int(32, true)
		}
		if n.IsUnsigned {
			return types.Int(64, false)
		}
		return types.Int(64, true)
	case *ast.FloatLitExpr:
		return types.Float(64)
	case *ast.BoolLitExpr:
		return types.Bool()
	case *ast.CharLitExpr:
		return types.Char()
	case *ast.StringLitExpr:
		return types.NewReference(types.Char(), types.RegionStatic, false, false, "")
	case *ast.NullLitExpr:
		return types.NewReference(types.Void(), types.RegionStatic, true, false, "")
	case *ast.IdentExpr:
		return s.checkIdent(n, scope)
	case *ast.UnaryExpr:
		return s.checkUnary(n, scope, nctx)
	case *ast.BinaryExpr:
		return s.checkBinary(n, scope, nctx)
	case *ast.TernaryExpr:
		return s.checkTernary(n, scope, nctx)
	case *ast.CallExpr:
		return s.checkCall(n, scope, nctx)
	case *ast.SubscriptExpr:
		return s.checkSubscript(n, scope, nctx)
	case *ast.MemberExpr:
		return s.checkMember(n, scope, nctx)
	case *ast.CastExpr:
		return s.checkCast(n, scope, nctx)
	case *ast.AssignExpr:
		return s.checkAssign(n, scope, nctx)
	case *ast.AddrOfExpr:
		return s.checkAddrOf(n, scope, nctx)
	case *ast.DerefExpr:
		return s.checkDeref(n, scope, nctx)
	case *ast.SizeofTypeExpr:
		n.Target = s.resolveType(n.Target, nil)
		return types.Int(64, false)
	case *ast.SizeofExprExpr:
		s.checkExpr(n.Operand, scope, nctx)
		return types.Int(64, false)
	case *ast.AlignofExpr:
		n.Target = s.resolveType(n.Target, nil)
		return types.Int(64, false)
	case *ast.FieldcountExpr:
		n.Target = s.resolveType(n.Target, nil)
		if _, ok := s.ce.FieldCount(n.Target); !ok {
			s.d.Error(n.Loc(), "fieldcount requires a struct type, found %s", n.Target)
		}
		return types.Int(64, false)
	case *ast.CompoundInitExpr:
		for _, el := range n.Elements {
			s.checkExpr(el, scope, nctx)
		}
		return types.Error()
	case *ast.TupleLitExpr:
		elems := make([]types.Type, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = s.checkExpr(el, scope, nctx)
		}
		return types.NewTuple(elems)
	case *ast.NewExpr:
		n.Target = s.resolveType(n.Target, nil)
		if n.RegionName != "" {
			if _, ok := s.regions[n.RegionName]; !ok {
				s.d.Error(n.Loc(), "undeclared region '%s'", n.RegionName)
			}
		}
		return types.NewReference(n.Target, types.RegionArena, false, true, n.RegionName)
	case *ast.ArenaResetExpr:
		if _, ok := s.regions[n.RegionName]; !ok {
			s.d.Error(n.Loc(), "undeclared region '%s'", n.RegionName)
		}
		return types.Void()
	case *ast.SpawnExpr:
		s.checkExpr(n.Fn, scope, nctx)
		s.checkExpr(n.Arg, scope, nctx)
		return types.Error()
	case *ast.JoinExpr:
		s.checkExpr(n.Handle, scope, nctx)
		return types.Error()
	case *ast.TryExpr:
		ot := s.checkExpr(n.Operand, scope, nctx)
		if opt, ok := ot.(*types.Optional); ok {
			return opt.Inner
		}
		if !ot.IsError() {
			s.d.Error(n.Loc(), "'try' requires an optional operand, found %s", ot)
		}
		return types.Error()
	case *ast.SelfExpr:
		if s.curFn != nil && s.curFn.MethodOwner != "" {
			if st, ok := s.structs[s.curFn.MethodOwner]; ok {
				return types.NewReference(st, types.RegionStack, false, true, "")
			}
		}
		s.d.Error(n.Loc(), "'self' used outside a method body")
		return types.Error()
	default:
		return types.Error()
	}
}

func (s *Sema) checkIdent(n *ast.IdentExpr, scope *Scope) types.Type {
	sym := scope.lookup(n.Name)
	if sym == nil {
		s.d.Error(n.Loc(), "use of undeclared identifier '%s'", n.Name)
		return types.Error()
	}
	n.Resolved = sym
	if sym.Kind == SymVariable {
		if !scope.isInitialized(sym) && !sym.Type.IsAggregate() {
			s.d.Error(n.Loc(), "use of possibly uninitialized variable '%s'", n.Name)
		}
		n.SetLValue(!sym.IsConst)
	}
	return sym.Type
}

func (s *Sema) checkUnary(n *ast.UnaryExpr, scope *Scope, nctx nullCtx) types.Type {
	ot := s.checkExpr(n.Operand, scope, nctx)
	switch n.Op {
	case ast.UnaryNot:
		return types.Bool()
	case ast.UnaryNeg, ast.UnaryBitNot:
		if !ot.IsArithmetic() && !ot.IsError() {
			s.d.Error(n.Loc(), "operator requires an arithmetic operand, found %s", ot)
			return types.Error()
		}
		return ot
	case ast.UnaryPreInc, ast.UnaryPreDec, ast.UnaryPostInc, ast.UnaryPostDec:
		if !n.Operand.IsLValue() && !ot.IsError() {
			s.d.Error(n.Loc(), "increment/decrement requires an lvalue operand")
		}
		return ot
	default:
		return types.Error()
	}
}

var arithOps = map[ast.BinaryOp]bool{
	ast.BinAdd: true, ast.BinSub: true, ast.BinMul: true, ast.BinDiv: true, ast.BinMod: true,
}
var bitwiseOps = map[ast.BinaryOp]bool{
	ast.BinBitAnd: true, ast.BinBitOr: true, ast.BinBitXor: true, ast.BinShl: true, ast.BinShr: true,
}
var compareOps = map[ast.BinaryOp]bool{
	ast.BinEq: true, ast.BinNe: true, ast.BinLt: true, ast.BinGt: true, ast.BinLe: true, ast.BinGe: true,
}
var logicalOps = map[ast.BinaryOp]bool{ast.BinLogAnd: true, ast.BinLogOr: true}

func (s *Sema) checkBinary(n *ast.BinaryExpr, scope *Scope, nctx nullCtx) types.Type {
	lt := s.checkExpr(n.Left, scope, nctx)
	rt := s.checkExpr(n.Right, scope, nctx)

	if logicalOps[n.Op] {
		return types.Bool()
	}
	if compareOps[n.Op] {
		if st, ok := lt.(*types.Struct); ok {
			if s.resolveOperatorMethod(st, n.Op) != nil {
				return types.Bool()
			}
		}
		if !lt.IsError() && !rt.IsError() && !lt.Equals(rt) {
			s.d.Error(n.Loc(), "cannot compare %s with %s", lt, rt)
		}
		return types.Bool()
	}
	if bitwiseOps[n.Op] {
		if (!lt.IsInteger() && !lt.IsError()) || (!rt.IsInteger() && !rt.IsError()) {
			s.d.Error(n.Loc(), "bitwise operator requires integer operands, found %s and %s", lt, rt)
		}
		return lt
	}
	if arithOps[n.Op] {
		// Pointer arithmetic is allowed only in unsafe scope (spec.md
		// §4.7, §7).
		if _, ok := lt.(*types.Pointer); ok {
			if !scope.isUnsafe {
				s.d.Error(n.Loc(), "pointer arithmetic requires an 'unsafe' block")
			}
			return lt
		}
		if st, ok := lt.(*types.Struct); ok {
			if m := s.resolveOperatorMethod(st, n.Op); m != nil {
				return m.ReturnType
			}
		}
		if lt.IsError() || rt.IsError() {
			return types.Error()
		}
		if !lt.IsArithmetic() || !rt.IsArithmetic() {
			s.d.Error(n.Loc(), "arithmetic operator requires arithmetic operands, found %s and %s", lt, rt)
			return types.Error()
		}
		// SafeC is strict: no implicit widening, operand types must match
		// exactly (spec.md §4.7).
		if !lt.Equals(rt) {
			s.d.Error(n.Loc(), "operand types must match exactly, found %s and %s (use an explicit cast)", lt, rt)
			return types.Error()
		}
		return lt
	}
	return types.Error()
}

// resolveOperatorMethod looks up the `operatorX` method registered for a
// struct operand of a binary expression (SPEC_FULL.md §5's supplemented
// "operator overload method naming", also used by the Ordered trait check
// in generics.go).
func (s *Sema) resolveOperatorMethod(st *types.Struct, op ast.BinaryOp) *ast.FunctionDecl {
	name := op.MethodName()
	if name == "" {
		return nil
	}
	return s.methods[st.Name+"::"+name]
}

func (s *Sema) checkTernary(n *ast.TernaryExpr, scope *Scope, nctx nullCtx) types.Type {
	s.checkExpr(n.Cond, scope, nctx)
	tt := s.checkExpr(n.Then, scope, nctx)
	et := s.checkExpr(n.Else, scope, nctx)
	if !tt.IsError() && !et.IsError() && !tt.Equals(et) {
		s.d.Error(n.Loc(), "ternary branches must match exactly, found %s and %s", tt, et)
		return types.Error()
	}
	return tt
}

func (s *Sema) checkSubscript(n *ast.SubscriptExpr, scope *Scope, nctx nullCtx) types.Type {
	bt := s.checkExpr(n.Base, scope, nctx)
	s.checkExpr(n.Index, scope, nctx)
	switch v := bt.(type) {
	case *types.Pointer:
		if !scope.isUnsafe {
			s.d.Error(n.Loc(), "raw-pointer subscript requires an 'unsafe' block")
		}
		n.SetLValue(true)
		return v.Elem
	case *types.Array:
		n.SetLValue(n.Base.IsLValue())
		return v.Elem
	case *types.Slice:
		n.SetLValue(true)
		return v.Elem
	default:
		if !bt.IsError() {
			s.d.Error(n.Loc(), "cannot subscript a value of type %s", bt)
		}
		return types.Error()
	}
}

func (s *Sema) checkMember(n *ast.MemberExpr, scope *Scope, nctx nullCtx) types.Type {
	bt := s.checkExpr(n.Base, scope, nctx)

	var st *types.Struct
	switch v := bt.(type) {
	case *types.Pointer:
		if !n.Arrow {
			if !bt.IsError() {
				s.d.Error(n.Loc(), "use '->' to access a member through a raw pointer")
			}
			return types.Error()
		}
		if !scope.isUnsafe {
			s.d.Error(n.Loc(), "raw-pointer member access requires an 'unsafe' block")
		}
		st, _ = v.Elem.(*types.Struct)
	case *types.Reference:
		// `.` on a reference auto-dereferences (spec.md §4.7); `->` is
		// also accepted for C-familiarity.
		if v.Nullable && !nctx.isNonNull(symOf(n.Base)) {
			s.d.Error(n.Loc(), "dereference of nullable reference requires a prior null check")
		}
		st, _ = v.Elem.(*types.Struct)
	case *types.Struct:
		st = v
	case *types.Tuple:
		idx, ok := tupleIndex(n.Field)
		if !ok || idx < 0 || idx >= len(v.Elements) {
			s.d.Error(n.Loc(), "tuple has no element %s", n.Field)
			return types.Error()
		}
		n.SetLValue(n.Base.IsLValue())
		return v.Elements[idx]
	default:
		if !bt.IsError() {
			s.d.Error(n.Loc(), "cannot access member '%s' of type %s", n.Field, bt)
		}
		return types.Error()
	}
	if st == nil {
		return types.Error()
	}
	f := st.FindField(n.Field)
	if f == nil {
		s.d.Error(n.Loc(), "struct '%s' has no field '%s'", st.Name, n.Field)
		return types.Error()
	}
	n.SetLValue(true)
	return f.Type
}

func symOf(e ast.Expr) *Symbol {
	id, ok := e.(*ast.IdentExpr)
	if !ok {
		return nil
	}
	sym, _ := id.Resolved.(*Symbol)
	return sym
}

func tupleIndex(field string) (int, bool) {
	n := 0
	if field == "" {
		return 0, false
	}
	for _, c := range field {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func (s *Sema) checkCast(n *ast.CastExpr, scope *Scope, nctx nullCtx) types.Type {
	n.Target = s.resolveType(n.Target, nil)
	ot := s.checkExpr(n.Operand, scope, nctx)
	if _, ok := ot.(*types.Reference); ok {
		if _, ok := n.Target.(*types.Pointer); ok {
			if !scope.isUnsafe {
				s.d.Error(n.Loc(), "casting a reference to a raw pointer requires an 'unsafe' block")
			}
		}
	}
	return n.Target
}

func (s *Sema) checkAssign(n *ast.AssignExpr, scope *Scope, nctx nullCtx) types.Type {
	tt := s.checkExpr(n.Target, scope, nctx)
	vt := s.checkExpr(n.Value, scope, nctx)

	if !n.Target.IsLValue() && !tt.IsError() {
		s.d.Error(n.Loc(), "assignment target is not an lvalue")
	}
	targetDepth := scope.depth
	if ident, ok := n.Target.(*ast.IdentExpr); ok {
		if sym, ok := ident.Resolved.(*Symbol); ok {
			if sym.IsConst {
				s.d.Error(n.Loc(), "cannot assign to const variable '%s'", sym.Name)
			}
			targetDepth = sym.ScopeDepth
			if n.Op == ast.AssignPlain {
				scope.markInitialized(sym)
			}
		}
	}
	if n.Op == ast.AssignPlain {
		if !tt.IsError() && !vt.IsError() && !types.AssignmentCompatible(vt, tt) {
			s.d.Error(n.Loc(), "cannot assign value of type %s to target of type %s", vt, tt)
		}
	} else if !tt.IsError() && !vt.IsError() && !tt.IsArithmetic() {
		s.d.Error(n.Loc(), "compound assignment requires an arithmetic target, found %s", tt)
	}
	s.checkStackEscapeOnAssign(n.Value, scope, targetDepth)
	return tt
}

func (s *Sema) checkAddrOf(n *ast.AddrOfExpr, scope *Scope, nctx nullCtx) types.Type {
	ot := s.checkExpr(n.Operand, scope, nctx)
	if !n.Operand.IsLValue() && !ot.IsError() {
		s.d.Error(n.Loc(), "cannot take the address of a non-lvalue")
	}
	n.SetLValue(false)
	if ref, ok := ot.(*types.Reference); ok {
		// References are value handles, not themselves addressable storage
		// (the type system has no reference-to-reference variant); taking
		// the address of an already-reference-typed operand just forwards
		// its reference value instead of wrapping it again.
		return ref
	}
	return types.NewReference(ot, types.RegionStack, false, n.Operand.IsLValue(), "")
}

func (s *Sema) checkDeref(n *ast.DerefExpr, scope *Scope, nctx nullCtx) types.Type {
	ot := s.checkExpr(n.Operand, scope, nctx)
	switch v := ot.(type) {
	case *types.Pointer:
		if !scope.isUnsafe {
			s.d.Error(n.Loc(), "dereference of raw pointer requires an 'unsafe' block")
		}
		n.SetLValue(!v.IsConst)
		return v.Elem
	case *types.Reference:
		if v.Nullable && !nctx.isNonNull(symOf(n.Operand)) {
			s.d.Error(n.Loc(), "dereference of nullable reference requires a prior null check")
		}
		n.SetLValue(v.Mutable)
		return v.Elem
	default:
		if !ot.IsError() {
			s.d.Error(n.Loc(), "cannot dereference a value of type %s", ot)
		}
		return types.Error()
	}
}
