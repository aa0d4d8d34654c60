package sema

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/types"
)

// exprFormedDepth reports the scope depth at which e, if it evaluates to a
// Stack-region reference, was formed: the current scope for a fresh `&x`,
// or the declaring symbol's own scope depth when e is a plain identifier
// already bound to a Stack reference (spec.md §3 "a Stack reference never
// escapes to a variable whose scope depth is strictly less than the depth
// at which it was formed").
func (s *Sema) exprFormedDepth(e ast.Expr, scope *Scope) (int, bool) {
	switch n := e.(type) {
	case *ast.AddrOfExpr:
		if ref, ok := n.Type().(*types.Reference); ok && ref.RegionOf == types.RegionStack {
			return scope.depth, true
		}
	case *ast.IdentExpr:
		if ref, ok := n.Type().(*types.Reference); ok && ref.RegionOf == types.RegionStack {
			if sym, ok := n.Resolved.(*Symbol); ok {
				return sym.ScopeDepth, true
			}
			return scope.depth, true
		}
	}
	return 0, false
}

// checkStackEscapeOnReturn reports the region-escape error required on
// every `return` of a Stack reference: the caller's scope is always
// shallower than any depth inside the returning function (spec.md §4.7,
// boundary scenario 3).
func (s *Sema) checkStackEscapeOnReturn(value ast.Expr, scope *Scope) {
	if _, ok := s.exprFormedDepth(value, scope); ok {
		s.d.Error(value.Loc(), "stack reference escape: cannot return a reference to a stack-allocated value")
	}
}

// checkStackEscapeOnAssign reports a region-escape error when value is a
// Stack reference formed at a depth strictly greater than targetDepth, the
// scope depth of the variable being assigned into (spec.md §4.7
// "assignment of a Stack reference to an outer-scope variable").
func (s *Sema) checkStackEscapeOnAssign(value ast.Expr, scope *Scope, targetDepth int) {
	if formed, ok := s.exprFormedDepth(value, scope); ok && formed > targetDepth {
		s.d.Error(value.Loc(), "stack reference escape: assigning a stack reference to a variable from an outer scope")
	}
}

// checkStackEscapeIntoGlobal reports a region-escape error on any attempt
// to store a Stack reference into file-scope storage (spec.md §4.7
// "storing into a global").
func (s *Sema) checkStackEscapeIntoGlobal(value ast.Expr, scope *Scope) {
	if _, ok := s.exprFormedDepth(value, scope); ok {
		s.d.Error(value.Loc(), "stack reference escape: cannot store a reference to a stack-allocated value in a global")
	}
}
