package sema

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/types"
)

// checkAll is Sema pass 2 (spec.md §4.7): walk every declaration's body
// against the symbol table collection built in pass 1. The translation
// unit's Decls list is walked by index, not range, because monomorphization
// (see generics.go) appends clones to it mid-traversal and those clones
// must themselves be checked.
func (s *Sema) checkAll(tu *ast.TranslationUnit) {
	for i := 0; i < len(tu.Decls); i++ {
		switch n := tu.Decls[i].(type) {
		case *ast.FunctionDecl:
			s.checkFunction(n)
		case *ast.GlobalVarDecl:
			s.checkGlobal(n)
		case *ast.StaticAssertDecl:
			s.checkStaticAssertDecl(n)
		}
	}
}

func (s *Sema) checkFunction(fn *ast.FunctionDecl) {
	if fn.Body == nil || len(fn.GenericParams) > 0 {
		// A declaration-only prototype has no body to check; a generic
		// template is only checked once instantiated with concrete types
		// (spec.md §4.7 "generics monomorphization"), via checkMonomorphic.
		return
	}
	prevFn := s.curFn
	s.curFn = fn
	defer func() { s.curFn = prevFn }()

	s.nullSlot = 0
	scope := newScope(s.root)
	for _, p := range fn.Params {
		scope.declare(&Symbol{Name: p.Name, Kind: SymVariable, Type: p.Type, Decl: p, Initialized: true, NullSlot: s.allocNullSlot()})
	}
	nctx := newNullCtx()
	s.checkStmt(fn.Body, scope, nctx)
}

// checkMonomorphic type-checks a freshly cloned, fully-substituted function
// clone as an ordinary function body (spec.md §4.7: "appended to the
// translation unit, and checked as a regular function").
func (s *Sema) checkMonomorphic(fn *ast.FunctionDecl) {
	prevFn := s.curFn
	s.curFn = fn
	defer func() { s.curFn = prevFn }()

	s.nullSlot = 0
	scope := newScope(s.root)
	for _, p := range fn.Params {
		scope.declare(&Symbol{Name: p.Name, Kind: SymVariable, Type: p.Type, Decl: p, Initialized: true, NullSlot: s.allocNullSlot()})
	}
	if fn.Body != nil {
		s.checkStmt(fn.Body, scope, newNullCtx())
	}
}

func (s *Sema) checkGlobal(n *ast.GlobalVarDecl) {
	if n.Init == nil {
		return
	}
	scope := s.root
	t := s.checkExpr(n.Init, scope, newNullCtx())
	if !t.IsError() && !n.ResolvedType.IsError() && !types.AssignmentCompatible(t, n.ResolvedType) {
		s.d.Error(n.Init.Loc(), "cannot initialize global '%s' of type %s with value of type %s", n.Name, n.ResolvedType, t)
	}
	s.checkStackEscapeIntoGlobal(n.Init, scope)
}

func (s *Sema) checkStaticAssertDecl(n *ast.StaticAssertDecl) {
	if s.opts.NoConstEval {
		return
	}
	v, ok := s.ce.EvalInt(n.Cond)
	if !ok {
		return // consteval already recorded a fatal diagnostic.
	}
	if v == 0 {
		msg := n.Message
		if msg == "" {
			msg = "static assertion failed"
		}
		s.d.Error(n.Loc(), "static_assert failed: %s", msg)
	}
}
