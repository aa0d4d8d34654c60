package sema

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/types"
)

// checkStmt dispatches statement checking. scope is the lexical scope the
// statement executes in; nctx carries the current nullability-narrowing
// state, threaded (and cloned at branch points) through the traversal.
func (s *Sema) checkStmt(st ast.Stmt, scope *Scope, nctx nullCtx) {
	switch n := st.(type) {
	case *ast.CompoundStmt:
		s.checkCompound(n, newScope(scope), nctx)
	case *ast.ExprStmt:
		s.checkExprStmtDiscard(n, scope, nctx)
	case *ast.IfStmt:
		s.checkIf(n, scope, nctx)
	case *ast.IfConstStmt:
		s.checkIfConst(n, scope, nctx)
	case *ast.WhileStmt:
		s.checkExpr(n.Cond, scope, nctx)
		s.checkStmt(n.Body, scope, nctx.clone())
	case *ast.DoWhileStmt:
		s.checkStmt(n.Body, scope, nctx.clone())
		s.checkExpr(n.Cond, scope, nctx)
	case *ast.ForStmt:
		s.checkFor(n, scope, nctx)
	case *ast.ReturnStmt:
		s.checkReturn(n, scope, nctx)
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.GotoStmt:
		// No expression to check; loop/label structure validity is left to
		// the (external) code generator per spec.md §4.9.
	case *ast.LabelStmt:
		s.checkStmt(n.Stmt, scope, nctx)
	case *ast.VarDeclStmt:
		s.checkVarDecl(n, scope, nctx)
	case *ast.UnsafeStmt:
		unsafeScope := newScope(scope)
		unsafeScope.isUnsafe = true
		s.checkCompound(n.Body, unsafeScope, nctx)
	case *ast.StaticAssertStmt:
		s.checkStaticAssertStmt(n)
	case *ast.DeferStmt:
		s.checkStmt(n.Inner, scope, nctx)
	case *ast.MatchStmt:
		s.checkMatch(n, scope, nctx)
	case *ast.AsmStmt:
		if !scope.isUnsafe {
			s.d.Error(n.Loc(), "inline-asm requires an 'unsafe' block")
		}
	}
}

func (s *Sema) checkCompound(n *ast.CompoundStmt, scope *Scope, nctx nullCtx) {
	for _, c := range n.Stmts {
		s.checkStmt(c, scope, nctx)
	}
	s.evictAliases(scope.depth)
}

// checkExprStmtDiscard checks a bare expression statement and, per
// SPEC_FULL.md §5's must_use enforcement, warns when the discarded value
// came from a call to a must_use function.
func (s *Sema) checkExprStmtDiscard(n *ast.ExprStmt, scope *Scope, nctx nullCtx) {
	s.checkExpr(n.Expr, scope, nctx)
	if call, ok := n.Expr.(*ast.CallExpr); ok {
		if callee, ok := call.Callee.(*ast.IdentExpr); ok {
			if fn, ok := callee.Resolved.(*Symbol); ok {
				if fd, ok := fn.Decl.(*ast.FunctionDecl); ok && fd.IsMustUse {
					s.d.Warn(n.Loc(), "result of must_use function '%s' is discarded", fd.Name)
				}
			}
		}
	}
}

func (s *Sema) checkIf(n *ast.IfStmt, scope *Scope, nctx nullCtx) {
	s.checkExpr(n.Cond, scope, nctx)
	thenCtx := nctx.clone()
	elseCtx := nctx.clone()
	if sym, nonNullOnTrue, ok := s.narrowTarget(n.Cond, scope); ok {
		if nonNullOnTrue {
			thenCtx.markNonNull(sym)
		} else {
			elseCtx.markNonNull(sym)
		}
	}
	s.checkStmt(n.Then, scope, thenCtx)
	if n.Else != nil {
		s.checkStmt(n.Else, scope, elseCtx)
	}
}

// checkIfConst evaluates the compile-time condition and checks only the
// taken branch, matching the preprocessor's #if semantics for the
// SafeC-level compile-time branch (spec.md §4.5).
func (s *Sema) checkIfConst(n *ast.IfConstStmt, scope *Scope, nctx nullCtx) {
	if s.opts.NoConstEval {
		// Without ConstEval, the condition cannot be folded; check only the
		// Then branch, the conservative choice that still type-checks the
		// common case (SPEC_FULL.md §3, config.Options.NoConstEval).
		s.checkStmt(n.Then, scope, nctx.clone())
		return
	}
	v, ok := s.ce.EvalInt(n.Cond)
	if !ok {
		return
	}
	if v != 0 {
		s.checkStmt(n.Then, scope, nctx.clone())
	} else if n.Else != nil {
		s.checkStmt(n.Else, scope, nctx.clone())
	}
}

func (s *Sema) checkFor(n *ast.ForStmt, scope *Scope, nctx nullCtx) {
	forScope := newScope(scope)
	if n.Init != nil {
		s.checkStmt(n.Init, forScope, nctx)
	}
	if n.Cond != nil {
		s.checkExpr(n.Cond, forScope, nctx)
	}
	if n.Post != nil {
		s.checkExpr(n.Post, forScope, nctx)
	}
	s.checkStmt(n.Body, forScope, nctx.clone())
	s.evictAliases(forScope.depth)
}

func (s *Sema) checkReturn(n *ast.ReturnStmt, scope *Scope, nctx nullCtx) {
	if n.Value == nil {
		return
	}
	t := s.checkExpr(n.Value, scope, nctx)
	if s.curFn != nil && !t.IsError() && !s.curFn.ReturnType.IsError() {
		if !types.AssignmentCompatible(t, s.curFn.ReturnType) {
			s.d.Error(n.Loc(), "cannot return value of type %s from function returning %s", t, s.curFn.ReturnType)
		}
	}
	s.checkStackEscapeOnReturn(n.Value, scope)
}

func (s *Sema) checkVarDecl(n *ast.VarDeclStmt, scope *Scope, nctx nullCtx) {
	declaredType := s.resolveType(n.DeclaredType, nil)
	if tf, ok := declaredType.(*types.Typeof); ok {
		declaredType = s.resolveTypeof(tf, scope, nctx)
	}
	initialized := n.Init != nil

	if n.Init != nil {
		initType := s.checkExpr(n.Init, scope, nctx)
		compatible := types.AssignmentCompatible(initType, declaredType)
		if !compatible {
			if declRef, ok := declaredType.(*types.Reference); ok {
				if _, initIsRef := initType.(*types.Reference); !initIsRef {
					// `&region T x = value` where value has type T (not
					// already a reference) materializes a fresh region slot
					// holding value and binds x as a reference to it
					// (spec.md §8 boundary scenario 2): `&stack int x = 0`
					// is sugar for "allocate an int stack slot holding 0,
					// and x references it", not "assign 0 to a reference".
					compatible = types.AssignmentCompatible(initType, declRef.Elem)
				}
			}
		}
		if !initType.IsError() && !declaredType.IsError() && !compatible {
			s.d.Error(n.Init.Loc(), "cannot initialize '%s' of type %s with value of type %s", n.Name, declaredType, initType)
		}
		s.checkStackEscapeOnAssign(n.Init, scope, scope.depth)
	}

	n.ResolvedType = declaredType
	sym := &Symbol{
		Name: n.Name, Kind: SymVariable, Type: declaredType, Decl: n,
		Initialized: initialized || declaredType.IsAggregate(), IsConst: n.IsConst,
		NullSlot: s.allocNullSlot(),
	}
	if !scope.declare(sym) {
		s.d.Error(n.Loc(), "duplicate declaration of '%s'", n.Name)
	}
	s.recordBorrow(n.Init, n.Name, scope.depth)
}

func (s *Sema) checkStaticAssertStmt(n *ast.StaticAssertStmt) {
	if s.opts.NoConstEval {
		return
	}
	v, ok := s.ce.EvalInt(n.Cond)
	if !ok {
		return
	}
	if v == 0 {
		msg := n.Message
		if msg == "" {
			msg = "static assertion failed"
		}
		s.d.Error(n.Loc(), "static_assert failed: %s", msg)
	}
}

func (s *Sema) checkMatch(n *ast.MatchStmt, scope *Scope, nctx nullCtx) {
	s.checkExpr(n.Subject, scope, nctx)
	for _, arm := range n.Arms {
		armScope := newScope(scope)
		for _, pat := range arm.Patterns {
			if pat.Bind != "" {
				armScope.declare(&Symbol{Name: pat.Bind, Kind: SymVariable, Type: types.Error(), Initialized: true, NullSlot: s.allocNullSlot()})
			}
		}
		s.checkStmt(arm.Body, armScope, nctx.clone())
		s.evictAliases(armScope.depth)
	}
}

// evictAliases removes every alias-map record formed at exactly depth,
// implementing "on scope exit, evict records at that depth" (spec.md §4.7).
func (s *Sema) evictAliases(depth int) {
	for target, recs := range s.aliases {
		kept := recs[:0]
		for _, r := range recs {
			if r.depth != depth {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			delete(s.aliases, target)
		} else {
			s.aliases[target] = kept
		}
	}
}

// narrowTarget inspects a conditional's controlling expression for the
// `ref == null` / `ref != null` shape (spec.md §4.7) and reports the
// narrowed symbol plus whether it is proven non-null when cond is true.
func (s *Sema) narrowTarget(cond ast.Expr, scope *Scope) (*Symbol, bool, bool) {
	bin, ok := cond.(*ast.BinaryExpr)
	if !ok || (bin.Op != ast.BinEq && bin.Op != ast.BinNe) {
		return nil, false, false
	}
	ident, isNull := identAndNullSide(bin.Left, bin.Right)
	if ident == nil || !isNull {
		return nil, false, false
	}
	sym, ok := ident.Resolved.(*Symbol)
	if !ok {
		return nil, false, false
	}
	nonNullOnTrue := bin.Op == ast.BinNe
	return sym, nonNullOnTrue, true
}

func identAndNullSide(l, r ast.Expr) (*ast.IdentExpr, bool) {
	if id, ok := l.(*ast.IdentExpr); ok {
		if _, ok := r.(*ast.NullLitExpr); ok {
			return id, true
		}
	}
	if id, ok := r.(*ast.IdentExpr); ok {
		if _, ok := l.(*ast.NullLitExpr); ok {
			return id, true
		}
	}
	return nil, false
}
