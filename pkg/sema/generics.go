package sema

import (
	"strings"

	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/clone"
	"github.com/safec-org/safec/pkg/types"
)

// checkCall dispatches a call expression: a plain function call (possibly
// generic, driving monomorphization), a method call through a MemberExpr
// callee, or a call through a function-valued expression (spec.md §4.6,
// §4.7).
func (s *Sema) checkCall(n *ast.CallExpr, scope *Scope, nctx nullCtx) types.Type {
	if me, ok := n.Callee.(*ast.MemberExpr); ok {
		if t := s.tryMethodCall(n, me, scope, nctx); t != nil {
			return t
		}
	}

	ct := s.checkExpr(n.Callee, scope, nctx)
	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = s.checkExpr(a, scope, nctx)
	}

	if ident, ok := n.Callee.(*ast.IdentExpr); ok {
		s.checkFreestandingCall(n.Callee, ident.Name)
		if sym, ok := ident.Resolved.(*Symbol); ok {
			if fd, ok := sym.Decl.(*ast.FunctionDecl); ok && len(fd.GenericParams) > 0 {
				mono := s.monomorphize(fd, argTypes, n)
				if mono == nil {
					return types.Error()
				}
				s.checkArgTypes(n, paramTypes(mono.Params), argTypes, mono.IsVariadic)
				return mono.ReturnType
			}
		}
	}

	fn, ok := ct.(*types.Function)
	if !ok {
		if !ct.IsError() {
			s.d.Error(n.Loc(), "cannot call a value of type %s", ct)
		}
		return types.Error()
	}
	s.checkArgTypes(n, fn.Params, argTypes, fn.Variadic)
	return fn.Return
}

// tryMethodCall handles `base.method(args)`. It returns nil (not
// types.Error()) when base's type is not a struct with a registered method
// of that name, so the caller falls back to treating the MemberExpr as a
// plain expression (a struct field that happens to hold a function value).
func (s *Sema) tryMethodCall(n *ast.CallExpr, me *ast.MemberExpr, scope *Scope, nctx nullCtx) types.Type {
	bt := s.checkExpr(me.Base, scope, nctx)
	var st *types.Struct
	switch v := bt.(type) {
	case *types.Struct:
		st = v
	case *types.Reference:
		st, _ = v.Elem.(*types.Struct)
	case *types.Pointer:
		st, _ = v.Elem.(*types.Struct)
	}
	if st == nil {
		return nil
	}
	fn, ok := s.methods[st.Name+"::"+me.Field]
	if !ok {
		return nil
	}
	me.SetType(fn.SignatureType)

	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = s.checkExpr(a, scope, nctx)
	}
	if len(fn.GenericParams) > 0 {
		mono := s.monomorphize(fn, argTypes, n)
		if mono == nil {
			return types.Error()
		}
		s.checkArgTypes(n, paramTypes(mono.Params), argTypes, mono.IsVariadic)
		return mono.ReturnType
	}
	s.checkArgTypes(n, paramTypes(fn.Params), argTypes, fn.IsVariadic)
	return fn.ReturnType
}

func paramTypes(params []*ast.Param) []types.Type {
	out := make([]types.Type, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

// checkArgTypes reports an arity or assignment-compatibility error for each
// mismatched argument; a variadic function's trailing arguments are
// unchecked, matching C-style varargs.
func (s *Sema) checkArgTypes(n *ast.CallExpr, params []types.Type, args []types.Type, variadic bool) {
	if len(args) < len(params) || (!variadic && len(args) > len(params)) {
		s.d.Error(n.Loc(), "call expects %d argument(s), found %d", len(params), len(args))
		return
	}
	for i, p := range params {
		if p.IsError() || args[i].IsError() {
			continue
		}
		if !types.AssignmentCompatible(args[i], p) {
			s.d.Error(n.Args[i].Loc(), "argument %d: cannot pass value of type %s where %s is expected", i+1, args[i], p)
		}
	}
}

// monomorphize infers fn's generic type arguments from the call-site
// argument types via structural unification (matchType), checks each
// inferred type against its declared constraint, and returns the cached or
// freshly built concrete clone. Returns nil (with a diagnostic already
// recorded) when inference or constraint checking fails.
func (s *Sema) monomorphize(fn *ast.FunctionDecl, argTypes []types.Type, n *ast.CallExpr) *ast.FunctionDecl {
	subst := clone.Subst{}
	for i, p := range fn.Params {
		if i >= len(argTypes) {
			break
		}
		if argTypes[i].IsError() {
			continue
		}
		if !matchType(p.Type, argTypes[i], subst) {
			s.d.Error(n.Loc(), "cannot infer generic type arguments for call to '%s': argument %d has type %s", fn.Name, i+1, argTypes[i])
			return nil
		}
	}

	names := make([]string, len(fn.GenericParams))
	for i, gp := range fn.GenericParams {
		t, ok := subst[gp.Name]
		if !ok {
			s.d.Error(n.Loc(), "cannot infer type argument '%s' for call to '%s'", gp.Name, fn.Name)
			return nil
		}
		if !s.satisfiesConstraint(t, gp.Constraint) {
			s.d.Error(n.Loc(), "type %s does not satisfy constraint '%s'", t, gp.Constraint)
			return nil
		}
		names[i] = t.String()
	}

	key := monoKey{fnName: fn.Name, args: strings.Join(names, ",")}
	if cached, ok := s.monoCache[key]; ok {
		return cached
	}

	mono := clone.Function(fn, subst)
	mono.Name = fn.Name + "_" + strings.Join(names, "_")
	mono.SignatureType = types.NewFunction(mono.ReturnType, paramTypes(mono.Params), mono.IsVariadic)
	s.monoCache[key] = mono
	s.tu.Decls = append(s.tu.Decls, mono)
	s.root.declare(&Symbol{Name: mono.Name, Kind: SymFunction, Type: mono.SignatureType, Decl: mono, Initialized: true, IsConst: true})
	s.checkMonomorphic(mono)
	return mono
}

// matchType structurally unifies declared (which may contain Generic
// leaves) against actual, recording each leaf's binding into subst. It
// mirrors substType's structural walk in reverse (spec.md §4.6).
func matchType(declared, actual types.Type, subst clone.Subst) bool {
	switch d := declared.(type) {
	case *types.Generic:
		if existing, ok := subst[d.Name]; ok {
			return existing.Equals(actual)
		}
		subst[d.Name] = actual
		return true
	case *types.Pointer:
		a, ok := actual.(*types.Pointer)
		return ok && matchType(d.Elem, a.Elem, subst)
	case *types.Reference:
		a, ok := actual.(*types.Reference)
		return ok && matchType(d.Elem, a.Elem, subst)
	case *types.Array:
		a, ok := actual.(*types.Array)
		return ok && matchType(d.Elem, a.Elem, subst)
	case *types.Optional:
		a, ok := actual.(*types.Optional)
		return ok && matchType(d.Inner, a.Inner, subst)
	case *types.Slice:
		a, ok := actual.(*types.Slice)
		return ok && matchType(d.Elem, a.Elem, subst)
	case *types.Tuple:
		a, ok := actual.(*types.Tuple)
		if !ok || len(a.Elements) != len(d.Elements) {
			return false
		}
		for i := range d.Elements {
			if !matchType(d.Elements[i], a.Elements[i], subst) {
				return false
			}
		}
		return true
	case *types.Function:
		a, ok := actual.(*types.Function)
		if !ok || a.Variadic != d.Variadic || len(a.Params) != len(d.Params) {
			return false
		}
		for i := range d.Params {
			if !matchType(d.Params[i], a.Params[i], subst) {
				return false
			}
		}
		return matchType(d.Return, a.Return, subst)
	default:
		return actual.IsError() || declared.Equals(actual)
	}
}

// satisfiesConstraint checks a generic type argument against its declared
// trait bound (SPEC_FULL.md §5's supplemented trait system: Numeric and
// Ordered, the two constraints generic arithmetic code needs). An empty
// constraint accepts anything.
func (s *Sema) satisfiesConstraint(t types.Type, constraint string) bool {
	switch constraint {
	case "", "Any":
		return true
	case "Numeric":
		return t.IsArithmetic()
	case "Ordered":
		if t.IsArithmetic() {
			return true
		}
		if st, ok := t.(*types.Struct); ok {
			return s.resolveOperatorMethod(st, ast.BinLt) != nil
		}
		return false
	default:
		return true
	}
}
