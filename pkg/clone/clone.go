// Package clone performs the deep copy of Expr/Stmt/FunctionDecl trees,
// with generic type substitution, that Sema's generics monomorphization
// uses to turn one generic FunctionDecl into a concrete clone per distinct
// type-argument tuple (spec.md §4.6). It mirrors go-corset's
// pkg/corset/ast substitution pass: a full structural walk that rebuilds
// every node rather than mutating the original in place, so the generic
// template stays reusable for the next instantiation.
package clone

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/types"
)

// Subst maps a generic parameter name (e.g. "T") to the concrete type it is
// instantiated with.
type Subst map[string]types.Type

// Function deep-copies fn, substituting every Generic{name} type occurrence
// per subst. Identifier references lose their resolved back-pointers — the
// clone is re-resolved by Sema in its own scope (spec.md §4.6). The clone's
// GenericParams is left empty; the caller installs a mangled Name.
func Function(fn *ast.FunctionDecl, subst Subst) *ast.FunctionDecl {
	params := make([]*ast.Param, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = &ast.Param{Name: p.Name, Type: substType(p.Type, subst)}
	}
	var body *ast.CompoundStmt
	if fn.Body != nil {
		body = Stmt(fn.Body, subst).(*ast.CompoundStmt)
	}
	return &ast.FunctionDecl{
		DeclBase:    ast.DeclBase{At: fn.At},
		Name:        fn.Name,
		ReturnType:  substType(fn.ReturnType, subst),
		Params:      params,
		Body:        body,
		MethodOwner: fn.MethodOwner,
		IsInline:    fn.IsInline,
		IsExtern:    fn.IsExtern,
		IsConst:     fn.IsConst,
		IsConsteval: fn.IsConsteval,
		IsMustUse:   fn.IsMustUse,
		IsVariadic:  fn.IsVariadic,
		IsStatic:    fn.IsStatic,
	}
}

// substType rewrites t, replacing every Generic{name} leaf found in subst
// and recursing structurally through every composite variant (spec.md
// §4.7's matchType unification walks the same shape in reverse).
func substType(t types.Type, subst Subst) types.Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *types.Generic:
		if c, ok := subst[v.Name]; ok {
			return c
		}
		return t
	case *types.Pointer:
		return types.NewPointer(substType(v.Elem, subst), v.IsConst)
	case *types.Reference:
		return types.NewReference(substType(v.Elem, subst), v.RegionOf, v.Nullable, v.Mutable, v.ArenaName)
	case *types.Array:
		return types.NewArray(substType(v.Elem, subst), v.Size)
	case *types.Optional:
		return types.NewOptional(substType(v.Inner, subst))
	case *types.Slice:
		return types.NewSlice(substType(v.Elem, subst))
	case *types.Tuple:
		elems := make([]types.Type, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = substType(e, subst)
		}
		return types.NewTuple(elems)
	case *types.Function:
		params := make([]types.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = substType(p, subst)
		}
		return types.NewFunction(substType(v.Return, subst), params, v.Variadic)
	default:
		// Primitive, Struct, Enum, Newtype, Typeof, Error: nothing to
		// substitute, returned as-is (shared across clones).
		return t
	}
}

// Type substitutes generic parameters in t per subst. Exported for Sema's
// monomorphization driver, which substitutes the declared parameter types
// before unifying against call-site argument types.
func Type(t types.Type, subst Subst) types.Type { return substType(t, subst) }
