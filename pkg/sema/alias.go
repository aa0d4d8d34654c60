package sema

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/types"
)

// recordBorrow records a new alias-map entry when initExpr is `&expr`
// borrowing a named local, and rejects a mutable borrow of a target that
// already has a borrow (mutable or not) formed at the same scope depth
// (spec.md §4.7 "alias / mutability
// analysis"): "cannot create mutable reference: already referenced in same
// scope".
func (s *Sema) recordBorrow(initExpr ast.Expr, varName string, depth int) {
	ao, ok := initExpr.(*ast.AddrOfExpr)
	if !ok {
		return
	}
	ident, ok := ao.Operand.(*ast.IdentExpr)
	if !ok {
		return
	}
	target := ident.Name
	mutable := false
	if ref, ok := ao.Type().(*types.Reference); ok {
		mutable = ref.Mutable
	}
	if mutable {
		for _, r := range s.aliases[target] {
			if r.depth == depth {
				s.d.Error(initExpr.Loc(), "cannot create mutable reference: '%s' already referenced in same scope", target)
				break
			}
		}
	}
	s.aliases[target] = append(s.aliases[target], aliasRecord{target: target, mutable: mutable, depth: depth})
}
