package sema

import "github.com/safec-org/safec/pkg/ast"

// hostedDenylist is the small built-in set of hosted/stdlib call names
// freestanding mode warns against (SPEC_FULL.md §5, supplemented from
// original_source's `freestanding_` flag).
var hostedDenylist = map[string]bool{
	"malloc": true, "free": true, "printf": true, "exit": true,
}

// checkFreestandingCall warns when opts.Freestanding is set and name names
// a hosted/stdlib function, regardless of whether the call site actually
// resolved to a declared symbol of that name (the denylist check is purely
// textual, matching SPEC_FULL.md §5's "small built-in denylist" description).
func (s *Sema) checkFreestandingCall(callee ast.Expr, name string) {
	if !s.opts.Freestanding || !hostedDenylist[name] {
		return
	}
	s.d.Warn(callee.Loc(), "call to hosted function '%s' in freestanding mode", name)
}
