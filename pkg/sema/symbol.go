// Package sema implements SafeC's two-pass semantic analyzer (spec.md
// §4.7): symbol collection, then name resolution, type checking, region
// escape analysis, mutable-alias exclusivity, nullability narrowing,
// definite-initialization tracking, the unsafe boundary, trait
// satisfaction, and generics monomorphization. It follows go-corset's
// pkg/corset/resolver/checker split — a scope-chain symbol table built in
// one pass, then a second pass that walks bodies against it — generalized
// to SafeC's richer invariant set.
package sema

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/types"
)

// SymbolKind classifies a Symbol (spec.md §3).
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymFunction
	SymType
	SymRegion
	SymEnum
)

// Symbol is one entry in a Scope: a name bound to a kind, a type, an
// optional back-pointer to its declaration, the scope depth it was
// introduced at, and (for variables) whether it is definitely initialized.
type Symbol struct {
	Name        string
	Kind        SymbolKind
	Type        types.Type
	Decl        ast.Referent
	ScopeDepth  int
	Initialized bool
	IsConst     bool
	// Slot is this symbol's index into its owning Scope's definite-init
	// bitset (SPEC_FULL.md §4 domain-stack entry for bits-and-blooms/bitset);
	// meaningful only for SymVariable.
	Slot int
	// NullSlot indexes this symbol into the function-wide nullability
	// narrowing bitset (null.go); allocated once per declaration for the
	// lifetime of the enclosing function check.
	NullSlot int
}

// RefName implements ast.Referent, letting a Symbol be installed directly
// as an IdentExpr's resolved back-pointer for every symbol kind (variable,
// function, enumerator constant, region).
func (sym *Symbol) RefName() string { return sym.Name }

// RefType implements ast.Referent.
func (sym *Symbol) RefType() types.Type { return sym.Type }

// Scope is one lexical scope: a flat name table, its nesting depth, and
// whether it is (transitively) inside an `unsafe` block.
type Scope struct {
	parent   *Scope
	names    map[string]*Symbol
	depth    int
	isUnsafe bool
	// initBits tracks definite initialization for every variable declared
	// directly in this scope, one bit per Symbol.Slot, flipped on
	// assignment and tested on read (spec.md §4.7 "definite
	// initialization"; SPEC_FULL.md §4 wires bits-and-blooms/bitset here).
	initBits *InitSet
	nextSlot int
}

// newScope constructs a child scope of parent (nil for the root scope).
func newScope(parent *Scope) *Scope {
	depth := 0
	unsafe := false
	if parent != nil {
		depth = parent.depth + 1
		unsafe = parent.isUnsafe
	}
	return &Scope{parent: parent, names: map[string]*Symbol{}, depth: depth, isUnsafe: unsafe, initBits: NewInitSet()}
}

// declare inserts a new symbol into this scope, returning false if the
// name was already bound directly in this scope (a duplicate declaration,
// spec.md §7).
func (s *Scope) declare(sym *Symbol) bool {
	if _, exists := s.names[sym.Name]; exists {
		return false
	}
	sym.ScopeDepth = s.depth
	if sym.Kind == SymVariable {
		sym.Slot = s.nextSlot
		s.nextSlot++
		if sym.Initialized {
			s.initBits.Set(sym.Slot)
		}
	}
	s.names[sym.Name] = sym
	return true
}

// lookup walks this scope and its ancestors, inner-to-outer, for name
// (spec.md §3: "lookup walks inner-to-outer").
func (s *Scope) lookup(name string) *Symbol {
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.names[name]; ok {
			return sym
		}
	}
	return nil
}

// lookupLocal looks up name directly in this scope only, not its ancestors.
func (s *Scope) lookupLocal(name string) *Symbol {
	return s.names[name]
}

// markInitialized flips the definite-init bit for sym in the scope at its
// declared depth, walking up from s to find the scope sym actually lives
// in.
func (s *Scope) markInitialized(sym *Symbol) {
	sym.Initialized = true
	for sc := s; sc != nil; sc = sc.parent {
		if sc.names[sym.Name] == sym {
			sc.initBits.Set(sym.Slot)
			return
		}
	}
}

// isInitialized reports whether sym's definite-init bit is currently set.
func (s *Scope) isInitialized(sym *Symbol) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.names[sym.Name] == sym {
			return sc.initBits.Test(sym.Slot)
		}
	}
	return sym.Initialized
}
