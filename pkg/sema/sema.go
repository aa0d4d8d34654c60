package sema

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/config"
	"github.com/safec-org/safec/pkg/consteval"
	"github.com/safec-org/safec/pkg/diag"
	"github.com/safec-org/safec/pkg/types"
)

// aliasRecord is one entry of the alias map (spec.md §3): a safe reference
// borrowing `target`, recorded at the scope depth it was formed at.
type aliasRecord struct {
	target    string
	mutable   bool
	depth     int
}

// monoKey identifies one generic-function instantiation: the generic
// function's name plus the stringified list of concrete type arguments, in
// generic-parameter declaration order (spec.md §4.7).
type monoKey struct {
	fnName string
	args   string
}

// Sema is the semantic analyzer for exactly one TranslationUnit. It owns
// every piece of mutable analysis state — diagnostics, symbol tables,
// region registry, alias map and monomorphization cache — matching spec.md
// §5's "no shared state across units" rule: a fresh Sema is constructed per
// compilation.
type Sema struct {
	d    *diag.Engine
	opts *config.Options
	ce   *consteval.Evaluator

	root *Scope

	structs  map[string]*types.Struct
	enums    map[string]*types.Enum
	regions  map[string]*ast.RegionDecl
	methods  map[string]*ast.FunctionDecl // "Owner::name" -> decl
	typedefs map[string]types.Type

	aliases map[string][]aliasRecord

	monoCache map[monoKey]*ast.FunctionDecl

	tu *ast.TranslationUnit

	curFn    *ast.FunctionDecl
	nullSlot int
}

// allocNullSlot reserves the next slot in the current function's
// nullability-narrowing bitset (null.go).
func (s *Sema) allocNullSlot() int {
	v := s.nullSlot
	s.nullSlot++
	return v
}

// New constructs a Sema instance over opts, reporting through d.
func New(d *diag.Engine, opts *config.Options) *Sema {
	return &Sema{
		d:         d,
		opts:      opts,
		ce:        consteval.New(d),
		structs:   map[string]*types.Struct{},
		enums:     map[string]*types.Enum{},
		regions:   map[string]*ast.RegionDecl{},
		methods:   map[string]*ast.FunctionDecl{},
		typedefs:  map[string]types.Type{},
		aliases:   map[string][]aliasRecord{},
		monoCache: map[monoKey]*ast.FunctionDecl{},
	}
}

// Run performs both passes over tu and returns false if any error or fatal
// diagnostic was recorded, per spec.md §4.7's failure semantics: a single
// error makes Run return false but traversal continues for maximum
// diagnostic recall. The translation unit's Decls slice may grow with
// generated monomorphic clones, appended in place (spec.md §4.8).
func (s *Sema) Run(tu *ast.TranslationUnit) bool {
	s.tu = tu
	s.root = newScope(nil)
	s.collect(tu)
	s.checkAll(tu)
	return !s.d.HasErrors()
}
