package ast

import (
	"github.com/safec-org/safec/pkg/source"
	"github.com/safec-org/safec/pkg/types"
)

// Decl is the sum type over every top-level declaration variant.
type Decl interface {
	Loc() source.Location
	declNode()
}

// DeclBase is embedded by every concrete Decl variant.
type DeclBase struct {
	At source.Location
}

func (d *DeclBase) Loc() source.Location { return d.At }
func (*DeclBase) declNode()              {}

// Param is one function parameter.
type Param struct {
	Name string
	Type types.Type
}

// RefName implements Referent.
func (p *Param) RefName() string { return p.Name }

// RefType implements Referent.
func (p *Param) RefType() types.Type { return p.Type }

// GenericParam is one `<T: Constraint>` generic parameter declaration.
type GenericParam struct {
	Name       string
	Constraint string
}

// FunctionDecl is a function declaration or definition. Body is nil for a
// declaration-only form (`ReturnType Name(params);`). MethodOwner is set
// when the function was written `Type Owner::Name(params)`.
type FunctionDecl struct {
	DeclBase
	Name          string
	ReturnType    types.Type
	Params        []*Param
	Body          *CompoundStmt
	GenericParams []GenericParam
	MethodOwner   string

	IsInline    bool
	IsExtern    bool
	IsConst     bool
	IsConsteval bool
	IsMustUse   bool
	IsVariadic  bool
	IsStatic    bool

	// SignatureType is the Function type Sema computes from ReturnType,
	// Params and IsVariadic, filled in during collection.
	SignatureType types.Type
}

// RefName implements Referent.
func (f *FunctionDecl) RefName() string { return f.Name }

// RefType implements Referent.
func (f *FunctionDecl) RefType() types.Type { return f.SignatureType }

// IsMethod reports whether this function was declared as `Owner::Name`.
func (f *FunctionDecl) IsMethod() bool { return f.MethodOwner != "" }

// MangledMethodKey returns the "StructName::methodName" registry key used
// by Sema's method registry (spec.md §4.7).
func (f *FunctionDecl) MangledMethodKey() string {
	return f.MethodOwner + "::" + f.Name
}

// GlobalVarDecl is a file-scope variable declaration.
type GlobalVarDecl struct {
	DeclBase
	Name         string
	DeclaredType types.Type
	ResolvedType types.Type
	Init         Expr
	IsConst      bool
	IsStatic     bool
}

// RefName implements Referent.
func (g *GlobalVarDecl) RefName() string { return g.Name }

// RefType implements Referent.
func (g *GlobalVarDecl) RefType() types.Type { return g.ResolvedType }

// FieldDecl is one member of a StructDecl, as written by the parser (before
// Sema resolves the field's Type into a concrete types.Type and assigns its
// Index).
type FieldDecl struct {
	Name string
	Type types.Type
}

// StructDecl is a struct/union/tagged-union declaration.
type StructDecl struct {
	DeclBase
	Name          string
	Fields        []FieldDecl
	IsUnion       bool
	IsPacked      bool
	IsTaggedUnion bool
	Methods       []*FunctionDecl

	// ResolvedType is filled in by Sema's collection pass.
	ResolvedType *types.Struct
}

// EnumeratorDecl is one `Name [= value]` member of an EnumDecl.
type EnumeratorDecl struct {
	Name        string
	Value       Expr // nil when auto-numbered
	HasExplicit bool
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	DeclBase
	Name        string
	Enumerators []EnumeratorDecl

	ResolvedType *types.Enum
}

// RegionDecl is `region Name { capacity: N }`.
type RegionDecl struct {
	DeclBase
	Name     string
	Capacity int64
}

// TypedefDecl is `typedef Type Name;`.
type TypedefDecl struct {
	DeclBase
	Name   string
	Target types.Type
}

// StaticAssertDecl is `static_assert(cond[, "msg"]);` used at file scope.
type StaticAssertDecl struct {
	DeclBase
	Cond    Expr
	Message string
}

// TranslationUnit is the ordered list of top-level declarations produced by
// one compilation (spec.md §3). Sema may append generated monomorphic
// function clones to Decls after inference (spec.md §4.7, §4.8).
type TranslationUnit struct {
	FileName string
	Decls    []Decl
}
